package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joedev/portfolio-api/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Insert adds a contacts row and populates c.ID from the RETURNING clause.
func (r *PgContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, company, project_type, message,
		                       wants_free_consultation, created_at, ip, user_agent)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''))
		 RETURNING id::text`,
		c.Name, c.Email, c.Company, string(c.ProjectType), c.Message,
		c.WantsFreeConsultation, c.CreatedAt, c.IP, c.UserAgent,
	).Scan(&c.ID)
}

// escapeLike escapes LIKE wildcards so s matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildContactWhere returns the WHERE clause (possibly empty) and its arguments.
func buildContactWhere(opts model.ContactListOptions) (string, []any) {
	var conditions []string
	var args []any

	if opts.ProjectType != "" {
		args = append(args, opts.ProjectType)
		conditions = append(conditions, fmt.Sprintf("project_type = $%d", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+escapeLike(opts.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR COALESCE(company, '') ILIKE $%d)", n, n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// List returns contacts newest first, paginated by page/limit, plus the filter-set size.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
	where, args := buildContactWhere(opts)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM contacts `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Skip())

	query := fmt.Sprintf(`SELECT id::text, name, email, COALESCE(company, ''), project_type, message,
	                 wants_free_consultation, created_at, COALESCE(ip, ''), COALESCE(user_agent, '')
	          FROM contacts %s
	          ORDER BY created_at DESC, id DESC
	          LIMIT $%d OFFSET $%d`, where, limitArg, offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	contacts := []*model.Contact{}
	for rows.Next() {
		var c model.Contact
		var projectType string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &projectType, &c.Message,
			&c.WantsFreeConsultation, &c.CreatedAt, &c.IP, &c.UserAgent); err != nil {
			return nil, 0, err
		}
		c.ProjectType = model.ProjectType(projectType)
		c.CreatedAt = c.CreatedAt.UTC()
		contacts = append(contacts, &c)
	}
	return contacts, total, rows.Err()
}

// Delete removes a contact by UUID. Ids that are not UUIDs match nothing.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, parsed.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates the contacts table.
func (r *PgContactRepository) Stats(ctx context.Context, monthStart time.Time) (*model.ContactStats, error) {
	stats := &model.ContactStats{ByProjectType: map[string]int64{}}
	err := r.pool.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE created_at >= $1),
		        count(*) FILTER (WHERE wants_free_consultation)
		 FROM contacts`, monthStart,
	).Scan(&stats.Total, &stats.ThisMonth, &stats.ConsultationRequests)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT project_type, count(*) FROM contacts GROUP BY project_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var pt string
		var n int64
		if err := rows.Scan(&pt, &n); err != nil {
			return nil, err
		}
		stats.ByProjectType[pt] = n
	}
	return stats, rows.Err()
}
