package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joedev/portfolio-api/internal/model"
)

// MemoryContactRepository keeps contacts in process memory. It backs
// STORE_DRIVER=memory for local development and behavioral tests; data is
// lost on restart.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	contacts []*model.Contact // insertion order
}

// NewMemoryContactRepository returns an empty MemoryContactRepository.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

// Ensure MemoryContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*MemoryContactRepository)(nil)

// Ping implements DB.
func (r *MemoryContactRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Insert stores a copy of c and assigns a random UUID.
func (r *MemoryContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.ID = uuid.NewString()
	stored := *c

	r.mu.Lock()
	r.contacts = append(r.contacts, &stored)
	r.mu.Unlock()
	return nil
}

func matchesContact(c *model.Contact, opts model.ContactListOptions) bool {
	if opts.ProjectType != "" && string(c.ProjectType) != opts.ProjectType {
		return false
	}
	if opts.Search != "" {
		q := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Email), q) &&
			!strings.Contains(strings.ToLower(c.Company), q) {
			return false
		}
	}
	return true
}

// List filters, sorts newest first and slices one page. Contacts sharing a
// createdAt are ordered by most recent insert.
func (r *MemoryContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	matched := make([]*model.Contact, 0, len(r.contacts))
	for i := len(r.contacts) - 1; i >= 0; i-- {
		if c := r.contacts[i]; matchesContact(c, opts) {
			cp := *c
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := opts.Skip()
	if start < 0 {
		start = 0
	}
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return matched[start:end], total, nil
}

// Delete removes the contact with id, or returns ErrNotFound.
func (r *MemoryContactRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.contacts {
		if c.ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Stats summarizes the stored contacts.
func (r *MemoryContactRepository) Stats(ctx context.Context, monthStart time.Time) (*model.ContactStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &model.ContactStats{ByProjectType: map[string]int64{}}
	for _, c := range r.contacts {
		stats.Total++
		if !c.CreatedAt.Before(monthStart) {
			stats.ThisMonth++
		}
		if c.WantsFreeConsultation {
			stats.ConsultationRequests++
		}
		stats.ByProjectType[string(c.ProjectType)]++
	}
	return stats, nil
}

// Len returns the number of stored contacts.
func (r *MemoryContactRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contacts)
}
