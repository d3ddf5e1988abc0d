package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/joedev/portfolio-api/internal/model"
	"github.com/joedev/portfolio-api/internal/repository"
	"github.com/joedev/portfolio-api/internal/telemetry"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo    repository.ContactRepository
	metrics *telemetry.Metrics
	now     func() time.Time
}

// NewContactService creates a ContactService backed by the given repository.
// metrics may be nil.
func NewContactService(repo repository.ContactRepository, metrics *telemetry.Metrics) ContactService {
	return &contactServiceImpl{repo: repo, metrics: metrics, now: time.Now}
}

// Submit stamps CreatedAt and persists the contact. No field validation is
// applied; whatever the form sent is stored.
func (s *contactServiceImpl) Submit(ctx context.Context, c *model.Contact) error {
	c.CreatedAt = s.now().UTC()
	if !c.ProjectType.Known() {
		slog.Warn("storing unrecognized project type", "project_type", c.ProjectType)
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return err
	}
	slog.Info("contact submitted", "id", c.ID, "project_type", c.ProjectType, "consultation", c.WantsFreeConsultation)
	s.metrics.SubmissionCreated(ctx, string(c.ProjectType))
	return nil
}

// List returns the requested page and its pagination block.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	if opts.Filtered() {
		slog.Debug("filtered contact listing", "project_type", opts.ProjectType, "search", opts.Search)
	}
	contacts, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	return &model.ContactPage{
		Contacts:   contacts,
		Pagination: model.NewPagination(opts.Page, opts.Limit, total),
	}, nil
}

// Delete removes one contact by id.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("contact deleted", "id", id)
	s.metrics.SubmissionDeleted(ctx)
	return nil
}

// Stats counts the collection; ThisMonth starts at the first instant of the
// current UTC month.
func (s *contactServiceImpl) Stats(ctx context.Context) (*model.ContactStats, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	stats, err := s.repo.Stats(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	if stats.ByProjectType == nil {
		stats.ByProjectType = map[string]int64{}
	}
	return stats, nil
}
