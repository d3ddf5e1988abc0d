package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joedev/portfolio-api/internal/model"
	"github.com/joedev/portfolio-api/internal/repository"
)

// ---------------------------------------------------------------------------
// mockContactRepository: function-field stub for testing
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	insertFunc func(ctx context.Context, c *model.Contact) error
	listFunc   func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error)
	deleteFunc func(ctx context.Context, id string) error
	statsFunc  func(ctx context.Context, monthStart time.Time) (*model.ContactStats, error)
}

func (m *mockContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, c)
	}
	c.ID = "generated-id"
	return nil
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, 0, nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepository) Stats(ctx context.Context, monthStart time.Time) (*model.ContactStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, monthStart)
	}
	return &model.ContactStats{}, nil
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_SetsCreatedAt(t *testing.T) {
	before := time.Now().UTC()
	var saved *model.Contact
	mock := &mockContactRepository{
		insertFunc: func(ctx context.Context, c *model.Contact) error {
			saved = c
			c.ID = "abc"
			return nil
		},
	}
	svc := NewContactService(mock, nil)

	c := &model.Contact{Name: "A", Email: "a@x.com", ProjectType: model.ProjectTypeWebApp, Message: "hi"}
	if err := svc.Submit(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := time.Now().UTC()

	if saved == nil {
		t.Fatal("expected Insert to be called")
	}
	if saved.CreatedAt.Before(before) || saved.CreatedAt.After(after) {
		t.Errorf("CreatedAt %v not in expected range [%v, %v]", saved.CreatedAt, before, after)
	}
	if saved.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt should be UTC, got %v", saved.CreatedAt.Location())
	}
	if c.ID != "abc" {
		t.Errorf("expected ID=abc, got %q", c.ID)
	}
}

func TestContactService_Submit_RepositoryError(t *testing.T) {
	mock := &mockContactRepository{
		insertFunc: func(ctx context.Context, c *model.Contact) error {
			return errors.New("db write failed")
		},
	}
	svc := NewContactService(mock, nil)

	if err := svc.Submit(context.Background(), &model.Contact{}); err == nil {
		t.Error("expected error from repository, got nil")
	}
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestContactService_List_ForwardsOptions(t *testing.T) {
	var captured model.ContactListOptions
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
			captured = opts
			return nil, 0, nil
		},
	}
	svc := NewContactService(mock, nil)

	opts := model.ContactListOptions{Page: 2, Limit: 20, ProjectType: "database", Search: "acme"}
	page, err := svc.List(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != opts {
		t.Errorf("expected options %+v, got %+v", opts, captured)
	}
	if page.Contacts == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestContactService_List_Pagination(t *testing.T) {
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
			return make([]*model.Contact, 5), 25, nil
		},
	}
	svc := NewContactService(mock, nil)

	page, err := svc.List(context.Background(), model.ContactListOptions{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.Pagination{Page: 3, Limit: 10, Total: 25, Pages: 3}
	if page.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", page.Pagination, want)
	}
}

func TestContactService_List_RepositoryError(t *testing.T) {
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error) {
			return nil, 0, errors.New("db read failed")
		},
	}
	svc := NewContactService(mock, nil)
	if _, err := svc.List(context.Background(), model.ContactListOptions{Page: 1, Limit: 10}); err == nil {
		t.Error("expected error, got nil")
	}
}

// ---------------------------------------------------------------------------
// Delete / Stats tests
// ---------------------------------------------------------------------------

func TestContactService_Delete_PropagatesNotFound(t *testing.T) {
	mock := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewContactService(mock, nil)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactService_Stats_MonthStart(t *testing.T) {
	var got time.Time
	mock := &mockContactRepository{
		statsFunc: func(ctx context.Context, monthStart time.Time) (*model.ContactStats, error) {
			got = monthStart
			return &model.ContactStats{Total: 4}, nil
		},
	}
	svc := NewContactService(mock, nil).(*contactServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC) }

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("monthStart = %v, want %v", got, want)
	}
	if stats.ByProjectType == nil {
		t.Error("ByProjectType should never be nil")
	}
}

// ---------------------------------------------------------------------------
// Behavior against the in-memory repository
// ---------------------------------------------------------------------------

func TestContactService_SubmitThenList_RoundTrip(t *testing.T) {
	repo := repository.NewMemoryContactRepository()
	svc := NewContactService(repo, nil)
	ctx := context.Background()

	in := model.Contact{
		Name:                  "Ada",
		Email:                 "ada@example.com",
		Company:               "Analytical Engines",
		ProjectType:           model.ProjectTypeIntegration,
		Message:               "Let's talk",
		WantsFreeConsultation: true,
		IP:                    "203.0.113.7",
		UserAgent:             "test-agent",
	}
	c := in
	if err := svc.Submit(ctx, &c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected id to be assigned")
	}

	page, err := svc.List(ctx, model.ContactListOptions{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(page.Contacts))
	}
	got := page.Contacts[0]
	if got.ID != c.ID || got.CreatedAt.IsZero() {
		t.Errorf("unexpected id/createdAt: %+v", got)
	}
	got.ID, got.CreatedAt = "", time.Time{}
	if *got != in {
		t.Errorf("stored fields differ:\n got %+v\nwant %+v", *got, in)
	}
}

func TestContactService_DeleteTwice(t *testing.T) {
	repo := repository.NewMemoryContactRepository()
	svc := NewContactService(repo, nil)
	ctx := context.Background()

	c := &model.Contact{Name: "A", Email: "a@x.com", ProjectType: model.ProjectTypeWebApp, Message: "hi"}
	if err := svc.Submit(ctx, c); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := svc.Delete(ctx, c.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, c.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: want ErrNotFound, got %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("expected empty repository, got %d", repo.Len())
	}
}
