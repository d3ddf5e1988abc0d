package repository

import (
	"context"
	"time"

	"github.com/joedev/portfolio-api/internal/model"
)

// DB reports whether the underlying store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository defines the persistence interface for contact submissions.
// Implementations never update a stored contact; Delete is the only mutation.
type ContactRepository interface {
	// Insert stores c and populates c.ID with the store-assigned identifier.
	Insert(ctx context.Context, c *model.Contact) error
	// List returns one page of contacts, newest first, and the size of the
	// filter set.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, int64, error)
	// Delete removes the contact with the given id. It returns ErrNotFound
	// when nothing matched, including ids the store cannot parse.
	Delete(ctx context.Context, id string) error
	// Stats summarizes the collection. monthStart bounds ThisMonth.
	Stats(ctx context.Context, monthStart time.Time) (*model.ContactStats, error)
}
