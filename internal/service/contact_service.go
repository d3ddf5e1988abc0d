package service

import (
	"context"

	"github.com/joedev/portfolio-api/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a new contact. c.ID and c.CreatedAt are populated by the
	// implementation.
	Submit(ctx context.Context, c *model.Contact) error

	// List returns one page of contacts according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)

	// Delete removes one contact. Returns repository.ErrNotFound when nothing matched.
	Delete(ctx context.Context, id string) error

	// Stats summarizes all stored contacts.
	Stats(ctx context.Context) (*model.ContactStats, error)
}
