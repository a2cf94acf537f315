package repositories

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// ContactReader defines read operations for contact data
type ContactReader interface {
	// FindContactByID retrieves a specific contact owned by userID.
	FindContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error)

	// ListContacts retrieves all contacts owned by userID, ordered by name.
	ListContacts(ctx context.Context, userID string) ([]domain.Contact, error)
}

// ContactWriter defines write operations for contact data
type ContactWriter interface {
	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// UpdateContact updates an existing contact's details.
	UpdateContact(ctx context.Context, contact domain.Contact) error

	// DeleteContact removes a contact owned by userID.
	DeleteContact(ctx context.Context, userID, contactID string) error
}

// ContactRepositoryFacade combines all contact-related repository interfaces
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
