package services

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/dto"
)

// ContactSvcFacade defines operations for managing CRM contacts.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, userID string) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, userID, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error)
	DeleteContact(ctx context.Context, userID, contactID string) error
}
