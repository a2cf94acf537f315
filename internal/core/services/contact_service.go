package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/dto"
	"github.com/google/uuid"
)

// contactService implements the ContactSvcFacade interface.
type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a new contact service.
func NewContactService(repo portsrepo.ContactRepositoryFacade) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: repo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, userID string) (*domain.Contact, error) {
	now := time.Now()
	contact := domain.Contact{
		ContactID: uuid.NewString(),
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		UserID:    userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact", slog.String("contact_id", contact.ContactID))
		return nil, err
	}

	s.LogInfo(ctx, "Contact created", slog.String("contact_id", contact.ContactID))
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, userID, contactID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contact", slog.String("contact_id", contactID))
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContacts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts")
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if contacts == nil {
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, userID, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: contact name cannot be empty", apperrors.ErrValidation)
		}
		contact.Name = *req.Name
	}
	if req.Company != nil {
		contact.Company = *req.Company
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}
	contact.LastUpdatedAt = time.Now()
	contact.LastUpdatedBy = userID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		s.LogError(ctx, err, "Failed to update contact", slog.String("contact_id", contactID))
		return nil, err
	}

	s.LogInfo(ctx, "Contact updated", slog.String("contact_id", contactID))
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, userID, contactID string) error {
	if err := s.contactRepo.DeleteContact(ctx, userID, contactID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete contact", slog.String("contact_id", contactID))
		}
		return err
	}
	s.LogInfo(ctx, "Contact deleted", slog.String("contact_id", contactID))
	return nil
}
