package dto

import (
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a new contact.
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID     string    `json:"contactID"`
	Name          string    `json:"name"`
	Company       string    `json:"company,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToContactResponse converts a domain.Contact to its response DTO.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:     c.ContactID,
		Name:          c.Name,
		Company:       c.Company,
		Email:         c.Email,
		Phone:         c.Phone,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToContactResponses converts a slice of contacts.
func ToContactResponses(contacts []domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses
}
