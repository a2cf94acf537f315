package mapping

import (
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/models"
)

// ToModelContact converts a domain Contact to a model Contact
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:   d.ContactID,
		Name:        d.Name,
		Company:     d.Company,
		Email:       d.Email,
		Phone:       d.Phone,
		Notes:       d.Notes,
		UserID:      d.UserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContact converts a model Contact to a domain Contact
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		Name:        m.Name,
		Company:     m.Company,
		Email:       m.Email,
		Phone:       m.Phone,
		Notes:       m.Notes,
		UserID:      m.UserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
