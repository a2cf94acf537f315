package mapping

import (
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var sourceProjectID *string
	if d.SourceProjectID != "" {
		sourceProjectID = &d.SourceProjectID
	}
	return models.Transaction{
		TransactionID:        d.TransactionID,
		Date:                 d.Date,
		Type:                 string(d.Type),
		Title:                d.Title,
		Description:          d.Description,
		Amount:               d.Amount,
		SourceProjectID:      sourceProjectID,
		SourceMilestoneIndex: d.SourceMilestoneIndex,
		UserID:               d.UserID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	sourceProjectID := ""
	if m.SourceProjectID != nil {
		sourceProjectID = *m.SourceProjectID
	}
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		Date:                 m.Date,
		Type:                 domain.TransactionType(m.Type),
		Title:                m.Title,
		Description:          m.Description,
		Amount:               m.Amount,
		SourceProjectID:      sourceProjectID,
		SourceMilestoneIndex: m.SourceMilestoneIndex,
		UserID:               m.UserID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}
