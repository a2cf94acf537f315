package mapping

import (
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/models"
)

// ToModelActivity converts a domain ProjectActivity to a model ProjectActivity
func ToModelActivity(d domain.ProjectActivity) models.ProjectActivity {
	return models.ProjectActivity{
		ActivityID:  d.ActivityID,
		ProjectID:   d.ProjectID,
		Action:      string(d.Action),
		Detail:      d.Detail,
		UserID:      d.UserID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainActivity converts a model ProjectActivity to a domain ProjectActivity
func ToDomainActivity(m models.ProjectActivity) domain.ProjectActivity {
	return domain.ProjectActivity{
		ActivityID:  m.ActivityID,
		ProjectID:   m.ProjectID,
		Action:      domain.ActivityAction(m.Action),
		Detail:      m.Detail,
		UserID:      m.UserID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
