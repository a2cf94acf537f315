package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/models"
)

// ToModelProject converts a domain Project to a model Project, encoding the
// payment schedule and tasks as JSONB payloads.
func ToModelProject(d domain.Project) (models.Project, error) {
	m := models.Project{
		ProjectID:          d.ProjectID,
		Name:               d.Name,
		ClientName:         d.ClientName,
		Status:             string(d.Status),
		TotalAmount:        d.TotalAmount,
		ConvertedQuotation: d.ConvertedQuotation,
		UserID:             d.UserID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.ContactID != "" {
		m.ContactID = &d.ContactID
	}
	if d.StartDate != "" {
		m.StartDate = &d.StartDate
	}
	if d.Schedule != nil {
		raw, err := json.Marshal(d.Schedule)
		if err != nil {
			return models.Project{}, fmt.Errorf("failed to encode payment schedule: %w", err)
		}
		m.PaymentSchedule = raw
	}
	if d.Tasks != nil {
		raw, err := json.Marshal(d.Tasks)
		if err != nil {
			return models.Project{}, fmt.Errorf("failed to encode tasks: %w", err)
		}
		m.Tasks = raw
	}
	return m, nil
}

// ToDomainProject converts a model Project to a domain Project. The stored
// schedule is decoded tolerantly: legacy shapes read as no schedule, and
// undecodable task payloads read as no tasks.
func ToDomainProject(m models.Project) domain.Project {
	d := domain.Project{
		ProjectID:          m.ProjectID,
		Name:               m.Name,
		ClientName:         m.ClientName,
		Status:             domain.ProjectStatus(m.Status),
		TotalAmount:        m.TotalAmount,
		Schedule:           domain.ScheduleFromJSON(m.PaymentSchedule),
		ConvertedQuotation: m.ConvertedQuotation,
		UserID:             m.UserID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.ContactID != nil {
		d.ContactID = *m.ContactID
	}
	if m.StartDate != nil {
		d.StartDate = *m.StartDate
	}
	if len(m.Tasks) > 0 {
		var tasks []domain.Task
		if err := json.Unmarshal(m.Tasks, &tasks); err == nil {
			d.Tasks = tasks
		}
	}
	return d
}
