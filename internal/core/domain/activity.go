package domain

// ActivityAction classifies a project activity log entry.
type ActivityAction string

const (
	ActivityCreated       ActivityAction = "created"
	ActivityUpdated       ActivityAction = "updated"
	ActivityStatusChanged ActivityAction = "status_changed"
	ActivityPaymentLogged ActivityAction = "payment_logged"
	ActivityPaymentVoided ActivityAction = "payment_voided"
)

// ProjectActivity is one append-only audit entry on a project.
type ProjectActivity struct {
	ActivityID string         `json:"activityID"`
	ProjectID  string         `json:"projectID"`
	Action     ActivityAction `json:"action"`
	Detail     string         `json:"detail"`
	UserID     string         `json:"userID"`
	AuditFields
}
