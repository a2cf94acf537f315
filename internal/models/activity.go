package models

// ProjectActivity is the project_activities table row (append-only).
type ProjectActivity struct {
	ActivityID string `json:"activityID"` // Primary Key (UUID)
	ProjectID  string `json:"projectID"`  // FK -> projects
	Action     string `json:"action"`
	Detail     string `json:"detail"`
	UserID     string `json:"userID"`
	AuditFields
}
