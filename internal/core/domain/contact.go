package domain

// Contact is a client or lead in the CRM side of the dashboard.
type Contact struct {
	ContactID string `json:"contactID"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
	UserID    string `json:"userID"`
	AuditFields
}
