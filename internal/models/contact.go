package models

// Contact is the contacts table row.
type Contact struct {
	ContactID string `json:"contactID"` // Primary Key (UUID)
	Name      string `json:"name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
	UserID    string `json:"userID"`
	AuditFields
}
