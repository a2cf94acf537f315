package domain

// User is an authenticated owner of dashboard data. Every record is scoped to
// exactly one user; there is no sharing model.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
