package models

import "github.com/shopspring/decimal"

// Project is the projects table row. PaymentSchedule and Tasks are stored as
// JSONB; the schedule is decoded tolerantly (legacy shapes read as "no
// schedule").
type Project struct {
	ProjectID          string          `json:"projectID"` // Primary Key (UUID)
	Name               string          `json:"name"`
	ClientName         string          `json:"clientName"`
	Status             string          `json:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaymentSchedule    []byte          `json:"paymentSchedule"` // JSONB, nullable
	Tasks              []byte          `json:"tasks"`           // JSONB array, nullable
	ContactID          *string         `json:"contactID"`       // Nullable FK -> contacts
	StartDate          *string         `json:"startDate"`       // Nullable DATE
	ConvertedQuotation bool            `json:"convertedQuotation"`
	UserID             string          `json:"userID"`
	AuditFields
}
