package models

import "github.com/shopspring/decimal"

// Transaction is the transactions table row. Amounts are unsigned; the type
// column implies the sign. The source_* columns link engine-created income
// records back to the project milestone they settle.
type Transaction struct {
	TransactionID        string          `json:"transactionID"` // Primary Key (UUID)
	Date                 string          `json:"date"`          // DATE, rendered YYYY-MM-DD
	Type                 string          `json:"type"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Amount               decimal.Decimal `json:"amount"`
	SourceProjectID      *string         `json:"sourceProjectID"`      // Nullable FK -> projects
	SourceMilestoneIndex *int            `json:"sourceMilestoneIndex"` // Nullable; -1 = full schedule
	UserID               string          `json:"userID"`
	AuditFields
}
