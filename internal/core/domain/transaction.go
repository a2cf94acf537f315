package domain

import "github.com/shopspring/decimal"

// TransactionType classifies a cashflow record. Amounts are stored unsigned;
// the type implies the sign (income adds, expense subtracts, the rest are
// planning records that never touch the balance).
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypePayable TransactionType = "payable"
	TypeTarget  TransactionType = "target"
	TypeTask    TransactionType = "task"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypePayable, TypeTarget, TypeTask:
		return true
	}
	return false
}

// Transaction is a single dated cashflow record owned by one user.
//
// Records created by the reconciliation engine carry SourceProjectID and
// SourceMilestoneIndex so they can be located and removed by exact match
// instead of by parsing their title. FullScheduleIndex marks a full-payment
// schedule; user-entered transactions leave SourceMilestoneIndex nil.
type Transaction struct {
	TransactionID        string          `json:"transactionID"`
	Date                 string          `json:"date"` // YYYY-MM-DD
	Type                 TransactionType `json:"type"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Amount               decimal.Decimal `json:"amount"` // always >= 0
	SourceProjectID      string          `json:"sourceProjectID,omitempty"`
	SourceMilestoneIndex *int            `json:"sourceMilestoneIndex,omitempty"`
	UserID               string          `json:"userID"`
	AuditFields
}
