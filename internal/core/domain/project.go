package domain

import "github.com/shopspring/decimal"

// ProjectStatus is the lifecycle stage of a project.
//
// inquiry and quotation are set manually. Once a project reaches the billing
// stages (invoice, partially_paid, completed) the status is derived from its
// payment schedule and is never freely settable; see PaymentSchedule.DeriveStatus.
type ProjectStatus string

const (
	StatusInquiry       ProjectStatus = "inquiry"
	StatusQuotation     ProjectStatus = "quotation"
	StatusInvoice       ProjectStatus = "invoice"
	StatusPartiallyPaid ProjectStatus = "partially_paid"
	StatusCompleted     ProjectStatus = "completed"
)

// Valid reports whether the status is one of the known lifecycle stages.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusInquiry, StatusQuotation, StatusInvoice, StatusPartiallyPaid, StatusCompleted:
		return true
	}
	return false
}

// InBillingStage reports whether the status is derived from the payment
// schedule rather than set manually.
func (s ProjectStatus) InBillingStage() bool {
	return s == StatusInvoice || s == StatusPartiallyPaid || s == StatusCompleted
}

// Task is a dated to-do attached to a project, surfaced on the calendar.
type Task struct {
	TaskID string `json:"taskID"`
	Title  string `json:"title"`
	Date   string `json:"date"` // YYYY-MM-DD
	Done   bool   `json:"done"`
}

// Project is a piece of client work moving through the
// quotation -> invoice -> paid lifecycle.
//
// ConvertedQuotation marks a project that has moved past quotation status but
// is still counted toward historical quotation (pipeline) volume.
type Project struct {
	ProjectID          string           `json:"projectID"`
	Name               string           `json:"name"`
	ClientName         string           `json:"clientName"`
	Status             ProjectStatus    `json:"status"`
	TotalAmount        decimal.Decimal  `json:"totalAmount"`
	Schedule           *PaymentSchedule `json:"paymentSchedule,omitempty"`
	Tasks              []Task           `json:"tasks,omitempty"`
	ContactID          string           `json:"contactID,omitempty"`
	StartDate          string           `json:"startDate"` // YYYY-MM-DD
	ConvertedQuotation bool             `json:"convertedQuotation"`
	UserID             string           `json:"userID"`
	AuditFields
}

// QuotationMonth returns the YYYY-MM bucket a project's deal volume counts
// toward: the start date's month, falling back to the creation month when no
// start date was recorded.
func (p Project) QuotationMonth() string {
	if len(p.StartDate) >= len(MonthFormat) {
		return p.StartDate[:len(MonthFormat)]
	}
	return MonthKey(p.CreatedAt)
}
