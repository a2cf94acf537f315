package domain

import "github.com/shopspring/decimal"

// FullScheduleIndex is the milestone index used when an invoice or income
// record stems from a full-payment schedule rather than a milestone.
const FullScheduleIndex = -1

var oneHundred = decimal.NewFromInt(100)

// ScheduledInvoice is an amount a project owes on a due date. It is computed
// from the project's payment schedule on every load and never persisted.
type ScheduledInvoice struct {
	ProjectID      string          `json:"projectID"`
	ProjectName    string          `json:"projectName"`
	MilestoneIndex int             `json:"milestoneIndex"` // FullScheduleIndex for full schedules
	Amount         decimal.Decimal `json:"amount"`
	DueDate        string          `json:"dueDate"`
	Paid           bool            `json:"paid"`
}

// ExpandInvoices derives the scheduled invoices for a project: one for a full
// schedule, one per active milestone for a staggered schedule. Projects with
// no schedule expand to nothing.
func ExpandInvoices(p Project) []ScheduledInvoice {
	s := p.Schedule
	if s == nil {
		return nil
	}
	switch s.Type {
	case ScheduleFull:
		return []ScheduledInvoice{{
			ProjectID:      p.ProjectID,
			ProjectName:    p.Name,
			MilestoneIndex: FullScheduleIndex,
			Amount:         p.TotalAmount,
			DueDate:        s.DueDate,
			Paid:           s.Completed,
		}}
	case ScheduleStaggered:
		var invoices []ScheduledInvoice
		for i, m := range s.Milestones {
			if !m.Active() {
				continue
			}
			invoices = append(invoices, ScheduledInvoice{
				ProjectID:      p.ProjectID,
				ProjectName:    p.Name,
				MilestoneIndex: i,
				Amount:         MilestoneAmount(p.TotalAmount, m.Percentage),
				DueDate:        m.DueDate,
				Paid:           m.Completed,
			})
		}
		return invoices
	default:
		return nil
	}
}

// MilestoneAmount computes total * percentage / 100.
func MilestoneAmount(total, percentage decimal.Decimal) decimal.Decimal {
	return total.Mul(percentage).Div(oneHundred)
}
