package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ScheduleType discriminates the payment schedule union.
type ScheduleType string

const (
	// ScheduleFull is a single payment of the project's total amount.
	ScheduleFull ScheduleType = "full"
	// ScheduleStaggered splits the total into percentage milestones.
	ScheduleStaggered ScheduleType = "staggered"
)

// Milestone is one percentage-of-total payment obligation within a staggered
// schedule. A milestone whose percentage is missing, non-numeric or <= 0 is
// treated as a removed row and excluded from all counts.
type Milestone struct {
	Label      string          `json:"label,omitempty"`
	Percentage decimal.Decimal `json:"percentage"`
	DueDate    string          `json:"dueDate,omitempty"` // YYYY-MM-DD
	Completed  bool            `json:"completed"`
}

// Active reports whether the milestone participates in status derivation and
// invoice expansion.
func (m Milestone) Active() bool {
	return m.Percentage.IsPositive()
}

// milestoneJSON mirrors Milestone with a raw percentage so stored rows with
// junk percentages decode to zero instead of failing the whole schedule.
type milestoneJSON struct {
	Label      string          `json:"label"`
	Percentage json.RawMessage `json:"percentage"`
	DueDate    string          `json:"dueDate"`
	Completed  bool            `json:"completed"`
}

// UnmarshalJSON decodes a milestone, tolerating non-numeric percentages.
func (m *Milestone) UnmarshalJSON(data []byte) error {
	var aux milestoneJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Label = aux.Label
	m.DueDate = aux.DueDate
	m.Completed = aux.Completed
	m.Percentage = decimal.Zero
	if len(aux.Percentage) > 0 {
		var pct decimal.Decimal
		// decimal accepts both JSON numbers and quoted numeric strings.
		if err := json.Unmarshal(aux.Percentage, &pct); err == nil {
			m.Percentage = pct
		}
	}
	return nil
}

// PaymentSchedule is the tagged union describing how a project gets paid:
// either one full payment or a list of staggered milestones.
type PaymentSchedule struct {
	Type       ScheduleType `json:"type"`
	DueDate    string       `json:"dueDate,omitempty"` // full schedules only
	Completed  bool         `json:"completed"`         // full schedules only
	Milestones []Milestone  `json:"milestones,omitempty"`
}

// ScheduleFromJSON decodes a stored payment_schedule value. Legacy or partial
// shapes (absent type, staggered without milestones, junk JSON) come back as
// nil — "no payment schedule" — rather than an error, because rows written
// before the schema settled still exist.
func ScheduleFromJSON(raw []byte) *PaymentSchedule {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s PaymentSchedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	switch s.Type {
	case ScheduleFull:
		return &s
	case ScheduleStaggered:
		if s.Milestones == nil {
			return nil
		}
		return &s
	default:
		return nil
	}
}

// ActiveMilestones returns the milestones with a positive percentage, in
// order. Only meaningful for staggered schedules.
func (s *PaymentSchedule) ActiveMilestones() []Milestone {
	if s == nil {
		return nil
	}
	var active []Milestone
	for _, m := range s.Milestones {
		if m.Active() {
			active = append(active, m)
		}
	}
	return active
}

// PercentageSum adds up the active milestone percentages. A staggered schedule
// should sum to 100; deviation is reported as a save warning, not an error.
func (s *PaymentSchedule) PercentageSum() decimal.Decimal {
	sum := decimal.Zero
	if s == nil {
		return sum
	}
	for _, m := range s.Milestones {
		if m.Active() {
			sum = sum.Add(m.Percentage)
		}
	}
	return sum
}

// DeriveStatus computes the billing-stage status implied by the schedule.
//
// Statuses outside the billing stages (inquiry, quotation) are manually set
// and returned unchanged. Within the billing stages:
//   - full: completed flag set -> completed, else invoice
//   - staggered: no active milestones or none completed -> invoice;
//     all active completed -> completed; otherwise partially_paid
//   - no schedule at all -> invoice (nothing has been paid)
func (s *PaymentSchedule) DeriveStatus(current ProjectStatus) ProjectStatus {
	if !current.InBillingStage() {
		return current
	}
	if s == nil {
		return StatusInvoice
	}
	switch s.Type {
	case ScheduleFull:
		if s.Completed {
			return StatusCompleted
		}
		return StatusInvoice
	case ScheduleStaggered:
		active := s.ActiveMilestones()
		if len(active) == 0 {
			return StatusInvoice
		}
		completed := 0
		for _, m := range active {
			if m.Completed {
				completed++
			}
		}
		switch {
		case completed == 0:
			return StatusInvoice
		case completed == len(active):
			return StatusCompleted
		default:
			return StatusPartiallyPaid
		}
	default:
		return StatusInvoice
	}
}
