package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EntryKind discriminates the sources merged into a calendar day.
type EntryKind string

const (
	EntryTransaction EntryKind = "transaction"
	EntryTask        EntryKind = "task"
	EntryPayable     EntryKind = "payable"
)

// CalendarEntry is one line in a day's merged view: a raw transaction, a
// project task occurrence, or an unpaid scheduled-invoice payable.
type CalendarEntry struct {
	Kind        EntryKind       `json:"kind"`
	SourceID    string          `json:"sourceID"` // transaction id, task id, or projectID#milestone
	ProjectID   string          `json:"projectID,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// PayableSourceID builds the stable source id for a schedule-derived payable.
func PayableSourceID(projectID string, milestoneIndex int) string {
	return fmt.Sprintf("%s#%d", projectID, milestoneIndex)
}

// DedupKey identifies an entry by (kind, stable source id). Entries that
// predate stable references fall back to the fuzzy key.
func (e CalendarEntry) DedupKey() string {
	if e.SourceID == "" {
		return "fuzzy|" + e.FuzzyKey()
	}
	return string(e.Kind) + "|" + e.SourceID
}

// FuzzyKey is the legacy content-based identity: normalised title plus date
// plus amount. It exists to collapse the same obligation showing up through
// two sources when one of them carries no stable reference.
func (e CalendarEntry) FuzzyKey() string {
	title := strings.Join(strings.Fields(strings.ToLower(e.Title)), " ")
	return fmt.Sprintf("%s|%s|%s", title, e.Date, e.Amount.String())
}
