package domain

import "time"

// DateFormat is the wire/storage format for calendar dates. Monthly bucketing
// relies on the YYYY-MM prefix of this format.
const DateFormat = "2006-01-02"

// MonthFormat is the YYYY-MM key used for monthly aggregation buckets.
const MonthFormat = "2006-01"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// MonthKey returns the YYYY-MM bucket key for a point in time.
func MonthKey(t time.Time) string {
	return t.Format(MonthFormat)
}

// PreviousMonth returns the first day of the month before t. Going through the
// first of the month avoids AddDate normalisation drift on dates like Mar 31.
func PreviousMonth(t time.Time) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.AddDate(0, -1, 0)
}
