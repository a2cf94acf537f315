package repositories

import "context"

// ChangeEvent is one record-store change notification. Delivery is
// at-least-once; consumers must tolerate duplicates and treat every event as
// "something changed, rebuild" rather than as an incremental patch.
type ChangeEvent struct {
	Table     string `json:"table"`
	Operation string `json:"op"` // INSERT, UPDATE or DELETE
	RecordID  string `json:"recordID"`
	UserID    string `json:"userID"`
}

// ChangeListener streams change notifications for the watched tables
// (transactions, projects).
type ChangeListener interface {
	// Listen blocks, invoking handler for every change event until ctx is
	// cancelled. Returns the terminal error (ctx.Err() on clean shutdown).
	Listen(ctx context.Context, handler func(ChangeEvent)) error
}
