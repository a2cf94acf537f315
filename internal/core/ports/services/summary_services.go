package services

import (
	"context"
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// SummarySvc recomputes the dashboard's monthly aggregates from the full
// record set for a viewed month.
type SummarySvc interface {
	Summary(ctx context.Context, userID string, viewed time.Time) (*domain.DashboardSummary, error)
}

// CalendarSvc merges transactions, project tasks and unpaid payables into a
// deduplicated per-day entry list.
type CalendarSvc interface {
	EntriesForDate(ctx context.Context, userID, date string) ([]domain.CalendarEntry, error)
}
