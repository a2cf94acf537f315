package services

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// WatcherSvc consumes record-store change notifications, rebuilds the
// dashboard summary in full and fans the fresh snapshot out to subscribers.
type WatcherSvc interface {
	// Run blocks, processing change events until ctx is cancelled.
	Run(ctx context.Context) error

	// Subscribe registers a listener for a user's recomputed summaries.
	// The returned cancel func must be called to release the channel.
	Subscribe(userID string) (<-chan domain.DashboardSummary, func())
}
