package repositories

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// ActivityRepository persists the append-only project activity log.
type ActivityRepository interface {
	// SaveActivity appends one activity entry.
	SaveActivity(ctx context.Context, activity domain.ProjectActivity) error

	// ListActivitiesByProject retrieves a page of a project's activity
	// entries, newest first, using token-based pagination. It returns the
	// entries, a token for the next page (nil on the last page), and an
	// error.
	ListActivitiesByProject(ctx context.Context, userID, projectID string, limit int, nextToken *string) ([]domain.ProjectActivity, *string, error)
}
