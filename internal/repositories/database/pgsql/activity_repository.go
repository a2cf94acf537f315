package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/flujoapp/flujo_backend/internal/models"
	"github.com/flujoapp/flujo_backend/internal/utils/mapping"
	"github.com/flujoapp/flujo_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultActivityPageSize = 20

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for the project activity log.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.ProjectActivity) error {
	m := mapping.ToModelActivity(activity)

	query := `
		INSERT INTO project_activities (activity_id, project_id, action, detail, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ActivityID,
		m.ProjectID,
		m.Action,
		m.Detail,
		m.UserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", m.ActivityID, err)
	}
	return nil
}

// ListActivitiesByProject pages the activity log newest-first with a keyset
// token of (created_at, activity_id), so concurrent appends never shift
// already-served pages.
func (r *PgxActivityRepository) ListActivitiesByProject(ctx context.Context, userID, projectID string, limit int, nextToken *string) ([]domain.ProjectActivity, *string, error) {
	if limit <= 0 {
		limit = defaultActivityPageSize
	}

	query := `
		SELECT activity_id, project_id, action, detail, user_id, created_at, created_by, last_updated_at, last_updated_by
		FROM project_activities
		WHERE project_id = $1 AND user_id = $2
	`
	args := []any{projectID, userID}

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		cursorTime, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, cursorTime, fields[1])
		query += fmt.Sprintf(" AND (created_at, activity_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, activity_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list activities for project %s: %w", projectID, err)
	}
	defer rows.Close()

	var activities []domain.ProjectActivity
	for rows.Next() {
		var m models.ProjectActivity
		if err := rows.Scan(
			&m.ActivityID,
			&m.ProjectID,
			&m.Action,
			&m.Detail,
			&m.UserID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, mapping.ToDomainActivity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating activity rows: %w", err)
	}

	var next *string
	if len(activities) > limit {
		activities = activities[:limit]
		last := activities[len(activities)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.ActivityID)
		next = &token
	}
	return activities, next, nil
}
