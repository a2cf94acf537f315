package repositories

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project owned by userID.
	FindProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects owned by userID, newest first.
	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProjectWithReconciliation updates an existing project, including
	// its payment schedule and tasks, and applies the reconciliation write
	// set in the same database transaction: the project row and its income
	// records commit or roll back together. Each income write runs under its
	// own savepoint, so one failed record is reported on the result without
	// aborting the rest. The returned result holds the writes that actually
	// applied.
	UpdateProjectWithReconciliation(ctx context.Context, project domain.Project, plan domain.ReconciliationPlan) (domain.ReconciliationResult, error)

	// DeleteProject removes a project owned by userID.
	DeleteProject(ctx context.Context, userID, projectID string) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
