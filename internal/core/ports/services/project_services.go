package services

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/dto"
)

// ProjectSvcFacade defines operations for managing projects through the
// quotation -> invoice -> paid lifecycle. UpdateProject runs the payment
// reconciliation engine as part of the save pipeline.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*dto.ProjectSaveResult, error)
	GetProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, userID, projectID string, req dto.UpdateProjectRequest) (*dto.ProjectSaveResult, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	ListActivities(ctx context.Context, userID, projectID string, limit int, nextToken *string) ([]domain.ProjectActivity, *string, error)
}

// ReconcilerSvc detects payment-state transitions between two versions of a
// project and resolves them into the income-record write set the save must
// apply. Planning reads the record store (to locate records to remove) but
// never writes; the project repository applies the plan atomically with the
// project update itself.
type ReconcilerSvc interface {
	Plan(ctx context.Context, previous *domain.Project, updated domain.Project, userID string) domain.ReconciliationPlan
}
