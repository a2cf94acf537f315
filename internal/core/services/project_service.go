package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// projectService implements the ProjectSvcFacade interface. Saves run a
// pipeline: validate, verify the contact reference, derive the billing-stage
// status, persist, reconcile payments (updates only) and log activity.
type projectService struct {
	BaseService
	projectRepo  portsrepo.ProjectRepositoryFacade
	contactRepo  portsrepo.ContactReader
	activityRepo portsrepo.ActivityRepository
	reconciler   portssvc.ReconcilerSvc
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo portsrepo.ProjectRepositoryFacade,
	contactRepo portsrepo.ContactReader,
	activityRepo portsrepo.ActivityRepository,
	reconciler portssvc.ReconcilerSvc,
) portssvc.ProjectSvcFacade {
	return &projectService{
		projectRepo:  projectRepo,
		contactRepo:  contactRepo,
		activityRepo: activityRepo,
		reconciler:   reconciler,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// validateProject splits problems into hard errors (block the save) and
// warnings (returned alongside a successful save). Milestone percentages not
// summing to 100 is deliberately a warning: users sketch schedules
// incrementally and the dashboard should not lose their edits over it.
func validateProject(p domain.Project) ([]string, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", apperrors.ErrValidation)
	}
	if !p.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, p.Status)
	}

	var warnings []string
	if s := p.Schedule; s != nil && s.Type == domain.ScheduleStaggered {
		if sum := s.PercentageSum(); !sum.Equal(decimalHundred) {
			warnings = append(warnings, fmt.Sprintf("milestone percentages sum to %s, expected 100", sum.String()))
		}
	}
	return warnings, nil
}

// checkContactReference verifies that a referenced contact exists for this
// user. A dangling reference aborts the save with ErrBrokenReference so the
// handler can tell the user which contact is gone.
func (s *projectService) checkContactReference(ctx context.Context, userID, contactID string) error {
	if contactID == "" {
		return nil
	}
	_, err := s.contactRepo.FindContactByID(ctx, userID, contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: contact %s referenced by this project no longer exists", apperrors.ErrBrokenReference, contactID)
		}
		return err
	}
	return nil
}

func assignTaskIDs(tasks []domain.Task) {
	for i := range tasks {
		if tasks[i].TaskID == "" {
			tasks[i].TaskID = uuid.NewString()
		}
	}
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*dto.ProjectSaveResult, error) {
	status := domain.ProjectStatus(req.Status)
	if status == "" {
		status = domain.StatusInquiry
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		ClientName:  req.ClientName,
		Status:      status,
		TotalAmount: req.TotalAmount,
		Schedule:    req.PaymentSchedule.ToDomain(),
		ContactID:   req.ContactID,
		StartDate:   req.StartDate,
		UserID:      userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for _, t := range req.Tasks {
		project.Tasks = append(project.Tasks, domain.Task{Title: t.Title, Date: t.Date, Done: t.Done})
	}
	assignTaskIDs(project.Tasks)

	warnings, err := validateProject(project)
	if err != nil {
		return nil, err
	}
	if err := s.checkContactReference(ctx, userID, project.ContactID); err != nil {
		return nil, err
	}
	project.Status = project.Schedule.DeriveStatus(project.Status)

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_id", project.ProjectID))
		return nil, err
	}

	s.logActivity(ctx, project.ProjectID, userID, domain.ActivityCreated, project.Name)
	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID), slog.String("status", string(project.Status)))
	return &dto.ProjectSaveResult{Project: project, Warnings: warnings}, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, userID, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, userID, projectID string, req dto.UpdateProjectRequest) (*dto.ProjectSaveResult, error) {
	previous, err := s.projectRepo.FindProjectByID(ctx, userID, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load project for update", slog.String("project_id", projectID))
		}
		return nil, err
	}

	updated := *previous
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.ClientName != nil {
		updated.ClientName = *req.ClientName
	}
	if req.Status != nil {
		updated.Status = domain.ProjectStatus(*req.Status)
	}
	if req.TotalAmount != nil {
		updated.TotalAmount = *req.TotalAmount
	}
	if req.PaymentSchedule != nil {
		updated.Schedule = req.PaymentSchedule.ToDomain()
	}
	if req.Tasks != nil {
		updated.Tasks = nil
		for _, t := range *req.Tasks {
			updated.Tasks = append(updated.Tasks, domain.Task{TaskID: t.TaskID, Title: t.Title, Date: t.Date, Done: t.Done})
		}
		assignTaskIDs(updated.Tasks)
	}
	if req.ContactID != nil {
		updated.ContactID = *req.ContactID
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}

	warnings, err := validateProject(updated)
	if err != nil {
		return nil, err
	}
	if err := s.checkContactReference(ctx, userID, updated.ContactID); err != nil {
		return nil, err
	}

	updated.Status = updated.Schedule.DeriveStatus(updated.Status)
	if previous.Status == domain.StatusQuotation && updated.Status.InBillingStage() {
		// Keep counting this project toward historical quotation volume.
		updated.ConvertedQuotation = true
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	plan := s.reconciler.Plan(ctx, previous, updated, userID)

	recon, err := s.projectRepo.UpdateProjectWithReconciliation(ctx, updated, plan)
	if err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}
	recon.Failures = append(plan.Failures, recon.Failures...)
	if recon.HasEffects() {
		s.LogInfo(ctx, "Payment reconciliation applied",
			slog.String("project_id", projectID),
			slog.Int("created", len(recon.Created)),
			slog.Int("removed", len(recon.Removed)),
			slog.Int("failures", len(recon.Failures)))
	}

	s.logActivity(ctx, projectID, userID, domain.ActivityUpdated, "")
	if previous.Status != updated.Status {
		s.logActivity(ctx, projectID, userID, domain.ActivityStatusChanged,
			fmt.Sprintf("%s -> %s", previous.Status, updated.Status))
	}
	for _, txn := range recon.Created {
		s.logActivity(ctx, projectID, userID, domain.ActivityPaymentLogged,
			fmt.Sprintf("%s (%s)", txn.Title, txn.Amount.String()))
	}
	for _, txn := range recon.Removed {
		s.logActivity(ctx, projectID, userID, domain.ActivityPaymentVoided,
			fmt.Sprintf("%s (%s)", txn.Title, txn.Amount.String()))
	}

	s.LogInfo(ctx, "Project updated", slog.String("project_id", projectID), slog.String("status", string(updated.Status)))
	return &dto.ProjectSaveResult{Project: updated, Warnings: warnings, Reconciliation: &recon}, nil
}

func (s *projectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	if err := s.projectRepo.DeleteProject(ctx, userID, projectID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		}
		return err
	}
	s.LogInfo(ctx, "Project deleted", slog.String("project_id", projectID))
	return nil
}

func (s *projectService) ListActivities(ctx context.Context, userID, projectID string, limit int, nextToken *string) ([]domain.ProjectActivity, *string, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, userID, projectID); err != nil {
		return nil, nil, err
	}
	activities, next, err := s.activityRepo.ListActivitiesByProject(ctx, userID, projectID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list project activities", slog.String("project_id", projectID))
		return nil, nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if activities == nil {
		activities = []domain.ProjectActivity{}
	}
	return activities, next, nil
}

// logActivity appends an audit entry. The activity log is best-effort: a
// failure here never fails the save that produced it.
func (s *projectService) logActivity(ctx context.Context, projectID, userID string, action domain.ActivityAction, detail string) {
	now := time.Now()
	activity := domain.ProjectActivity{
		ActivityID: uuid.NewString(),
		ProjectID:  projectID,
		Action:     action,
		Detail:     detail,
		UserID:     userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		s.LogWarn(ctx, "Failed to record project activity",
			slog.String("project_id", projectID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
	}
}
