package dto

import (
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MilestoneDTO is one staggered-schedule milestone in a project payload.
type MilestoneDTO struct {
	Label      string          `json:"label"`
	Percentage decimal.Decimal `json:"percentage"`
	DueDate    string          `json:"dueDate" binding:"omitempty,calendardate"`
	Completed  bool            `json:"completed"`
}

// PaymentScheduleDTO is the payment schedule in a project payload.
type PaymentScheduleDTO struct {
	Type       string         `json:"type" binding:"required,oneof=full staggered"`
	DueDate    string         `json:"dueDate" binding:"omitempty,calendardate"`
	Completed  bool           `json:"completed"`
	Milestones []MilestoneDTO `json:"milestones" binding:"omitempty,dive"`
}

// ToDomain converts the schedule DTO into its domain representation.
func (d *PaymentScheduleDTO) ToDomain() *domain.PaymentSchedule {
	if d == nil {
		return nil
	}
	s := &domain.PaymentSchedule{
		Type:      domain.ScheduleType(d.Type),
		DueDate:   d.DueDate,
		Completed: d.Completed,
	}
	if d.Type == string(domain.ScheduleStaggered) {
		s.Milestones = make([]domain.Milestone, 0, len(d.Milestones))
		for _, m := range d.Milestones {
			s.Milestones = append(s.Milestones, domain.Milestone{
				Label:      m.Label,
				Percentage: m.Percentage,
				DueDate:    m.DueDate,
				Completed:  m.Completed,
			})
		}
	}
	return s
}

// TaskDTO is one dated project task.
type TaskDTO struct {
	TaskID string `json:"taskID"`
	Title  string `json:"title" binding:"required"`
	Date   string `json:"date" binding:"required,calendardate"`
	Done   bool   `json:"done"`
}

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Name            string              `json:"name" binding:"required"`
	ClientName      string              `json:"clientName"`
	Status          string              `json:"status" binding:"omitempty,oneof=inquiry quotation invoice partially_paid completed"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	PaymentSchedule *PaymentScheduleDTO `json:"paymentSchedule"`
	Tasks           []TaskDTO           `json:"tasks" binding:"omitempty,dive"`
	ContactID       string              `json:"contactID"`
	StartDate       string              `json:"startDate" binding:"omitempty,calendardate"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// Pointers distinguish zero-value updates from fields not provided; a present
// PaymentSchedule replaces the stored one wholesale.
type UpdateProjectRequest struct {
	Name            *string             `json:"name"`
	ClientName      *string             `json:"clientName"`
	Status          *string             `json:"status" binding:"omitempty,oneof=inquiry quotation invoice partially_paid completed"`
	TotalAmount     *decimal.Decimal    `json:"totalAmount"`
	PaymentSchedule *PaymentScheduleDTO `json:"paymentSchedule"`
	Tasks           *[]TaskDTO          `json:"tasks" binding:"omitempty,dive"`
	ContactID       *string             `json:"contactID"`
	StartDate       *string             `json:"startDate" binding:"omitempty,calendardate"`
}

// ProjectSaveResult is what a create/update returns: the saved project,
// non-fatal validation warnings, and (updates only) the reconciliation side
// effects applied during the save.
type ProjectSaveResult struct {
	Project        domain.Project               `json:"project"`
	Warnings       []string                     `json:"warnings,omitempty"`
	Reconciliation *domain.ReconciliationResult `json:"reconciliation,omitempty"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID          string                  `json:"projectID"`
	Name               string                  `json:"name"`
	ClientName         string                  `json:"clientName,omitempty"`
	Status             string                  `json:"status"`
	TotalAmount        decimal.Decimal         `json:"totalAmount"`
	PaymentSchedule    *domain.PaymentSchedule `json:"paymentSchedule,omitempty"`
	Tasks              []domain.Task           `json:"tasks,omitempty"`
	ContactID          string                  `json:"contactID,omitempty"`
	StartDate          string                  `json:"startDate,omitempty"`
	ConvertedQuotation bool                    `json:"convertedQuotation"`
	CreatedAt          time.Time               `json:"createdAt"`
	LastUpdatedAt      time.Time               `json:"lastUpdatedAt"`
}

// ProjectSaveResponse wraps a saved project with its warnings and
// reconciliation effects.
type ProjectSaveResponse struct {
	Project        ProjectResponse              `json:"project"`
	Warnings       []string                     `json:"warnings,omitempty"`
	Reconciliation *domain.ReconciliationResult `json:"reconciliation,omitempty"`
}

// ToProjectResponse converts a domain.Project to its response DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:          p.ProjectID,
		Name:               p.Name,
		ClientName:         p.ClientName,
		Status:             string(p.Status),
		TotalAmount:        p.TotalAmount,
		PaymentSchedule:    p.Schedule,
		Tasks:              p.Tasks,
		ContactID:          p.ContactID,
		StartDate:          p.StartDate,
		ConvertedQuotation: p.ConvertedQuotation,
		CreatedAt:          p.CreatedAt,
		LastUpdatedAt:      p.LastUpdatedAt,
	}
}

// ToProjectResponses converts a slice of projects.
func ToProjectResponses(projects []domain.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, ToProjectResponse(&projects[i]))
	}
	return responses
}

// ToProjectSaveResponse converts a save result into its response DTO.
func ToProjectSaveResponse(r *ProjectSaveResult) ProjectSaveResponse {
	return ProjectSaveResponse{
		Project:        ToProjectResponse(&r.Project),
		Warnings:       r.Warnings,
		Reconciliation: r.Reconciliation,
	}
}

// ActivityResponse defines the data returned for a project activity entry.
type ActivityResponse struct {
	ActivityID string    `json:"activityID"`
	ProjectID  string    `json:"projectID"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToActivityResponses converts a slice of project activities.
func ToActivityResponses(activities []domain.ProjectActivity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, ActivityResponse{
			ActivityID: a.ActivityID,
			ProjectID:  a.ProjectID,
			Action:     string(a.Action),
			Detail:     a.Detail,
			CreatedAt:  a.CreatedAt,
		})
	}
	return responses
}
