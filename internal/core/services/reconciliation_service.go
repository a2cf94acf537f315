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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deterministic income-record titles. Engine-created records are located by
// their source columns; these titles are what the user sees, and double as the
// lookup of last resort for rows written before source linkage existed.
const (
	milestoneTitlePrefix   = "Milestone payment from "
	fullPaymentTitlePrefix = "Project Payment: "
)

// MilestonePaymentTitle is the title of an income record settling one
// milestone of a staggered schedule.
func MilestonePaymentTitle(projectName string) string {
	return milestoneTitlePrefix + projectName
}

// FullPaymentTitle is the title of an income record settling a full-payment
// schedule.
func FullPaymentTitle(projectName string) string {
	return fullPaymentTitlePrefix + projectName
}

// reconciliationService implements the ReconcilerSvc interface: it diffs the
// payment schedules of two project versions and plans the income records to
// create or remove.
type reconciliationService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.ReconcilerSvc {
	return &reconciliationService{txnRepo: txnRepo}
}

var _ portssvc.ReconcilerSvc = (*reconciliationService)(nil)

// scheduleEntry is one payable slot of a schedule, keyed by milestone index
// (FullScheduleIndex for full schedules).
type scheduleEntry struct {
	amount  decimal.Decimal
	dueDate string
	paid    bool
}

// scheduleEntries flattens a project's schedule into its payable slots.
// Inactive milestones (percentage <= 0) are absent, so a milestone zeroed out
// while paid reads as a PAID -> gone transition and gets its record removed.
func scheduleEntries(p domain.Project) map[int]scheduleEntry {
	entries := make(map[int]scheduleEntry)
	s := p.Schedule
	if s == nil {
		return entries
	}
	switch s.Type {
	case domain.ScheduleFull:
		entries[domain.FullScheduleIndex] = scheduleEntry{
			amount:  p.TotalAmount,
			dueDate: s.DueDate,
			paid:    s.Completed,
		}
	case domain.ScheduleStaggered:
		for i, m := range s.Milestones {
			if !m.Active() {
				continue
			}
			entries[i] = scheduleEntry{
				amount:  domain.MilestoneAmount(p.TotalAmount, m.Percentage),
				dueDate: m.DueDate,
				paid:    m.Completed,
			}
		}
	}
	return entries
}

// Plan resolves the income-record write set of a project save. Planning only
// reads the record store (to locate records that must go); the project
// repository applies the plan in the same transaction as the project row.
//
// Only detected transitions plan a write: a repeated save with unchanged
// completion flags yields an empty plan, which is what guarantees at most one
// income record per milestone. A staggered schedule with every milestone paid
// never gets an aggregate full-payment record on top of the milestone-level
// ones; the keys it produces are milestone keys only.
//
// Removal resolution is individually best-effort: a failed lookup is logged,
// recorded on the plan and the remaining milestones still process.
func (s *reconciliationService) Plan(ctx context.Context, previous *domain.Project, updated domain.Project, userID string) domain.ReconciliationPlan {
	var plan domain.ReconciliationPlan
	if previous == nil {
		// Nothing to diff against on first save.
		return plan
	}

	oldEntries := scheduleEntries(*previous)
	newEntries := scheduleEntries(updated)

	keys := make(map[int]struct{}, len(oldEntries)+len(newEntries))
	for k := range oldEntries {
		keys[k] = struct{}{}
	}
	for k := range newEntries {
		keys[k] = struct{}{}
	}

	for key := range keys {
		oldPaid := oldEntries[key].paid
		newEntry, inNew := newEntries[key]

		switch {
		case inNew && newEntry.paid && !oldPaid:
			plan.Create = append(plan.Create, s.buildIncomeRecord(updated, key, newEntry, userID))
		case oldPaid && (!inNew || !newEntry.paid):
			removal, err := s.resolveIncomeRemoval(ctx, updated, key, userID)
			if err != nil {
				plan.Failures = append(plan.Failures, err.Error())
			} else if removal != nil {
				plan.Remove = append(plan.Remove, *removal)
			}
		}
	}
	return plan
}

func (s *reconciliationService) buildIncomeRecord(project domain.Project, key int, entry scheduleEntry, userID string) domain.Transaction {
	date := entry.dueDate
	if date == "" {
		date = time.Now().Format(domain.DateFormat)
	}
	title := MilestonePaymentTitle(project.Name)
	if key == domain.FullScheduleIndex {
		title = FullPaymentTitle(project.Name)
	}

	milestoneIndex := key
	now := time.Now()
	return domain.Transaction{
		TransactionID:        uuid.NewString(),
		Date:                 date,
		Type:                 domain.TypeIncome,
		Title:                title,
		Amount:               entry.amount,
		SourceProjectID:      project.ProjectID,
		SourceMilestoneIndex: &milestoneIndex,
		UserID:               userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// resolveIncomeRemoval locates the income record settling the given milestone.
// Lookup is by source columns first, then by the deterministic title for rows
// that predate source linkage. A missing record is logged and swallowed.
func (s *reconciliationService) resolveIncomeRemoval(ctx context.Context, project domain.Project, key int, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindBySource(ctx, userID, project.ProjectID, key)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up income record for removal",
			slog.String("project_id", project.ProjectID),
			slog.Int("milestone_index", key))
		return nil, fmt.Errorf("lookup income for milestone %d: %w", key, err)
	}

	if txn == nil {
		txn = s.findLegacyIncomeRecord(ctx, project, key, userID)
	}
	if txn == nil {
		// Best-effort: nothing to remove is not an error.
		s.LogWarn(ctx, "No income record found to remove for unpaid milestone",
			slog.String("project_id", project.ProjectID),
			slog.Int("milestone_index", key))
		return nil, nil
	}
	return txn, nil
}

func (s *reconciliationService) findLegacyIncomeRecord(ctx context.Context, project domain.Project, key int, userID string) *domain.Transaction {
	title := MilestonePaymentTitle(project.Name)
	if key == domain.FullScheduleIndex {
		title = FullPaymentTitle(project.Name)
	}

	candidates, err := s.txnRepo.FindByTitlePrefix(ctx, userID, title)
	if err != nil {
		s.LogWarn(ctx, "Legacy title lookup failed", slog.String("title", title), slog.String("error", err.Error()))
		return nil
	}
	for i := range candidates {
		if candidates[i].Type == domain.TypeIncome {
			return &candidates[i]
		}
	}
	return nil
}
