package services

import (
	"context"
	"fmt"
	"time"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// calendarService implements the CalendarSvc interface: the merged,
// deduplicated day view over transactions, project tasks and unpaid payables.
type calendarService struct {
	BaseService
	txnRepo     portsrepo.TransactionReader
	projectRepo portsrepo.ProjectReader
}

// NewCalendarService creates a new calendar service.
func NewCalendarService(txnRepo portsrepo.TransactionReader, projectRepo portsrepo.ProjectReader) portssvc.CalendarSvc {
	return &calendarService{txnRepo: txnRepo, projectRepo: projectRepo}
}

var _ portssvc.CalendarSvc = (*calendarService)(nil)

func (s *calendarService) EntriesForDate(ctx context.Context, userID, date string) ([]domain.CalendarEntry, error) {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{FromDate: date, ToDate: date})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for calendar")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	projects, err := s.projectRepo.ListProjects(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load projects for calendar")
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	return mergeDayEntries(txns, projects, date), nil
}

// mergeDayEntries builds the day's list. Transactions go first and are
// identified by their stable ids alone, so two genuinely identical records
// both stay visible. Tasks and payables are then admitted only if neither
// their stable key nor their fuzzy key is already taken; the fuzzy check is
// what collapses an obligation that also exists as a legacy transaction row
// without a source reference.
func mergeDayEntries(txns []domain.Transaction, projects []domain.Project, date string) []domain.CalendarEntry {
	seen := make(map[string]struct{})
	entries := make([]domain.CalendarEntry, 0, len(txns))

	admit := func(e domain.CalendarEntry, checkFuzzy bool) {
		if _, ok := seen[e.DedupKey()]; ok {
			return
		}
		if checkFuzzy {
			if _, ok := seen["fuzzy|"+e.FuzzyKey()]; ok {
				return
			}
		}
		seen[e.DedupKey()] = struct{}{}
		seen["fuzzy|"+e.FuzzyKey()] = struct{}{}
		entries = append(entries, e)
	}

	for _, txn := range txns {
		admit(domain.CalendarEntry{
			Kind:        domain.EntryTransaction,
			SourceID:    txn.TransactionID,
			ProjectID:   txn.SourceProjectID,
			Title:       txn.Title,
			Description: txn.Description,
			Date:        txn.Date,
			Type:        txn.Type,
			Amount:      txn.Amount,
		}, false)
	}

	for i := range projects {
		p := projects[i]
		for _, task := range p.Tasks {
			if task.Date != date {
				continue
			}
			admit(domain.CalendarEntry{
				Kind:      domain.EntryTask,
				SourceID:  task.TaskID,
				ProjectID: p.ProjectID,
				Title:     task.Title,
				Date:      task.Date,
				Type:      domain.TypeTask,
				Amount:    decimal.Zero,
			}, true)
		}
	}

	for i := range projects {
		p := projects[i]
		if !p.Status.InBillingStage() {
			continue
		}
		for _, inv := range domain.ExpandInvoices(p) {
			// Paid obligations never surface as payables; their settlement
			// exists as an independent income transaction.
			if inv.Paid || inv.DueDate != date {
				continue
			}
			admit(domain.CalendarEntry{
				Kind:      domain.EntryPayable,
				SourceID:  domain.PayableSourceID(inv.ProjectID, inv.MilestoneIndex),
				ProjectID: inv.ProjectID,
				Title:     fmt.Sprintf("Payment due: %s", inv.ProjectName),
				Date:      inv.DueDate,
				Type:      domain.TypePayable,
				Amount:    inv.Amount,
			}, true)
		}
	}

	return entries
}
