package services

import (
	"context"
	"fmt"
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// summaryService implements the SummarySvc interface. Every call rebuilds the
// dashboard figures from the full record set; nothing is cached between
// refreshes, so a stale aggregate cannot survive a data change.
type summaryService struct {
	BaseService
	txnRepo     portsrepo.TransactionReader
	projectRepo portsrepo.ProjectReader
}

// NewSummaryService creates a new summary service.
func NewSummaryService(txnRepo portsrepo.TransactionReader, projectRepo portsrepo.ProjectReader) portssvc.SummarySvc {
	return &summaryService{txnRepo: txnRepo, projectRepo: projectRepo}
}

var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) Summary(ctx context.Context, userID string, viewed time.Time) (*domain.DashboardSummary, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, userID, portsrepo.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for summary")
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	projects, err := s.projectRepo.ListProjects(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load projects for summary")
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return computeSummary(txns, projects, viewed), nil
}

// transactionMonth extracts the YYYY-MM bucket from a stored date. Matching is
// a string-prefix check; a malformed date simply never matches a bucket.
func transactionMonth(date string) string {
	if len(date) < len(domain.MonthFormat) {
		return ""
	}
	return date[:len(domain.MonthFormat)]
}

// computeSummary builds the dashboard state for the viewed month from the
// complete transaction and project sets.
func computeSummary(txns []domain.Transaction, projects []domain.Project, viewed time.Time) *domain.DashboardSummary {
	thisKey := domain.MonthKey(viewed)
	lastKey := domain.MonthKey(domain.PreviousMonth(viewed))

	var thisMonth, lastMonth domain.MonthlySummary
	balance := decimal.Zero
	target := decimal.Zero
	hasTarget := false

	for _, txn := range txns {
		month := transactionMonth(txn.Date)
		switch txn.Type {
		case domain.TypeIncome:
			balance = balance.Add(txn.Amount)
			if month == thisKey {
				thisMonth.CashIn = thisMonth.CashIn.Add(txn.Amount)
			} else if month == lastKey {
				lastMonth.CashIn = lastMonth.CashIn.Add(txn.Amount)
			}
		case domain.TypeExpense:
			balance = balance.Sub(txn.Amount)
			if month == thisKey {
				thisMonth.CashOut = thisMonth.CashOut.Add(txn.Amount)
			} else if month == lastKey {
				lastMonth.CashOut = lastMonth.CashOut.Add(txn.Amount)
			}
		case domain.TypeTarget:
			if month == thisKey {
				target = target.Add(txn.Amount)
				hasTarget = true
			}
		}
	}

	beforeLastKey := domain.MonthKey(domain.PreviousMonth(domain.PreviousMonth(viewed)))
	accumulateInvoices(&thisMonth, &lastMonth, projects, thisKey, lastKey, beforeLastKey)
	accumulateQuotations(&thisMonth, &lastMonth, projects, thisKey, lastKey)

	summary := &domain.DashboardSummary{
		Month:          thisKey,
		PreviousMonth:  lastKey,
		ThisMonth:      thisMonth,
		LastMonth:      lastMonth,
		Balance:        balance,
		CashInChange:   domain.PercentChange(thisMonth.CashIn, lastMonth.CashIn, false),
		CashOutChange:  domain.PercentChange(thisMonth.CashOut, lastMonth.CashOut, true),
		QuotationDelta: domain.PercentChange(thisMonth.QuotationTotal, lastMonth.QuotationTotal, false),
		InvoiceDelta:   domain.PercentChange(thisMonth.TotalInvoice, lastMonth.TotalInvoice, false),
		Goal: domain.GoalProgress{
			Target:    target,
			Achieved:  thisMonth.CashIn,
			HasTarget: hasTarget,
		},
	}
	if target.IsPositive() {
		pct := thisMonth.CashIn.Div(target).Mul(decimalHundred)
		summary.Goal.Percent = &pct
	}
	return summary
}

// accumulateInvoices walks the expanded scheduled invoices of every billing
// stage project. An invoice due in the viewed month adds its project's total
// amount to total_invoice once per project, however many of its milestones
// land in the month; paid invoices add their own amounts to paid_invoice.
// Unpaid invoices due the previous month become this month's payable backlog;
// the month before last feeds last month's backlog the same way.
func accumulateInvoices(thisMonth, lastMonth *domain.MonthlySummary, projects []domain.Project, thisKey, lastKey, beforeLastKey string) {
	seenThis := make(map[string]struct{})
	seenLast := make(map[string]struct{})

	for i := range projects {
		p := projects[i]
		if !p.Status.InBillingStage() {
			continue
		}
		for _, inv := range domain.ExpandInvoices(p) {
			switch transactionMonth(inv.DueDate) {
			case thisKey:
				if _, ok := seenThis[inv.ProjectID]; !ok {
					seenThis[inv.ProjectID] = struct{}{}
					thisMonth.TotalInvoice = thisMonth.TotalInvoice.Add(p.TotalAmount)
				}
				if inv.Paid {
					thisMonth.PaidInvoice = thisMonth.PaidInvoice.Add(inv.Amount)
				}
			case lastKey:
				if _, ok := seenLast[inv.ProjectID]; !ok {
					seenLast[inv.ProjectID] = struct{}{}
					lastMonth.TotalInvoice = lastMonth.TotalInvoice.Add(p.TotalAmount)
				}
				if inv.Paid {
					lastMonth.PaidInvoice = lastMonth.PaidInvoice.Add(inv.Amount)
				} else {
					thisMonth.Payable = thisMonth.Payable.Add(inv.Amount)
				}
			case beforeLastKey:
				if !inv.Paid {
					lastMonth.Payable = lastMonth.Payable.Add(inv.Amount)
				}
			}
		}
	}

	setPayableRate(thisMonth)
	setPayableRate(lastMonth)
}

func setPayableRate(m *domain.MonthlySummary) {
	if m.TotalInvoice.IsPositive() {
		rate := m.PaidInvoice.Div(m.TotalInvoice).Mul(decimalHundred)
		m.PayableRate = &rate
	}
}

// accumulateQuotations counts deal volume per month: quotation-status projects
// plus projects flagged converted_quotation, so a won deal keeps counting
// toward the month it was quoted in. A project contributes to exactly one
// month bucket, so the per-month dedup by project id is inherent here.
func accumulateQuotations(thisMonth, lastMonth *domain.MonthlySummary, projects []domain.Project, thisKey, lastKey string) {
	for i := range projects {
		p := projects[i]
		if p.Status != domain.StatusQuotation && !p.ConvertedQuotation {
			continue
		}
		switch p.QuotationMonth() {
		case thisKey:
			thisMonth.QuotationTotal = thisMonth.QuotationTotal.Add(p.TotalAmount)
			thisMonth.QuotationCount++
		case lastKey:
			lastMonth.QuotationTotal = lastMonth.QuotationTotal.Add(p.TotalAmount)
			lastMonth.QuotationCount++
		}
	}
}
