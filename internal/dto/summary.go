package dto

import (
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySummaryResponse is one month's aggregate figures. PayableRate is
// null when the month has no invoices ("No invoices" on the dashboard).
type MonthlySummaryResponse struct {
	CashIn         decimal.Decimal  `json:"cashIn"`
	CashOut        decimal.Decimal  `json:"cashOut"`
	QuotationTotal decimal.Decimal  `json:"quotationTotal"`
	QuotationCount int              `json:"quotationCount"`
	TotalInvoice   decimal.Decimal  `json:"totalInvoice"`
	PaidInvoice    decimal.Decimal  `json:"paidInvoice"`
	Payable        decimal.Decimal  `json:"payable"`
	PayableRate    *decimal.Decimal `json:"payableRate"`
}

// SummaryResponse is the dashboard summary for a viewed month.
type SummaryResponse struct {
	Month         string                 `json:"month"`
	PreviousMonth string                 `json:"previousMonth"`
	ThisMonth     MonthlySummaryResponse `json:"thisMonth"`
	LastMonth     MonthlySummaryResponse `json:"lastMonth"`
	Balance       decimal.Decimal        `json:"balance"`
	CashInChange  domain.ChangeStat      `json:"cashInChange"`
	CashOutChange domain.ChangeStat      `json:"cashOutChange"`
	QuotationChg  domain.ChangeStat      `json:"quotationChange"`
	InvoiceChg    domain.ChangeStat      `json:"invoiceChange"`
	Goal          domain.GoalProgress    `json:"goal"`
}

func toMonthlySummaryResponse(m domain.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		CashIn:         m.CashIn,
		CashOut:        m.CashOut,
		QuotationTotal: m.QuotationTotal,
		QuotationCount: m.QuotationCount,
		TotalInvoice:   m.TotalInvoice,
		PaidInvoice:    m.PaidInvoice,
		Payable:        m.Payable,
		PayableRate:    m.PayableRate,
	}
}

// ToSummaryResponse converts a domain.DashboardSummary to its response DTO.
func ToSummaryResponse(s *domain.DashboardSummary) SummaryResponse {
	return SummaryResponse{
		Month:         s.Month,
		PreviousMonth: s.PreviousMonth,
		ThisMonth:     toMonthlySummaryResponse(s.ThisMonth),
		LastMonth:     toMonthlySummaryResponse(s.LastMonth),
		Balance:       s.Balance,
		CashInChange:  s.CashInChange,
		CashOutChange: s.CashOutChange,
		QuotationChg:  s.QuotationDelta,
		InvoiceChg:    s.InvoiceDelta,
		Goal:          s.Goal,
	}
}

// CalendarEntryResponse is one line in a day's merged calendar view.
type CalendarEntryResponse struct {
	Kind        string          `json:"kind"`
	SourceID    string          `json:"sourceID"`
	ProjectID   string          `json:"projectID,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToCalendarEntryResponses converts a day's merged entries.
func ToCalendarEntryResponses(entries []domain.CalendarEntry) []CalendarEntryResponse {
	responses := make([]CalendarEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, CalendarEntryResponse{
			Kind:        string(e.Kind),
			SourceID:    e.SourceID,
			ProjectID:   e.ProjectID,
			Title:       e.Title,
			Description: e.Description,
			Date:        e.Date,
			Type:        string(e.Type),
			Amount:      e.Amount,
		})
	}
	return responses
}
