package domain

import "github.com/shopspring/decimal"

// MonthlySummary holds the aggregate figures for one calendar month. All
// fields are rebuilt from raw records on every computation; nothing here is
// cached across refreshes.
type MonthlySummary struct {
	CashIn         decimal.Decimal  `json:"cashIn"`
	CashOut        decimal.Decimal  `json:"cashOut"`
	QuotationTotal decimal.Decimal  `json:"quotationTotal"`
	QuotationCount int              `json:"quotationCount"`
	TotalInvoice   decimal.Decimal  `json:"totalInvoice"`
	PaidInvoice    decimal.Decimal  `json:"paidInvoice"`
	Payable        decimal.Decimal  `json:"payable"`
	PayableRate    *decimal.Decimal `json:"payableRate"` // nil when no invoices this month
}

// Trend is the direction of a month-over-month change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// ChangeStat describes a metric's movement versus the previous month.
// Favorable carries the lower-is-better inversion for metrics like cash out,
// so clients colour the number without re-implementing the rule.
type ChangeStat struct {
	Percent   decimal.Decimal `json:"percent"`
	Trend     Trend           `json:"trend"`
	Favorable bool            `json:"favorable"`
}

// PercentChange computes a month-over-month delta with the dashboard's edge
// rules: both months zero reads as flat, a previous month of zero with a
// nonzero current month reads as +100%, everything else is the standard
// percentage delta.
func PercentChange(current, previous decimal.Decimal, lowerIsBetter bool) ChangeStat {
	var stat ChangeStat
	switch {
	case current.IsZero() && previous.IsZero():
		stat.Percent = decimal.Zero
		stat.Trend = TrendFlat
	case previous.IsZero():
		stat.Percent = oneHundred
		stat.Trend = TrendUp
	default:
		stat.Percent = current.Sub(previous).Div(previous).Mul(oneHundred)
		switch stat.Percent.Sign() {
		case 1:
			stat.Trend = TrendUp
		case -1:
			stat.Trend = TrendDown
		default:
			stat.Trend = TrendFlat
		}
	}
	switch stat.Trend {
	case TrendFlat:
		stat.Favorable = true
	case TrendUp:
		stat.Favorable = !lowerIsBetter
	case TrendDown:
		stat.Favorable = lowerIsBetter
	}
	return stat
}

// GoalProgress reports the month's income against its target-type records.
type GoalProgress struct {
	Target    decimal.Decimal  `json:"target"`
	Achieved  decimal.Decimal  `json:"achieved"`
	Percent   *decimal.Decimal `json:"percent"` // nil when no target is set
	HasTarget bool             `json:"hasTarget"`
}

// DashboardSummary is the full recomputed dashboard state for a viewed month.
type DashboardSummary struct {
	Month          string          `json:"month"`         // YYYY-MM
	PreviousMonth  string          `json:"previousMonth"` // YYYY-MM
	ThisMonth      MonthlySummary  `json:"thisMonth"`
	LastMonth      MonthlySummary  `json:"lastMonth"`
	Balance        decimal.Decimal `json:"balance"` // all-time income - expense
	CashInChange   ChangeStat      `json:"cashInChange"`
	CashOutChange  ChangeStat      `json:"cashOutChange"`
	QuotationDelta ChangeStat      `json:"quotationChange"`
	InvoiceDelta   ChangeStat      `json:"invoiceChange"`
	Goal           GoalProgress    `json:"goal"`
}
