package domain_test

import (
	"testing"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestone(pct int64, completed bool) domain.Milestone {
	return domain.Milestone{Percentage: decimal.NewFromInt(pct), Completed: completed}
}

func TestScheduleFromJSON_LegacyShapes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
	}{
		{name: "empty value", raw: "", wantNil: true},
		{name: "json null", raw: "null", wantNil: true},
		{name: "missing type", raw: `{"milestones":[{"percentage":50}]}`, wantNil: true},
		{name: "staggered without milestones", raw: `{"type":"staggered"}`, wantNil: true},
		{name: "unknown type", raw: `{"type":"installments"}`, wantNil: true},
		{name: "junk payload", raw: `"not-a-schedule"`, wantNil: true},
		{name: "valid full", raw: `{"type":"full","dueDate":"2025-08-15","completed":true}`, wantNil: false},
		{name: "valid staggered", raw: `{"type":"staggered","milestones":[{"percentage":50},{"percentage":50}]}`, wantNil: false},
		{name: "staggered with empty milestones", raw: `{"type":"staggered","milestones":[]}`, wantNil: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ScheduleFromJSON([]byte(tt.raw))
			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
			}
		})
	}
}

func TestScheduleFromJSON_NonNumericPercentage(t *testing.T) {
	raw := `{"type":"staggered","milestones":[{"percentage":"abc","completed":true},{"percentage":40}]}`
	s := domain.ScheduleFromJSON([]byte(raw))
	require.NotNil(t, s)
	require.Len(t, s.Milestones, 2)

	// The junk percentage decodes to zero, which drops the row from all counts.
	assert.True(t, s.Milestones[0].Percentage.IsZero())
	active := s.ActiveMilestones()
	require.Len(t, active, 1)
	assert.True(t, active[0].Percentage.Equal(decimal.NewFromInt(40)))
}

func TestScheduleFromJSON_QuotedPercentage(t *testing.T) {
	raw := `{"type":"staggered","milestones":[{"percentage":"25.5"}]}`
	s := domain.ScheduleFromJSON([]byte(raw))
	require.NotNil(t, s)
	require.Len(t, s.ActiveMilestones(), 1)
	assert.True(t, s.Milestones[0].Percentage.Equal(decimal.NewFromFloat(25.5)))
}

func TestDeriveStatus_ManualStagesUntouched(t *testing.T) {
	s := &domain.PaymentSchedule{Type: domain.ScheduleFull, Completed: true}
	assert.Equal(t, domain.StatusInquiry, s.DeriveStatus(domain.StatusInquiry))
	assert.Equal(t, domain.StatusQuotation, s.DeriveStatus(domain.StatusQuotation))
}

func TestDeriveStatus_Full(t *testing.T) {
	unpaid := &domain.PaymentSchedule{Type: domain.ScheduleFull}
	paid := &domain.PaymentSchedule{Type: domain.ScheduleFull, Completed: true}

	assert.Equal(t, domain.StatusInvoice, unpaid.DeriveStatus(domain.StatusInvoice))
	assert.Equal(t, domain.StatusCompleted, paid.DeriveStatus(domain.StatusInvoice))
	// Un-paying a completed project drops it back to invoice.
	assert.Equal(t, domain.StatusInvoice, unpaid.DeriveStatus(domain.StatusCompleted))
}

func TestDeriveStatus_Staggered(t *testing.T) {
	tests := []struct {
		name       string
		milestones []domain.Milestone
		want       domain.ProjectStatus
	}{
		{
			name:       "no milestones",
			milestones: []domain.Milestone{},
			want:       domain.StatusInvoice,
		},
		{
			name:       "none completed",
			milestones: []domain.Milestone{milestone(50, false), milestone(50, false)},
			want:       domain.StatusInvoice,
		},
		{
			name:       "some completed",
			milestones: []domain.Milestone{milestone(50, true), milestone(50, false)},
			want:       domain.StatusPartiallyPaid,
		},
		{
			name:       "all completed",
			milestones: []domain.Milestone{milestone(50, true), milestone(50, true)},
			want:       domain.StatusCompleted,
		},
		{
			name:       "zero-percentage rows are ignored",
			milestones: []domain.Milestone{milestone(0, false), milestone(100, true)},
			want:       domain.StatusCompleted,
		},
		{
			name:       "only zero-percentage rows",
			milestones: []domain.Milestone{milestone(0, true), milestone(0, false)},
			want:       domain.StatusInvoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &domain.PaymentSchedule{Type: domain.ScheduleStaggered, Milestones: tt.milestones}
			assert.Equal(t, tt.want, s.DeriveStatus(domain.StatusInvoice))
		})
	}
}

func TestDeriveStatus_NilSchedule(t *testing.T) {
	var s *domain.PaymentSchedule
	assert.Equal(t, domain.StatusInvoice, s.DeriveStatus(domain.StatusPartiallyPaid))
	assert.Equal(t, domain.StatusQuotation, s.DeriveStatus(domain.StatusQuotation))
}

func TestExpandInvoices(t *testing.T) {
	project := domain.Project{
		ProjectID:   "p1",
		Name:        "Website revamp",
		TotalAmount: decimal.NewFromInt(1000),
		Schedule: &domain.PaymentSchedule{
			Type: domain.ScheduleStaggered,
			Milestones: []domain.Milestone{
				{Percentage: decimal.NewFromInt(50), DueDate: "2025-08-10", Completed: true},
				{Percentage: decimal.Zero, DueDate: "2025-08-15"},
				{Percentage: decimal.NewFromInt(50), DueDate: "2025-09-01"},
			},
		},
	}

	invoices := domain.ExpandInvoices(project)
	require.Len(t, invoices, 2)

	assert.Equal(t, 0, invoices[0].MilestoneIndex)
	assert.True(t, invoices[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.True(t, invoices[0].Paid)

	// Index 2: the zero-percentage row keeps its slot but expands to nothing.
	assert.Equal(t, 2, invoices[1].MilestoneIndex)
	assert.False(t, invoices[1].Paid)
}

func TestExpandInvoices_Full(t *testing.T) {
	project := domain.Project{
		ProjectID:   "p2",
		Name:        "Logo design",
		TotalAmount: decimal.NewFromInt(350),
		Schedule:    &domain.PaymentSchedule{Type: domain.ScheduleFull, DueDate: "2025-08-20"},
	}

	invoices := domain.ExpandInvoices(project)
	require.Len(t, invoices, 1)
	assert.Equal(t, domain.FullScheduleIndex, invoices[0].MilestoneIndex)
	assert.True(t, invoices[0].Amount.Equal(project.TotalAmount))
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name          string
		current       int64
		previous      int64
		lowerIsBetter bool
		wantPercent   string
		wantTrend     domain.Trend
		wantFavorable bool
	}{
		{name: "both zero", current: 0, previous: 0, wantPercent: "0", wantTrend: domain.TrendFlat, wantFavorable: true},
		{name: "previous zero", current: 500, previous: 0, wantPercent: "100", wantTrend: domain.TrendUp, wantFavorable: true},
		{name: "standard increase", current: 1000, previous: 400, wantPercent: "150", wantTrend: domain.TrendUp, wantFavorable: true},
		{name: "standard decrease", current: 200, previous: 400, wantPercent: "-50", wantTrend: domain.TrendDown, wantFavorable: false},
		{name: "cash out rising is unfavorable", current: 300, previous: 100, lowerIsBetter: true, wantPercent: "200", wantTrend: domain.TrendUp, wantFavorable: false},
		{name: "cash out falling is favorable", current: 100, previous: 200, lowerIsBetter: true, wantPercent: "-50", wantTrend: domain.TrendDown, wantFavorable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.PercentChange(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.previous), tt.lowerIsBetter)
			assert.True(t, got.Percent.Equal(decimal.RequireFromString(tt.wantPercent)), "percent = %s", got.Percent)
			assert.Equal(t, tt.wantTrend, got.Trend)
			assert.Equal(t, tt.wantFavorable, got.Favorable)
		})
	}
}

func TestCalendarEntryKeys(t *testing.T) {
	entry := domain.CalendarEntry{
		Kind:     domain.EntryPayable,
		SourceID: domain.PayableSourceID("p1", 0),
		Title:    "  Invoice  Payment ",
		Date:     "2025-08-10",
		Amount:   decimal.NewFromInt(500),
	}
	assert.Equal(t, "payable|p1#0", entry.DedupKey())
	assert.Equal(t, "invoice payment|2025-08-10|500", entry.FuzzyKey())

	// No stable source id: identity degrades to the fuzzy key.
	legacy := domain.CalendarEntry{Kind: domain.EntryTransaction, Title: "Invoice Payment", Date: "2025-08-10", Amount: decimal.NewFromInt(500)}
	assert.Equal(t, "fuzzy|invoice payment|2025-08-10|500", legacy.DedupKey())
}
