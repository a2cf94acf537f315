package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.SummarySvc
	userID          string
	viewed          time.Time
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewSummaryService(suite.mockTxnRepo, suite.mockProjectRepo)
	suite.userID = uuid.NewString()
	// Viewing August 2025; the previous bucket is July 2025.
	suite.viewed = time.Date(2025, time.August, 29, 12, 0, 0, 0, time.UTC)
}

func (suite *SummaryServiceTestSuite) expectData(txns []domain.Transaction, projects []domain.Project) {
	suite.mockTxnRepo.On("ListTransactions", context.Background(), suite.userID, portsrepo.TransactionFilter{}).
		Return(txns, nil).Once()
	suite.mockProjectRepo.On("ListProjects", context.Background(), suite.userID).
		Return(projects, nil).Once()
}

func txnOn(date string, txnType domain.TransactionType, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          date,
		Type:          txnType,
		Title:         "record",
		Amount:        decimal.NewFromInt(amount),
	}
}

func (suite *SummaryServiceTestSuite) TestCashFlowBucketsAndChanges() {
	suite.expectData([]domain.Transaction{
		txnOn("2025-08-05", domain.TypeIncome, 1000),
		txnOn("2025-07-20", domain.TypeIncome, 400),
		txnOn("2025-08-10", domain.TypeExpense, 150),
		txnOn("2025-01-03", domain.TypeIncome, 99), // balance only, outside both buckets
	}, nil)

	summary, err := suite.service.Summary(context.Background(), suite.userID, suite.viewed)

	suite.Require().NoError(err)
	suite.Equal("2025-08", summary.Month)
	suite.Equal("2025-07", summary.PreviousMonth)
	suite.True(summary.ThisMonth.CashIn.Equal(decimal.NewFromInt(1000)))
	suite.True(summary.LastMonth.CashIn.Equal(decimal.NewFromInt(400)))
	suite.True(summary.ThisMonth.CashOut.Equal(decimal.NewFromInt(150)))
	suite.True(summary.Balance.Equal(decimal.NewFromInt(1349)))

	// 1000 vs 400 is a +150% change.
	suite.True(summary.CashInChange.Percent.Equal(decimal.NewFromInt(150)))
	suite.Equal(domain.TrendUp, summary.CashInChange.Trend)
	suite.True(summary.CashInChange.Favorable)

	// Cash out rose from zero, which reads as +100% and is unfavorable.
	suite.True(summary.CashOutChange.Percent.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.TrendUp, summary.CashOutChange.Trend)
	suite.False(summary.CashOutChange.Favorable)
}

func (suite *SummaryServiceTestSuite) TestEmptyMonthsReadAsFlatZero() {
	suite.expectData([]domain.Transaction{
		txnOn("2024-02-01", domain.TypeIncome, 777),
	}, nil)

	summary, err := suite.service.Summary(context.Background(), suite.userID, suite.viewed)

	suite.Require().NoError(err)
	suite.True(summary.ThisMonth.CashIn.IsZero())
	suite.True(summary.LastMonth.CashIn.IsZero())
	suite.Equal(domain.TrendFlat, summary.CashInChange.Trend)
	suite.True(summary.CashInChange.Favorable)
	suite.Nil(summary.ThisMonth.PayableRate)
}

func (suite *SummaryServiceTestSuite) TestInvoicePassDedupesProjectTotalAcrossMilestones() {
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        "Brand Refresh",
		Status:      domain.StatusPartiallyPaid,
		TotalAmount: decimal.NewFromInt(2000),
		Schedule: &domain.PaymentSchedule{
			Type: domain.ScheduleStaggered,
			Milestones: []domain.Milestone{
				{Percentage: decimal.NewFromInt(25), DueDate: "2025-08-01", Completed: true},
				{Percentage: decimal.NewFromInt(25), DueDate: "2025-08-20", Completed: false},
				{Percentage: decimal.NewFromInt(50), DueDate: "2025-07-10", Completed: false},
			},
		},
	}
	suite.expectData(nil, []domain.Project{project})

	summary, err := suite.service.Summary(context.Background(), suite.userID, suite.viewed)

	suite.Require().NoError(err)
	// Two milestones due in August still count the project total once.
	suite.True(summary.ThisMonth.TotalInvoice.Equal(decimal.NewFromInt(2000)))
	suite.True(summary.ThisMonth.PaidInvoice.Equal(decimal.NewFromInt(500)))
	// The unpaid July milestone (50% of 2000) is this month's payable backlog.
	suite.True(summary.ThisMonth.Payable.Equal(decimal.NewFromInt(1000)))

	suite.Require().NotNil(summary.ThisMonth.PayableRate)
	suite.True(summary.ThisMonth.PayableRate.Equal(decimal.NewFromInt(25)))
}

func (suite *SummaryServiceTestSuite) TestLastMonthCarriesItsOwnPayableBacklog() {
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        "Long Runner",
		Status:      domain.StatusPartiallyPaid,
		TotalAmount: decimal.NewFromInt(900),
		Schedule: &domain.PaymentSchedule{
			Type: domain.ScheduleStaggered,
			Milestones: []domain.Milestone{
				// Unpaid June milestone: July's backlog, viewed from August.
				{Percentage: decimal.NewFromInt(40), DueDate: "2025-06-15", Completed: false},
				{Percentage: decimal.NewFromInt(30), DueDate: "2025-07-15", Completed: false},
				{Percentage: decimal.NewFromInt(30), DueDate: "2025-08-15", Completed: true},
			},
		},
	}
	suite.expectData(nil, []domain.Project{project})

	summary, err := suite.service.Summary(context.Background(), suite.userID, suite.viewed)

	suite.Require().NoError(err)
	suite.True(summary.LastMonth.Payable.Equal(decimal.NewFromInt(360)))
	suite.True(summary.ThisMonth.Payable.Equal(decimal.NewFromInt(270)))
}

func (suite *SummaryServiceTestSuite) TestQuotationPassCountsConvertedProjects() {
	quoted := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        "New Lead",
		Status:      domain.StatusQuotation,
		TotalAmount: decimal.NewFromInt(5000),
		StartDate:   "2025-08-02",
	}
	converted := domain.Project{
		ProjectID:          uuid.NewString(),
		Name:               "Won Deal",
		Status:             domain.StatusInvoice,
		TotalAmount:        decimal.NewFromInt(800),
		StartDate:          "2025-07-01",
		ConvertedQuotation: true,
	}
	inquiry := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        "Just Asking",
		Status:      domain.StatusInquiry,
		TotalAmount: decimal.NewFromInt(123),
		StartDate:   "2025-08-03",
	}
	suite.expectData(nil, []domain.Project{quoted, converted, inquiry})

	summary, err := suite.service.Summary(context.Background(), suite.userID, suite.viewed)

	suite.Require().NoError(err)
	suite.True(summary.ThisMonth.QuotationTotal.Equal(decimal.NewFromInt(5000)))
	suite.Equal(1, summary.ThisMonth.QuotationCount)
	// The converted deal keeps counting toward July, the month it was quoted.
	suite.True(summary.LastMonth.QuotationTotal.Equal(decimal.NewFromInt(800)))
	suite.Equal(1, summary.LastMonth.QuotationCount)
}

func (suite *SummaryServiceTestSuite) TestGoalProgressFromTargetRecords() {
	suite.expectData([]domain.Transaction{
		txnOn("2025-08-01", domain.TypeTarget, 2000),
		txnOn("2025-08-05", domain.TypeIncome, 1000),
	}, nil)

	summary, err := suite.service.Summary(context.Background(), suite.userID, suite.viewed)

	suite.Require().NoError(err)
	suite.True(summary.Goal.HasTarget)
	suite.True(summary.Goal.Target.Equal(decimal.NewFromInt(2000)))
	suite.True(summary.Goal.Achieved.Equal(decimal.NewFromInt(1000)))
	suite.Require().NotNil(summary.Goal.Percent)
	suite.True(summary.Goal.Percent.Equal(decimal.NewFromInt(50)))
}

func (suite *SummaryServiceTestSuite) TestMonthBoundaryUsesFirstOfMonth() {
	// March 31st: the previous bucket must be February, not March again via
	// AddDate normalisation.
	viewed := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	suite.expectData(nil, nil)

	summary, err := suite.service.Summary(context.Background(), suite.userID, viewed)

	suite.Require().NoError(err)
	suite.Equal("2025-03", summary.Month)
	suite.Equal("2025-02", summary.PreviousMonth)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
