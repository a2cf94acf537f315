package services_test

import (
	"context"
	"testing"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.ReconcilerSvc
	userID      string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewReconciliationService(suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func fullScheduleProject(name string, total int64, completed bool) domain.Project {
	return domain.Project{
		ProjectID:   "proj-" + name,
		Name:        name,
		Status:      domain.StatusInvoice,
		TotalAmount: decimal.NewFromInt(total),
		Schedule: &domain.PaymentSchedule{
			Type:      domain.ScheduleFull,
			DueDate:   "2025-08-15",
			Completed: completed,
		},
	}
}

func staggeredProject(name string, total int64, completed ...bool) domain.Project {
	milestones := make([]domain.Milestone, 0, len(completed))
	pct := decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(len(completed))))
	for _, done := range completed {
		milestones = append(milestones, domain.Milestone{
			Percentage: pct,
			DueDate:    "2025-08-20",
			Completed:  done,
		})
	}
	return domain.Project{
		ProjectID:   "proj-" + name,
		Name:        name,
		Status:      domain.StatusInvoice,
		TotalAmount: decimal.NewFromInt(total),
		Schedule: &domain.PaymentSchedule{
			Type:       domain.ScheduleStaggered,
			Milestones: milestones,
		},
	}
}

func (suite *ReconciliationServiceTestSuite) TestFullPaymentTogglePlansOneIncomeRecord() {
	ctx := context.Background()
	previous := fullScheduleProject("Website Build", 1000, false)
	updated := fullScheduleProject("Website Build", 1000, true)

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.Require().Len(plan.Create, 1)
	txn := plan.Create[0]
	suite.Equal(domain.TypeIncome, txn.Type)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(1000)))
	suite.Equal(services.FullPaymentTitle("Website Build"), txn.Title)
	suite.Equal("2025-08-15", txn.Date)
	suite.Equal(updated.ProjectID, txn.SourceProjectID)
	suite.Require().NotNil(txn.SourceMilestoneIndex)
	suite.Equal(domain.FullScheduleIndex, *txn.SourceMilestoneIndex)
	suite.Empty(plan.Remove)
	suite.Empty(plan.Failures)
}

func (suite *ReconciliationServiceTestSuite) TestFullPaymentUntogglePlansTheRemoval() {
	ctx := context.Background()
	previous := fullScheduleProject("Website Build", 1000, true)
	updated := fullScheduleProject("Website Build", 1000, false)

	existing := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            domain.TypeIncome,
		Amount:          decimal.NewFromInt(1000),
		Title:           services.FullPaymentTitle("Website Build"),
		SourceProjectID: updated.ProjectID,
	}
	suite.mockTxnRepo.On("FindBySource", ctx, suite.userID, updated.ProjectID, domain.FullScheduleIndex).
		Return(existing, nil).Once()

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.Empty(plan.Create)
	suite.Require().Len(plan.Remove, 1)
	suite.Equal(existing.TransactionID, plan.Remove[0].TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestStaggeredPayAllPlansPerMilestoneRecordsOnly() {
	ctx := context.Background()
	previous := staggeredProject("App Design", 1000, false, false)
	updated := staggeredProject("App Design", 1000, true, true)

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	half := decimal.NewFromInt(500)
	suite.Require().Len(plan.Create, 2)
	for _, txn := range plan.Create {
		suite.True(txn.Amount.Equal(half), "each milestone record carries its own share, never the project total")
		suite.Equal(services.MilestonePaymentTitle("App Design"), txn.Title)
		suite.Require().NotNil(txn.SourceMilestoneIndex)
		suite.NotEqual(domain.FullScheduleIndex, *txn.SourceMilestoneIndex)
	}
}

func (suite *ReconciliationServiceTestSuite) TestPartialStaggeredPayment() {
	ctx := context.Background()
	previous := staggeredProject("App Design", 1000, false, false)
	updated := staggeredProject("App Design", 1000, true, false)

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.Require().Len(plan.Create, 1)
	suite.Require().NotNil(plan.Create[0].SourceMilestoneIndex)
	suite.Equal(0, *plan.Create[0].SourceMilestoneIndex)
}

func (suite *ReconciliationServiceTestSuite) TestRepeatedSavePlansNothing() {
	ctx := context.Background()
	previous := staggeredProject("App Design", 1000, true, false)
	updated := staggeredProject("App Design", 1000, true, false)

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.True(plan.IsEmpty())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindBySource", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestFirstSaveHasNoPreviousAndPlansNothing() {
	ctx := context.Background()
	updated := fullScheduleProject("Website Build", 1000, true)

	plan := suite.service.Plan(ctx, nil, updated, suite.userID)

	suite.True(plan.IsEmpty())
}

func (suite *ReconciliationServiceTestSuite) TestRemovalFallsBackToLegacyTitleLookup() {
	ctx := context.Background()
	previous := fullScheduleProject("Old Project", 800, true)
	updated := fullScheduleProject("Old Project", 800, false)

	legacy := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TypeIncome,
		Amount:        decimal.NewFromInt(800),
		Title:         services.FullPaymentTitle("Old Project"),
	}
	suite.mockTxnRepo.On("FindBySource", ctx, suite.userID, updated.ProjectID, domain.FullScheduleIndex).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("FindByTitlePrefix", ctx, suite.userID, services.FullPaymentTitle("Old Project")).
		Return([]domain.Transaction{legacy}, nil).Once()

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.Require().Len(plan.Remove, 1)
	suite.Equal(legacy.TransactionID, plan.Remove[0].TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestMissingRecordOnRemovalIsSwallowed() {
	ctx := context.Background()
	previous := fullScheduleProject("Ghost", 500, true)
	updated := fullScheduleProject("Ghost", 500, false)

	suite.mockTxnRepo.On("FindBySource", ctx, suite.userID, updated.ProjectID, domain.FullScheduleIndex).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("FindByTitlePrefix", ctx, suite.userID, services.FullPaymentTitle("Ghost")).
		Return([]domain.Transaction{}, nil).Once()

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.True(plan.IsEmpty())
	suite.Empty(plan.Failures)
}

func (suite *ReconciliationServiceTestSuite) TestOneFailedLookupDoesNotAbortRemainingMilestones() {
	ctx := context.Background()
	previous := staggeredProject("Retainer", 1000, true, true)
	updated := staggeredProject("Retainer", 1000, false, false)

	resolvable := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		Type:            domain.TypeIncome,
		Amount:          decimal.NewFromInt(500),
		Title:           services.MilestonePaymentTitle("Retainer"),
		SourceProjectID: updated.ProjectID,
	}
	suite.mockTxnRepo.On("FindBySource", ctx, suite.userID, updated.ProjectID, 0).
		Return(nil, assert.AnError).Once()
	suite.mockTxnRepo.On("FindBySource", ctx, suite.userID, updated.ProjectID, 1).
		Return(resolvable, nil).Once()

	plan := suite.service.Plan(ctx, &previous, updated, suite.userID)

	suite.Require().Len(plan.Remove, 1)
	suite.Equal(resolvable.TransactionID, plan.Remove[0].TransactionID)
	suite.Len(plan.Failures, 1)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
