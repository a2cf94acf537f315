package services_test

import (
	"context"
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindBySource(ctx context.Context, userID, projectID string, milestoneIndex int) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, projectID, milestoneIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByTitlePrefix(ctx context.Context, userID, prefix string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// MockProjectRepository is a mock type for the ProjectRepositoryFacade interface
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProjectWithReconciliation(ctx context.Context, project domain.Project, plan domain.ReconciliationPlan) (domain.ReconciliationResult, error) {
	args := m.Called(ctx, project, plan)
	if args.Get(0) == nil {
		return domain.ReconciliationResult{}, args.Error(1)
	}
	return args.Get(0).(domain.ReconciliationResult), args.Error(1)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, userID, projectID string) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

// MockContactRepository is a mock type for the ContactRepositoryFacade interface
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, userID, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepository) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, userID, contactID string) error {
	args := m.Called(ctx, userID, contactID)
	return args.Error(0)
}

// MockActivityRepository is a mock type for the ActivityRepository interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.ProjectActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListActivitiesByProject(ctx context.Context, userID, projectID string, limit int, nextToken *string) ([]domain.ProjectActivity, *string, error) {
	args := m.Called(ctx, userID, projectID, limit, nextToken)
	var activities []domain.ProjectActivity
	if args.Get(0) != nil {
		activities = args.Get(0).([]domain.ProjectActivity)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return activities, next, args.Error(2)
}

// MockSummaryService is a mock type for the SummarySvc interface
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Summary(ctx context.Context, userID string, viewed time.Time) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, userID, viewed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

// MockReconciler is a mock type for the ReconcilerSvc interface
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Plan(ctx context.Context, previous *domain.Project, updated domain.Project, userID string) domain.ReconciliationPlan {
	args := m.Called(ctx, previous, updated, userID)
	return args.Get(0).(domain.ReconciliationPlan)
}
