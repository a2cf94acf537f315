package repositories

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
)

// TransactionFilter narrows transaction listings. Zero values mean "no
// constraint"; Month is a YYYY-MM prefix, FromDate/ToDate are inclusive
// YYYY-MM-DD bounds.
type TransactionFilter struct {
	Month    string
	FromDate string
	ToDate   string
	Type     domain.TransactionType
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction owned by userID.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions owned by userID matching the
	// filter, ordered by date then creation time.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)

	// FindBySource retrieves the engine-created income record for a
	// project's milestone (FullScheduleIndex for full schedules).
	FindBySource(ctx context.Context, userID, projectID string, milestoneIndex int) (*domain.Transaction, error)

	// FindByTitlePrefix retrieves income records whose title starts with the
	// given prefix. Legacy fallback for rows written before source linkage
	// existed.
	FindByTitlePrefix(ctx context.Context, userID, prefix string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction owned by userID.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
