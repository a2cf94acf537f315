package services

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/flujoapp/flujo_backend/internal/dto"
)

// TransactionSvcFacade defines operations for managing cashflow transactions.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}
