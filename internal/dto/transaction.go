package dto

import (
	"time"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Amount is unsigned; the type implies the sign.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required,calendardate"`
	Type        string          `json:"type" binding:"required,oneof=income expense payable target task"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Pointers distinguish zero-value updates from fields not
// provided.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date" binding:"omitempty,calendardate"`
	Type        *string          `json:"type" binding:"omitempty,oneof=income expense payable target task"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string          `json:"transactionID"`
	Date                 string          `json:"date"`
	Type                 string          `json:"type"`
	Title                string          `json:"title"`
	Description          string          `json:"description,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	SourceProjectID      string          `json:"sourceProjectID,omitempty"`
	SourceMilestoneIndex *int            `json:"sourceMilestoneIndex,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		Date:                 t.Date,
		Type:                 string(t.Type),
		Title:                t.Title,
		Description:          t.Description,
		Amount:               t.Amount,
		SourceProjectID:      t.SourceProjectID,
		SourceMilestoneIndex: t.SourceMilestoneIndex,
		CreatedAt:            t.CreatedAt,
		LastUpdatedAt:        t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, ToTransactionResponse(&txns[i]))
	}
	return responses
}
