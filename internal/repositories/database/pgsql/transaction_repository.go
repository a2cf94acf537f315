package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/flujoapp/flujo_backend/internal/models"
	"github.com/flujoapp/flujo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, to_char(date, 'YYYY-MM-DD'), type, title, description, amount, source_project_id, source_milestone_index, user_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Date,
		&m.Type,
		&m.Title,
		&m.Description,
		&m.Amount,
		&m.SourceProjectID,
		&m.SourceMilestoneIndex,
		&m.UserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, txn)
}

// insertTransaction persists a new transaction through db, which may be the
// pool or an open transaction.
func insertTransaction(ctx context.Context, db pgxExecutor, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (transaction_id, date, type, title, description, amount, source_project_id, source_milestone_index, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := db.Exec(ctx, query,
		m.TransactionID,
		m.Date,
		m.Type,
		m.Title,
		m.Description,
		m.Amount,
		m.SourceProjectID,
		m.SourceMilestoneIndex,
		m.UserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionColumns)

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Month != "" {
		args = append(args, filter.Month)
		conditions = append(conditions, fmt.Sprintf("to_char(date, 'YYYY-MM') = $%d", len(args)))
	}
	if filter.FromDate != "" {
		args = append(args, filter.FromDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d::date", len(args)))
	}
	if filter.ToDate != "" {
		args = append(args, filter.ToDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d::date", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY date, created_at;`,
		transactionColumns, strings.Join(conditions, " AND "))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindBySource(ctx context.Context, userID, projectID string, milestoneIndex int) (*domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE user_id = $1 AND source_project_id = $2 AND source_milestone_index = $3 AND type = 'income'
		ORDER BY created_at DESC
		LIMIT 1;`, transactionColumns)

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, userID, projectID, milestoneIndex))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by source %s/%d: %w", projectID, milestoneIndex, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

func (r *PgxTransactionRepository) FindByTitlePrefix(ctx context.Context, userID, prefix string) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE user_id = $1 AND type = 'income' AND title LIKE $2 || '%%'
		ORDER BY created_at DESC;`, transactionColumns)

	rows, err := r.Pool.Query(ctx, query, userID, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by title prefix: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET date = $1::date, type = $2, title = $3, description = $4, amount = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $8 AND user_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Date,
		m.Type,
		m.Title,
		m.Description,
		m.Amount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.TransactionID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return deleteTransaction(ctx, r.Pool, userID, transactionID)
}

// deleteTransaction removes a transaction through db, which may be the pool
// or an open transaction.
func deleteTransaction(ctx context.Context, db pgxExecutor, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`

	tag, err := db.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
