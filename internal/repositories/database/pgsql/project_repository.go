package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/flujoapp/flujo_backend/internal/models"
	"github.com/flujoapp/flujo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `project_id, name, client_name, status, total_amount, payment_schedule, tasks, contact_id, to_char(start_date, 'YYYY-MM-DD'), converted_quotation, user_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func scanProject(row pgx.Row) (*models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.Name,
		&m.ClientName,
		&m.Status,
		&m.TotalAmount,
		&m.PaymentSchedule,
		&m.Tasks,
		&m.ContactID,
		&m.StartDate,
		&m.ConvertedQuotation,
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

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m, err := mapping.ToModelProject(project)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (project_id, name, client_name, status, total_amount, payment_schedule, tasks, contact_id, start_date, converted_quotation, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.ClientName,
		m.Status,
		m.TotalAmount,
		m.PaymentSchedule,
		m.Tasks,
		m.ContactID,
		m.StartDate,
		m.ConvertedQuotation,
		m.UserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: project with ID %s already exists", apperrors.ErrDuplicate, m.ProjectID)
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE project_id = $1 AND user_id = $2;`, projectColumns)

	m, err := scanProject(r.Pool.QueryRow(ctx, query, projectID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	d := mapping.ToDomainProject(*m)
	return &d, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE user_id = $1 ORDER BY created_at DESC;`, projectColumns)

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, mapping.ToDomainProject(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProjectWithReconciliation(ctx context.Context, project domain.Project, plan domain.ReconciliationPlan) (domain.ReconciliationResult, error) {
	var result domain.ReconciliationResult

	tx, err := r.Begin(ctx)
	if err != nil {
		return result, err
	}
	defer r.Rollback(ctx, tx)

	if err := updateProjectRow(ctx, tx, project); err != nil {
		return result, err
	}

	// Each income write runs under its own savepoint so one bad record is
	// skipped and reported without aborting the project update or the
	// remaining records.
	for _, txn := range plan.Create {
		if err := inSavepoint(ctx, tx, func(sp pgx.Tx) error {
			return insertTransaction(ctx, sp, txn)
		}); err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("failed to create income record for milestone of project %s: %v", project.ProjectID, err))
			continue
		}
		result.Created = append(result.Created, txn)
	}
	for _, txn := range plan.Remove {
		err := inSavepoint(ctx, tx, func(sp pgx.Tx) error {
			return deleteTransaction(ctx, sp, txn.UserID, txn.TransactionID)
		})
		if errors.Is(err, apperrors.ErrNotFound) {
			// Already gone, nothing to undo.
			continue
		}
		if err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("failed to remove income record %s: %v", txn.TransactionID, err))
			continue
		}
		result.Removed = append(result.Removed, txn)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return domain.ReconciliationResult{}, err
	}
	return result, nil
}

// inSavepoint runs fn inside a nested transaction, which pgx maps to a
// savepoint, so a failure rolls back only fn's own writes.
func inSavepoint(ctx context.Context, tx pgx.Tx, fn func(sp pgx.Tx) error) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(sp); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

// updateProjectRow writes the project row through db, which may be the pool
// or an open transaction.
func updateProjectRow(ctx context.Context, db pgxExecutor, project domain.Project) error {
	m, err := mapping.ToModelProject(project)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = $1, client_name = $2, status = $3, total_amount = $4, payment_schedule = $5, tasks = $6, contact_id = $7, start_date = $8::date, converted_quotation = $9, last_updated_at = $10, last_updated_by = $11
		WHERE project_id = $12 AND user_id = $13;
	`
	tag, err := db.Exec(ctx, query,
		m.Name,
		m.ClientName,
		m.Status,
		m.TotalAmount,
		m.PaymentSchedule,
		m.Tasks,
		m.ContactID,
		m.StartDate,
		m.ConvertedQuotation,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ProjectID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", m.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, userID, projectID string) error {
	query := `DELETE FROM projects WHERE project_id = $1 AND user_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
