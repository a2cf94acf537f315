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

const contactColumns = `contact_id, name, company, email, phone, notes, user_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxContactRepository struct {
	BaseRepository
}

// newPgxContactRepository creates a new repository for contact data.
func newPgxContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

func scanContact(row pgx.Row) (*models.Contact, error) {
	var m models.Contact
	err := row.Scan(
		&m.ContactID,
		&m.Name,
		&m.Company,
		&m.Email,
		&m.Phone,
		&m.Notes,
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

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)

	query := `
		INSERT INTO contacts (contact_id, name, company, email, phone, notes, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContactID,
		m.Name,
		m.Company,
		m.Email,
		m.Phone,
		m.Notes,
		m.UserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: contact with ID %s already exists", apperrors.ErrDuplicate, m.ContactID)
		}
		return fmt.Errorf("failed to save contact %s: %w", m.ContactID, err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE contact_id = $1 AND user_id = $2;`, contactColumns)

	m, err := scanContact(r.Pool.QueryRow(ctx, query, contactID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact by ID %s: %w", contactID, err)
	}
	d := mapping.ToDomainContact(*m)
	return &d, nil
}

func (r *PgxContactRepository) ListContacts(ctx context.Context, userID string) ([]domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE user_id = $1 ORDER BY name;`, contactColumns)

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, mapping.ToDomainContact(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating contact rows: %w", err)
	}
	return contacts, nil
}

func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)

	query := `
		UPDATE contacts
		SET name = $1, company = $2, email = $3, phone = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE contact_id = $8 AND user_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Company,
		m.Email,
		m.Phone,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ContactID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", m.ContactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxContactRepository) DeleteContact(ctx context.Context, userID, contactID string) error {
	query := `DELETE FROM contacts WHERE contact_id = $1 AND user_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, contactID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", contactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
