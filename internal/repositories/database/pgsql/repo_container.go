package pgsql

import (
	"log/slog"

	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, logger *slog.Logger) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ContactRepo:     newPgxContactRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ProjectRepo:     newPgxProjectRepository(dbPool),
		ActivityRepo:    newPgxActivityRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		Listener:        newPgxChangeListener(dbPool, logger),
	}
}
