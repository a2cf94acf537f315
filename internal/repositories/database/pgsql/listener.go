package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/flujoapp/flujo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// changeChannel is the NOTIFY channel the record-change triggers publish to.
const changeChannel = "record_changes"

const listenRetryDelay = 5 * time.Second

// PgxChangeListener streams LISTEN/NOTIFY events from the record-change
// triggers on the transactions and projects tables.
type PgxChangeListener struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// newPgxChangeListener creates a listener backed by a dedicated pooled
// connection.
func newPgxChangeListener(pool *pgxpool.Pool, logger *slog.Logger) portsrepo.ChangeListener {
	return &PgxChangeListener{pool: pool, logger: logger}
}

var _ portsrepo.ChangeListener = (*PgxChangeListener)(nil)

// Listen blocks until ctx is cancelled. A dropped connection is re-acquired
// after a delay; notifications raised while disconnected are lost, which is
// acceptable because consumers rebuild from the store rather than replaying
// a stream.
func (l *PgxChangeListener) Listen(ctx context.Context, handler func(portsrepo.ChangeEvent)) error {
	for {
		if err := l.listenOnce(ctx, handler); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.logger.Warn("Change listener connection lost, reconnecting",
				slog.String("error", err.Error()),
				slog.Duration("retry_in", listenRetryDelay))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(listenRetryDelay):
		}
	}
}

func (l *PgxChangeListener) listenOnce(ctx context.Context, handler func(portsrepo.ChangeEvent)) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
		return fmt.Errorf("failed to LISTEN on %s: %w", changeChannel, err)
	}
	l.logger.Info("Change listener attached", slog.String("channel", changeChannel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event portsrepo.ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			l.logger.Warn("Discarding undecodable change notification",
				slog.String("payload", notification.Payload),
				slog.String("error", err.Error()))
			continue
		}
		handler(event)
	}
}
