package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common transaction plumbing for all repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

const (
	// Retry budget for serialization and deadlock failures inside compound
	// operations. Retries must be idempotent-safe.
	maxTxRetries   = 3
	txRetryBackoff = 25 * time.Millisecond
)

func isRetriable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// withOwnerTx runs fn inside a repeatable-read transaction holding the
// per-owner advisory lock, so concurrent writers to the same ledger are
// serialized while different owners proceed independently. Serialization
// failures are retried up to the budget, then surfaced as ErrTransient.
func (r *BaseRepository) withOwnerTx(ctx context.Context, ownerID int64, fn func(tx pgx.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := pgx.BeginTxFunc(ctx, r.Pool, pgx.TxOptions{IsoLevel: pgx.RepeatableRead}, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ownerID); err != nil {
				return err
			}
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		if !isRetriable(err) {
			return err
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(txRetryBackoff << attempt):
		}
	}
	return apperrors.NewAppError(503, "storage contention not resolved within retry budget",
		errors.Join(apperrors.ErrTransient, lastErr))
}
