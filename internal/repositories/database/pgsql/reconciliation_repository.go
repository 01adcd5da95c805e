package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxReconciliationRepository carries the compound writes that must commit
// atomically. Every public method runs inside withOwnerTx, so same-owner
// writers are serialized on the advisory lock and contention is retried.
type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(db *pgxpool.Pool) portsrepo.ReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ReconciliationRepository = (*PgxReconciliationRepository)(nil)

func (r *PgxReconciliationRepository) EnsureCorrectionAccount(ctx context.Context, ownerID, capitalTypeID int64) (int64, error) {
	var accountID int64
	err := r.withOwnerTx(ctx, ownerID, func(tx pgx.Tx) error {
		var err error
		accountID, err = ensureCorrectionAccountTx(ctx, tx, ownerID, capitalTypeID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return accountID, nil
}

func (r *PgxReconciliationRepository) ArchiveAccountWithCorrection(ctx context.Context, ownerID, accountID, capitalTypeID int64) (*domain.Transaction, error) {
	var correction *domain.Transaction
	err := r.withOwnerTx(ctx, ownerID, func(tx pgx.Tx) error {
		correction = nil

		var archived bool
		err := tx.QueryRow(ctx, `
			SELECT archived FROM accounts
			WHERE owner_id = $1 AND id = $2
			FOR UPDATE;
		`, ownerID, accountID).Scan(&archived)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock account %d: %w", accountID, err)
		}
		if archived {
			return fmt.Errorf("%w: account %d is already archived", apperrors.ErrConflict, accountID)
		}

		// Inflow and outflow summed separately, matching accountNet, so a
		// self-transfer contributes nothing to the correction.
		var balance decimal.Decimal
		err = tx.QueryRow(ctx, `
			SELECT COALESCE((SELECT SUM(amount) FROM transactions
					WHERE owner_id = $1 AND to_account = $2), 0)
				- COALESCE((SELECT SUM(amount) FROM transactions
					WHERE owner_id = $1 AND from_account = $2), 0);
		`, ownerID, accountID).Scan(&balance)
		if err != nil {
			return fmt.Errorf("failed to compute balance of account %d: %w", accountID, err)
		}

		if !balance.IsZero() {
			correctionID, err := ensureCorrectionAccountTx(ctx, tx, ownerID, capitalTypeID)
			if err != nil {
				return err
			}
			// Drain a positive balance into Corrections, top up a negative one
			// from it. Either way the archived account nets to zero.
			from, to, amount := accountID, correctionID, balance
			if balance.IsNegative() {
				from, to, amount = correctionID, accountID, balance.Neg()
			}
			ts := time.Now()
			var txnID int64
			err = tx.QueryRow(ctx, `
				INSERT INTO transactions (owner_id, from_account, to_account, amount, ts)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id;
			`, ownerID, from, to, amount, ts).Scan(&txnID)
			if err != nil {
				return fmt.Errorf("failed to post correction for account %d: %w", accountID, err)
			}
			correction = &domain.Transaction{
				ID:          txnID,
				OwnerID:     ownerID,
				FromAccount: from,
				ToAccount:   to,
				Amount:      amount,
				Timestamp:   ts,
			}
		}

		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET archived = TRUE
			WHERE owner_id = $1 AND id = $2;
		`, ownerID, accountID); err != nil {
			return fmt.Errorf("failed to archive account %d: %w", accountID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return correction, nil
}

// ensureCorrectionAccountTx resolves or creates the Corrections/Default
// account inside an existing transaction. Lookups pin active rows only, so a
// previously archived catch-all is replaced rather than revived.
func ensureCorrectionAccountTx(ctx context.Context, tx pgx.Tx, ownerID, capitalTypeID int64) (int64, error) {
	var groupID int64
	err := tx.QueryRow(ctx, `
		SELECT id FROM account_groups
		WHERE owner_id = $1 AND type_id = $2 AND name = $3 AND NOT archived
		ORDER BY id LIMIT 1;
	`, ownerID, capitalTypeID, domain.CorrectionsGroupName).Scan(&groupID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `
			INSERT INTO account_groups (owner_id, type_id, name)
			VALUES ($1, $2, $3)
			RETURNING id;
		`, ownerID, capitalTypeID, domain.CorrectionsGroupName).Scan(&groupID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve corrections group: %w", err)
	}

	var accountID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM accounts
		WHERE owner_id = $1 AND group_id = $2 AND name = $3 AND NOT archived
		ORDER BY id LIMIT 1;
	`, ownerID, groupID, domain.CorrectionsAccountName).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `
			INSERT INTO accounts (owner_id, group_id, name)
			VALUES ($1, $2, $3)
			RETURNING id;
		`, ownerID, groupID, domain.CorrectionsAccountName).Scan(&accountID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve corrections account: %w", err)
	}
	return accountID, nil
}
