package pgsql

import (
	"context"
	"errors"
	"fmt"

	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTenancyRepository struct {
	db *pgxpool.Pool
}

func newPgxTenancyRepository(db *pgxpool.Pool) portsrepo.TenancyRepository {
	return &PgxTenancyRepository{db: db}
}

var _ portsrepo.TenancyRepository = (*PgxTenancyRepository)(nil)

func (r *PgxTenancyRepository) FindFamilyID(ctx context.Context, identityID int64) (int64, bool, error) {
	var familyID int64
	err := r.db.QueryRow(ctx, `
		SELECT family_id FROM tenancy
		WHERE identity_id = $1;
	`, identityID).Scan(&familyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve family for identity %d: %w", identityID, err)
	}
	return familyID, true, nil
}

func (r *PgxTenancyRepository) SaveInvite(ctx context.Context, token string, familyID int64) error {
	query := `
		INSERT INTO invites (token, family_id)
		VALUES ($1, $2);
	`
	if _, err := r.db.Exec(ctx, query, token, familyID); err != nil {
		return fmt.Errorf("failed to save invite: %w", err)
	}
	return nil
}

// RedeemInvite consumes the token and binds the joining identity in one
// transaction: the token row is only deleted together with the mapping it
// grants, so a failed bind rolls the invite back. The DELETE ... RETURNING
// keeps redemption single-use even under concurrent attempts.
func (r *PgxTenancyRepository) RedeemInvite(ctx context.Context, token string, identityID int64) (int64, bool, error) {
	var familyID int64
	redeemed := false
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			DELETE FROM invites
			WHERE token = $1
			RETURNING family_id;
		`, token).Scan(&familyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to redeem invite: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO tenancy (identity_id, family_id)
			VALUES ($1, $2)
			ON CONFLICT (identity_id) DO UPDATE SET family_id = EXCLUDED.family_id;
		`, identityID, familyID); err != nil {
			return fmt.Errorf("failed to bind identity %d to family %d: %w", identityID, familyID, err)
		}
		redeemed = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return familyID, redeemed, nil
}
