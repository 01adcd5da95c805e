package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/famledger/famledger/internal/apperrors"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingRepository struct {
	db *pgxpool.Pool
}

func newPgxSettingRepository(db *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{db: db}
}

var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, ownerID int64, key, value string) error {
	query := `
		INSERT INTO settings (owner_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, key) DO UPDATE SET value = EXCLUDED.value;
	`
	if _, err := r.db.Exec(ctx, query, ownerID, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", key, err)
	}
	return nil
}

func (r *PgxSettingRepository) GetSetting(ctx context.Context, ownerID int64, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `
		SELECT value FROM settings
		WHERE owner_id = $1 AND key = $2;
	`, ownerID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}
