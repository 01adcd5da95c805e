package pgsql

import (
	"context"
	"fmt"

	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaxonomyRepository struct {
	pool *pgxpool.Pool
}

func newPgxTaxonomyRepository(pool *pgxpool.Pool) portsrepo.TaxonomyRepository {
	return &PgxTaxonomyRepository{pool: pool}
}

var _ portsrepo.TaxonomyRepository = (*PgxTaxonomyRepository)(nil)

// EnsureTypes idempotently seeds the five global account types and returns
// every row. Safe to call from multiple processes.
func (r *PgxTaxonomyRepository) EnsureTypes(ctx context.Context) ([]domain.AccountType, error) {
	query := `
		INSERT INTO account_types (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING;
	`
	names := make([]string, len(domain.AccountTypeNames))
	for i, n := range domain.AccountTypeNames {
		names[i] = string(n)
	}
	if _, err := r.pool.Exec(ctx, query, names); err != nil {
		return nil, fmt.Errorf("failed to seed account types: %w", err)
	}
	return r.ListTypes(ctx)
}

func (r *PgxTaxonomyRepository) ListTypes(ctx context.Context) ([]domain.AccountType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM account_types ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account types: %w", err)
	}
	defer rows.Close()

	types := []domain.AccountType{}
	for rows.Next() {
		var at domain.AccountType
		var name string
		if err := rows.Scan(&at.ID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan account type row: %w", err)
		}
		at.Name = domain.AccountTypeName(name)
		types = append(types, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type rows: %w", err)
	}
	return types, nil
}
