package pgsql

import (
	"context"
	"fmt"

	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxValuationRepository struct {
	db *pgxpool.Pool
}

func newPgxValuationRepository(db *pgxpool.Pool) portsrepo.ValuationRepository {
	return &PgxValuationRepository{db: db}
}

var _ portsrepo.ValuationRepository = (*PgxValuationRepository)(nil)

// accountNet is the balance of the account aliased `a`: total inflow minus
// total outflow, summed independently so a posting from an account to itself
// nets to zero. Postings against archived accounts are never excluded, a
// balance reflects the full posting history.
const accountNet = `(
		COALESCE((SELECT SUM(f.amount) FROM transactions f WHERE f.to_account = a.id), 0)
		- COALESCE((SELECT SUM(f.amount) FROM transactions f WHERE f.from_account = a.id), 0)
	)`

func (r *PgxValuationRepository) AccountBalance(ctx context.Context, ownerID, accountID int64) (decimal.Decimal, error) {
	query := `
		SELECT a.id, ` + accountNet + ` AS balance
		FROM accounts a
		WHERE a.owner_id = $1 AND a.id = $2;
	`
	var id int64
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, query, ownerID, accountID).Scan(&id, &balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to compute balance of account %d: %w", accountID, err)
	}
	return balance, nil
}

func (r *PgxValuationRepository) AccountBalances(ctx context.Context, ownerID int64, accountIDs []int64) ([]domain.AccountBalance, error) {
	query := `
		SELECT a.id, ` + accountNet + ` AS balance
		FROM accounts a
		WHERE a.owner_id = $1 AND a.id = ANY($2);
	`
	rows, err := r.db.Query(ctx, query, ownerID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute account balances: %w", err)
	}
	defer rows.Close()

	byID := map[int64]decimal.Decimal{}
	for rows.Next() {
		var id int64
		var balance decimal.Decimal
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		byID[id] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}

	// Preserve the requested order; ids without a row resolve to zero.
	out := make([]domain.AccountBalance, 0, len(accountIDs))
	for _, id := range accountIDs {
		out = append(out, domain.AccountBalance{ID: id, Balance: byID[id]})
	}
	return out, nil
}

func (r *PgxValuationRepository) ActiveAccountBalancesByGroup(ctx context.Context, ownerID, groupID int64) ([]domain.AccountBalance, error) {
	query := `
		SELECT a.id, a.name, t.name, ` + accountNet + `
		FROM accounts a
		JOIN account_groups g ON g.id = a.group_id
		JOIN account_types t ON t.id = g.type_id
		WHERE a.owner_id = $1 AND a.group_id = $2 AND NOT a.archived
		ORDER BY a.name, a.id;
	`
	return r.queryBalances(ctx, query, ownerID, groupID)
}

func (r *PgxValuationRepository) ActiveGroupBalancesByType(ctx context.Context, ownerID, typeID int64) ([]domain.AccountBalance, error) {
	query := `
		SELECT g.id, g.name, t.name, COALESCE(SUM(` + accountNet + `), 0)
		FROM account_groups g
		JOIN account_types t ON t.id = g.type_id
		LEFT JOIN accounts a ON a.group_id = g.id AND NOT a.archived
		WHERE g.owner_id = $1 AND g.type_id = $2 AND NOT g.archived
		GROUP BY g.id, g.name, t.name
		ORDER BY g.name, g.id;
	`
	return r.queryBalances(ctx, query, ownerID, typeID)
}

func (r *PgxValuationRepository) ActiveTypeBalances(ctx context.Context, ownerID int64) ([]domain.AccountBalance, error) {
	query := `
		SELECT t.id, t.name, t.name, COALESCE(SUM(` + accountNet + `), 0)
		FROM account_types t
		LEFT JOIN account_groups g ON g.type_id = t.id AND g.owner_id = $1 AND NOT g.archived
		LEFT JOIN accounts a ON a.group_id = g.id AND NOT a.archived
		GROUP BY t.id, t.name
		ORDER BY t.name;
	`
	return r.queryBalances(ctx, query, ownerID)
}

func (r *PgxValuationRepository) queryBalances(ctx context.Context, query string, args ...interface{}) ([]domain.AccountBalance, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}
	defer rows.Close()

	out := []domain.AccountBalance{}
	for rows.Next() {
		var b domain.AccountBalance
		var typeName string
		if err := rows.Scan(&b.ID, &b.Name, &typeName, &b.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		b.TypeName = domain.AccountTypeName(typeName)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return out, nil
}
