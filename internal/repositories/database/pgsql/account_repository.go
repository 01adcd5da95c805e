package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	db *pgxpool.Pool
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{db: db}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `a.id, a.owner_id, a.group_id, g.name, a.name, a.archived`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.OwnerID, &a.GroupID, &a.GroupName, &a.Name, &a.Archived); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, ownerID, groupID int64, name string) (int64, error) {
	query := `
		INSERT INTO accounts (owner_id, group_id, name)
		VALUES ($1, $2, $3)
		RETURNING id;
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, ownerID, groupID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}
	return id, nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts a
		JOIN account_groups g ON g.id = a.group_id
		WHERE a.owner_id = $1 AND a.id = $2;
	`, accountColumns)
	a, err := scanAccount(r.db.QueryRow(ctx, query, ownerID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return a, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, ownerID, groupID int64) ([]domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts a
		JOIN account_groups g ON g.id = a.group_id
		WHERE a.owner_id = $1 AND a.group_id = $2 AND NOT a.archived
		ORDER BY a.name, a.id;
	`, accountColumns)
	rows, err := r.db.Query(ctx, query, ownerID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListActiveAccountIDsByGroup(ctx context.Context, ownerID, groupID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM accounts
		WHERE owner_id = $1 AND group_id = $2 AND NOT archived
		ORDER BY id;
	`, ownerID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account id rows: %w", err)
	}
	return ids, nil
}

func (r *PgxAccountRepository) FindCapitalAccount(ctx context.Context, ownerID, capitalTypeID int64, groupName, accountName string) (*domain.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM accounts a
		JOIN account_groups g ON g.id = a.group_id
		WHERE a.owner_id = $1
		  AND g.type_id = $2
		  AND g.name = $3 AND NOT g.archived
		  AND a.name = $4 AND NOT a.archived
		ORDER BY a.id
		LIMIT 1;
	`, accountColumns)
	a, err := scanAccount(r.db.QueryRow(ctx, query, ownerID, capitalTypeID, groupName, accountName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find capital account %s/%s: %w", groupName, accountName, err)
	}
	return a, nil
}

func (r *PgxAccountRepository) RenameAccount(ctx context.Context, ownerID, accountID int64, name string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts SET name = $3
		WHERE owner_id = $1 AND id = $2;
	`, ownerID, accountID, name)
	if err != nil {
		return fmt.Errorf("failed to rename account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
