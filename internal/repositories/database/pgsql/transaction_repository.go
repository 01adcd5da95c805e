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

type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// transactionSelect joins both legs through to their groups and types so list
// responses carry presentation labels without further lookups.
const transactionSelect = `
	SELECT x.id, x.owner_id, x.from_account, x.to_account, x.amount, x.ts,
	       fa.name, ta.name, fg.name, tg.name, ft.name, tt.name
	FROM transactions x
	JOIN accounts fa ON fa.id = x.from_account
	JOIN accounts ta ON ta.id = x.to_account
	JOIN account_groups fg ON fg.id = fa.group_id
	JOIN account_groups tg ON tg.id = ta.group_id
	JOIN account_types ft ON ft.id = fg.type_id
	JOIN account_types tt ON tt.id = tg.type_id
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var fromType, toType string
	err := row.Scan(&t.ID, &t.OwnerID, &t.FromAccount, &t.ToAccount, &t.Amount, &t.Timestamp,
		&t.FromName, &t.ToName, &t.FromGroup, &t.ToGroup, &fromType, &toType)
	if err != nil {
		return nil, err
	}
	t.FromType = domain.AccountTypeName(fromType)
	t.ToType = domain.AccountTypeName(toType)
	return &t, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, ownerID, fromAccount, toAccount int64, amount decimal.Decimal, ts time.Time) (int64, error) {
	if ts.IsZero() {
		ts = time.Now()
	}
	query := `
		INSERT INTO transactions (owner_id, from_account, to_account, amount, ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	if err := r.db.QueryRow(ctx, query, ownerID, fromAccount, toAccount, amount, ts).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return id, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, txnID int64) (*domain.Transaction, error) {
	query := transactionSelect + `WHERE x.owner_id = $1 AND x.id = $2;`
	t, err := scanTransaction(r.db.QueryRow(ctx, query, ownerID, txnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", txnID, err)
	}
	return t, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID int64, limit, offset int, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := []interface{}{ownerID}
	where, args := buildTransactionWhere(filter, args)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`%sWHERE x.owner_id = $1%s
		ORDER BY x.id DESC
		LIMIT $%d OFFSET $%d;`, transactionSelect, where, len(args)-1, len(args))
	return r.queryTransactions(ctx, query, args)
}

func (r *PgxTransactionRepository) ListTransactionsChronological(ctx context.Context, ownerID int64, scope domain.ChronoScope, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	args := []interface{}{ownerID}
	scopeWhere, args := buildScopeWhere(scope, args)
	filterWhere, args := buildTransactionWhere(filter, args)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`%sWHERE x.owner_id = $1%s%s
		ORDER BY x.ts, x.id
		LIMIT $%d OFFSET $%d;`, transactionSelect, scopeWhere, filterWhere, len(args)-1, len(args))
	return r.queryTransactions(ctx, query, args)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args []interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) UpdateTransactionAmount(ctx context.Context, ownerID, txnID int64, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET amount = $3
		WHERE owner_id = $1 AND id = $2;
	`, ownerID, txnID, amount)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, txnID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM transactions
		WHERE owner_id = $1 AND id = $2;
	`, ownerID, txnID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
