package repositories

import (
	"context"
	"time"

	"github.com/famledger/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GroupRepository owns the account_groups table. All operations are scoped to
// the resolved ledger owner.
type GroupRepository interface {
	// SaveGroup inserts a group. Returns apperrors.ErrDuplicate when an active
	// group with the same (owner, type, name) exists.
	SaveGroup(ctx context.Context, ownerID, typeID int64, name string) (int64, error)

	FindGroupByID(ctx context.Context, ownerID, groupID int64) (*domain.AccountGroup, error)

	// FindGroupByName locates an active group by (type, name).
	FindGroupByName(ctx context.Context, ownerID, typeID int64, name string) (*domain.AccountGroup, error)

	// ListGroups returns the active groups of a type ordered by name, id.
	ListGroups(ctx context.Context, ownerID, typeID int64) ([]domain.AccountGroup, error)

	// RenameGroup updates the name in place without re-validating uniqueness.
	RenameGroup(ctx context.Context, ownerID, groupID int64, name string) error

	// ArchiveGroup sets the archived flag. Member accounts must already be
	// archived by the caller.
	ArchiveGroup(ctx context.Context, ownerID, groupID int64) error
}

// AccountRepository owns the accounts table.
type AccountRepository interface {
	// SaveAccount inserts an account. Duplicate names within a group are allowed.
	SaveAccount(ctx context.Context, ownerID, groupID int64, name string) (int64, error)

	FindAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error)

	// ListAccounts returns the active accounts of a group ordered by name, id.
	ListAccounts(ctx context.Context, ownerID, groupID int64) ([]domain.Account, error)

	// ListActiveAccountIDsByGroup returns ids of every active account in a group.
	ListActiveAccountIDsByGroup(ctx context.Context, ownerID, groupID int64) ([]int64, error)

	// FindCapitalAccount locates the active account named accountName inside the
	// owner's capital group named groupName. Used to resolve mirror counterparts.
	FindCapitalAccount(ctx context.Context, ownerID, capitalTypeID int64, groupName, accountName string) (*domain.Account, error)

	// RenameAccount updates the name in place.
	RenameAccount(ctx context.Context, ownerID, accountID int64, name string) error
}

// TransactionRepository owns the transactions table.
type TransactionRepository interface {
	// SaveTransaction inserts a posting and returns its id. A zero ts lets the
	// store assign the current time.
	SaveTransaction(ctx context.Context, ownerID, fromAccount, toAccount int64, amount decimal.Decimal, ts time.Time) (int64, error)

	FindTransactionByID(ctx context.Context, ownerID, txnID int64) (*domain.Transaction, error)

	// ListTransactions returns postings newest-first by id, filtered and paginated.
	ListTransactions(ctx context.Context, ownerID int64, limit, offset int, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListTransactionsChronological returns postings oldest-first by ts then id,
	// optionally restricted to postings touching a type or group on either leg.
	ListTransactionsChronological(ctx context.Context, ownerID int64, scope domain.ChronoScope, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)

	UpdateTransactionAmount(ctx context.Context, ownerID, txnID int64, amount decimal.Decimal) error

	DeleteTransaction(ctx context.Context, ownerID, txnID int64) error
}

// ValuationRepository provides the raw balance reads the valuation engine
// aggregates over. Balances always include postings against archived accounts.
type ValuationRepository interface {
	// AccountBalance sums inflow minus outflow over every posting referencing
	// the account, archived or not.
	AccountBalance(ctx context.Context, ownerID, accountID int64) (decimal.Decimal, error)

	// AccountBalances returns per-account raw balances for the given ids, in
	// the order requested.
	AccountBalances(ctx context.Context, ownerID int64, accountIDs []int64) ([]domain.AccountBalance, error)

	// ActiveAccountBalancesByGroup returns raw balances for the active accounts
	// of a group, ordered by name then id.
	ActiveAccountBalancesByGroup(ctx context.Context, ownerID, groupID int64) ([]domain.AccountBalance, error)

	// ActiveGroupBalancesByType returns, per active group of a type ordered by
	// name then id, the summed raw balance of its active accounts.
	ActiveGroupBalancesByType(ctx context.Context, ownerID, typeID int64) ([]domain.AccountBalance, error)

	// ActiveTypeBalances returns, per account type ordered by name, the summed
	// raw balance over active groups and active accounts.
	ActiveTypeBalances(ctx context.Context, ownerID int64) ([]domain.AccountBalance, error)
}

// ReconciliationRepository carries the compound operations that must commit
// atomically. Implementations wrap each call in a single storage transaction,
// serialize same-owner writers, and retry bounded times on contention.
type ReconciliationRepository interface {
	// EnsureCorrectionAccount resolves or lazily creates the owner's
	// capital/Corrections/Default account and returns its id.
	EnsureCorrectionAccount(ctx context.Context, ownerID, capitalTypeID int64) (int64, error)

	// ArchiveAccountWithCorrection posts the zeroing correction (if the balance
	// is nonzero) and sets the archived flag in one transaction. Returns the
	// correction posting, or nil when the balance was already zero.
	ArchiveAccountWithCorrection(ctx context.Context, ownerID, accountID, capitalTypeID int64) (*domain.Transaction, error)
}

// SettingRepository owns the per-owner settings table.
type SettingRepository interface {
	UpsertSetting(ctx context.Context, ownerID int64, key, value string) error

	// GetSetting returns the stored value or apperrors.ErrNotFound.
	GetSetting(ctx context.Context, ownerID int64, key string) (string, error)
}
