package services

import (
	"context"

	"github.com/famledger/famledger/internal/core/domain"
	"github.com/famledger/famledger/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the owner-scoped store surface. Every call resolves the
// acting identity through tenancy before touching rows.
type LedgerSvcFacade interface {
	// EnsureSeeded idempotently creates the global types, the stock groups and
	// the capital mirror structure for the identity's ledger.
	EnsureSeeded(ctx context.Context, identityID int64) error

	ListTypes(ctx context.Context) []domain.AccountType

	CreateGroup(ctx context.Context, identityID int64, req dto.CreateGroupRequest) (*domain.AccountGroup, error)
	ListGroups(ctx context.Context, identityID, typeID int64) ([]domain.AccountGroup, error)
	RenameGroup(ctx context.Context, identityID, groupID int64, name string) error
	ArchiveGroup(ctx context.Context, identityID, groupID int64) error

	CreateAccount(ctx context.Context, identityID int64, req dto.CreateAccountRequest) (*domain.Account, error)
	ListAccounts(ctx context.Context, identityID, groupID int64) ([]domain.Account, error)
	RenameAccount(ctx context.Context, identityID, accountID int64, name string) error
	ArchiveAccount(ctx context.Context, identityID, accountID int64) error

	CreateTransaction(ctx context.Context, identityID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransactionAmount(ctx context.Context, identityID, txnID int64, amount decimal.Decimal) error
	DeleteTransaction(ctx context.Context, identityID, txnID int64) error

	SetSetting(ctx context.Context, identityID int64, key, value string) error
	GetSetting(ctx context.Context, identityID int64, key string) (string, error)
}
