package services

import (
	"context"

	"github.com/famledger/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvcFacade keeps the capital identity coherent when value is
// injected or removed outside a normal two-account transfer.
type ReconciliationSvcFacade interface {
	// PostOpeningValue records the opening posting for a freshly created
	// account. Zero values are a no-op. An unresolvable mirror surfaces
	// apperrors.ErrUnresolvedMirror; the posting is never silently dropped.
	PostOpeningValue(ctx context.Context, ownerID int64, account *domain.Account, value decimal.Decimal) (*domain.Transaction, error)

	// ArchiveAccount zeroes the account against the correction account and
	// sets the archived flag, atomically. Post-condition: balance == 0.
	ArchiveAccount(ctx context.Context, ownerID, accountID int64) (*domain.Transaction, error)

	// ArchiveGroup archives every active member account (each independently
	// reconciled) and then the group row itself.
	ArchiveGroup(ctx context.Context, ownerID, groupID int64) error

	// EnsureCorrectionAccount resolves or lazily creates the owner's
	// capital/Corrections/Default account.
	EnsureCorrectionAccount(ctx context.Context, ownerID int64) (int64, error)
}
