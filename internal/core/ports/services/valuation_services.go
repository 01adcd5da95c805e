package services

import (
	"context"

	"github.com/famledger/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValuationSvcFacade computes balances and sign-adjusted values. Pure reads.
type ValuationSvcFacade interface {
	// AccountBalance is raw inflow minus outflow over all postings ever
	// recorded against the account.
	AccountBalance(ctx context.Context, identityID, accountID int64) (decimal.Decimal, error)

	// AccountValue is the balance adjusted by the account type's sign convention.
	AccountValue(ctx context.Context, identityID, accountID int64) (decimal.Decimal, error)

	// GroupValue sums AccountValue over the group's active accounts.
	GroupValue(ctx context.Context, identityID, groupID int64) (decimal.Decimal, error)

	// TypeValue sums GroupValue over the type's active groups.
	TypeValue(ctx context.Context, identityID, typeID int64) (decimal.Decimal, error)

	// Listing variants, ordered by name ascending with ids breaking ties.
	ListTypesWithValue(ctx context.Context, identityID int64) ([]domain.ValueLine, error)
	ListGroupsWithValue(ctx context.Context, identityID, typeID int64) ([]domain.ValueLine, error)
	ListAccountsWithValue(ctx context.Context, identityID, groupID int64) ([]domain.ValueLine, error)

	// SelectedAccountsBalance sums raw balances over the accounts kept in the
	// owner's dashboard selection setting. Missing selection yields zero.
	SelectedAccountsBalance(ctx context.Context, identityID int64) (decimal.Decimal, error)
}
