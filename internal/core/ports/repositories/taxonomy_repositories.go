package repositories

import (
	"context"

	"github.com/famledger/famledger/internal/core/domain"
)

// TaxonomyRepository manages the global account_types table.
type TaxonomyRepository interface {
	// EnsureTypes idempotently seeds the five account types and returns all rows.
	EnsureTypes(ctx context.Context) ([]domain.AccountType, error)

	// ListTypes returns every account type row ordered by name.
	ListTypes(ctx context.Context) ([]domain.AccountType, error)
}
