package services

import (
	"context"

	"github.com/famledger/famledger/internal/core/domain"
)

// QuerySvcFacade is the filtered, paginated transaction read surface.
type QuerySvcFacade interface {
	// ListTransactions returns postings newest-first by id.
	ListTransactions(ctx context.Context, identityID int64, limit, offset int, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListTransactionsChronological returns postings oldest-first by ts then
	// id, optionally scoped to a type or group touching either leg.
	ListTransactionsChronological(ctx context.Context, identityID int64, scope domain.ChronoScope, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)

	GetTransaction(ctx context.Context, identityID, txnID int64) (*domain.Transaction, error)
}
