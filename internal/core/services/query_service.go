package services

import (
	"context"

	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
)

const defaultPageSize = 20

// queryService is the filtered transaction read surface for presentation and
// reporting collaborators.
type queryService struct {
	transactionRepo portsrepo.TransactionRepository
	tenancySvc      portssvc.TenancySvcFacade
}

// NewQueryService creates the query engine.
func NewQueryService(transactionRepo portsrepo.TransactionRepository, tenancySvc portssvc.TenancySvcFacade) portssvc.QuerySvcFacade {
	return &queryService{transactionRepo: transactionRepo, tenancySvc: tenancySvc}
}

var _ portssvc.QuerySvcFacade = (*queryService)(nil)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *queryService) ListTransactions(ctx context.Context, identityID int64, limit, offset int, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)
	return s.transactionRepo.ListTransactions(ctx, ownerID, limit, offset, filter)
}

func (s *queryService) ListTransactionsChronological(ctx context.Context, identityID int64, scope domain.ChronoScope, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)
	return s.transactionRepo.ListTransactionsChronological(ctx, ownerID, scope, filter, limit, offset)
}

func (s *queryService) GetTransaction(ctx context.Context, identityID, txnID int64) (*domain.Transaction, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.FindTransactionByID(ctx, ownerID, txnID)
}
