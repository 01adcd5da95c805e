package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/middleware"
)

// reconciliationService synthesizes the corrective postings that keep the
// ledger-wide capital identity balanced across account lifecycle events.
type reconciliationService struct {
	taxonomy        domain.Taxonomy
	groupRepo       portsrepo.GroupRepository
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionRepository
	reconRepo       portsrepo.ReconciliationRepository
}

// NewReconciliationService creates the reconciliation engine.
func NewReconciliationService(
	taxonomy domain.Taxonomy,
	groupRepo portsrepo.GroupRepository,
	accountRepo portsrepo.AccountRepository,
	transactionRepo portsrepo.TransactionRepository,
	reconRepo portsrepo.ReconciliationRepository,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		taxonomy:        taxonomy,
		groupRepo:       groupRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		reconRepo:       reconRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) capitalTypeID() (int64, error) {
	id, ok := s.taxonomy.IDOf(domain.TypeCapital)
	if !ok {
		return 0, fmt.Errorf("%w: capital type missing from taxonomy", apperrors.ErrInternal)
	}
	return id, nil
}

// PostOpeningValue posts the single opening transaction between a freshly
// created account and its capital counterpart. Direction depends on the
// account's type: assets and expenditures receive from the mirror,
// liabilities and income pay into it, capital accounts balance against the
// Corrections/Default account.
func (s *reconciliationService) PostOpeningValue(ctx context.Context, ownerID int64, account *domain.Account, value decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if value.IsZero() {
		return nil, nil
	}

	group, err := s.groupRepo.FindGroupByID(ctx, ownerID, account.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group for opening posting: %w", err)
	}

	counterpartID, err := s.resolveCounterpart(ctx, ownerID, group)
	if err != nil {
		return nil, err
	}

	var from, to int64
	switch group.TypeName {
	case domain.TypeAssets, domain.TypeExpenditures:
		from, to = counterpartID, account.ID
	case domain.TypeLiabilities, domain.TypeIncome, domain.TypeCapital:
		from, to = account.ID, counterpartID
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrInternal, group.TypeName)
	}

	ts := time.Now()
	txnID, err := s.transactionRepo.SaveTransaction(ctx, ownerID, from, to, value, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to post opening value: %w", err)
	}

	logger.Info("Opening value posted",
		slog.Int64("account_id", account.ID),
		slog.Int64("counterpart_id", counterpartID),
		slog.String("amount", value.String()),
	)
	return &domain.Transaction{
		ID:          txnID,
		OwnerID:     ownerID,
		FromAccount: from,
		ToAccount:   to,
		Amount:      value,
		Timestamp:   ts,
	}, nil
}

// resolveCounterpart locates the capital-side account for an opening posting:
// the mirror account named after the group for mirrored types, or the
// Corrections/Default account for capital-type accounts.
func (s *reconciliationService) resolveCounterpart(ctx context.Context, ownerID int64, group *domain.AccountGroup) (int64, error) {
	capitalID, err := s.capitalTypeID()
	if err != nil {
		return 0, err
	}

	if group.TypeName == domain.TypeCapital {
		return s.reconRepo.EnsureCorrectionAccount(ctx, ownerID, capitalID)
	}

	mirror, err := s.accountRepo.FindCapitalAccount(ctx, ownerID, capitalID, string(group.TypeName), group.Name)
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%w: no capital account %q/%q", apperrors.ErrUnresolvedMirror, group.TypeName, group.Name)
		}
		return 0, fmt.Errorf("failed to resolve mirror account: %w", err)
	}
	return mirror.ID, nil
}

// ArchiveAccount zeroes the account's balance against Corrections/Default and
// sets the archived flag in one atomic storage transaction.
func (s *reconciliationService) ArchiveAccount(ctx context.Context, ownerID, accountID int64) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Archived {
		return nil, fmt.Errorf("%w: account %d is already archived", apperrors.ErrConflict, accountID)
	}

	capitalID, err := s.capitalTypeID()
	if err != nil {
		return nil, err
	}

	correction, err := s.reconRepo.ArchiveAccountWithCorrection(ctx, ownerID, accountID, capitalID)
	if err != nil {
		return nil, err
	}

	if correction != nil {
		logger.Info("Account archived with correction",
			slog.Int64("account_id", accountID),
			slog.String("amount", correction.Amount.String()),
		)
	} else {
		logger.Info("Account archived", slog.Int64("account_id", accountID))
	}
	return correction, nil
}

// ArchiveGroup reconciles and archives every active member account, each one
// independently, then archives the group row itself.
func (s *reconciliationService) ArchiveGroup(ctx context.Context, ownerID, groupID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.groupRepo.FindGroupByID(ctx, ownerID, groupID)
	if err != nil {
		return err
	}
	if group.Archived {
		return fmt.Errorf("%w: group %d is already archived", apperrors.ErrConflict, groupID)
	}

	accountIDs, err := s.accountRepo.ListActiveAccountIDsByGroup(ctx, ownerID, groupID)
	if err != nil {
		return fmt.Errorf("failed to list accounts of group %d: %w", groupID, err)
	}
	for _, accountID := range accountIDs {
		if _, err := s.ArchiveAccount(ctx, ownerID, accountID); err != nil {
			return fmt.Errorf("failed to archive account %d: %w", accountID, err)
		}
	}

	if err := s.groupRepo.ArchiveGroup(ctx, ownerID, groupID); err != nil {
		return err
	}

	logger.Info("Group archived", slog.Int64("group_id", groupID), slog.Int("accounts", len(accountIDs)))
	return nil
}

func (s *reconciliationService) EnsureCorrectionAccount(ctx context.Context, ownerID int64) (int64, error) {
	capitalID, err := s.capitalTypeID()
	if err != nil {
		return 0, err
	}
	return s.reconRepo.EnsureCorrectionAccount(ctx, ownerID, capitalID)
}
