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
	"github.com/famledger/famledger/internal/dto"
	"github.com/famledger/famledger/internal/middleware"
)

// ledgerService is the owner-scoped store surface. It resolves the acting
// identity through tenancy before every read or write.
type ledgerService struct {
	taxonomy        domain.Taxonomy
	groupRepo       portsrepo.GroupRepository
	accountRepo     portsrepo.AccountRepository
	transactionRepo portsrepo.TransactionRepository
	settingRepo     portsrepo.SettingRepository
	tenancySvc      portssvc.TenancySvcFacade
	reconSvc        portssvc.ReconciliationSvcFacade
}

// NewLedgerService creates the ledger store service.
func NewLedgerService(
	taxonomy domain.Taxonomy,
	groupRepo portsrepo.GroupRepository,
	accountRepo portsrepo.AccountRepository,
	transactionRepo portsrepo.TransactionRepository,
	settingRepo portsrepo.SettingRepository,
	tenancySvc portssvc.TenancySvcFacade,
	reconSvc portssvc.ReconciliationSvcFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		taxonomy:        taxonomy,
		groupRepo:       groupRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		settingRepo:     settingRepo,
		tenancySvc:      tenancySvc,
		reconSvc:        reconSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) owner(ctx context.Context, identityID int64) (int64, error) {
	return s.tenancySvc.FamilyID(ctx, identityID)
}

// ListTypes returns the global taxonomy rows in seeding order.
func (s *ledgerService) ListTypes(ctx context.Context) []domain.AccountType {
	types := make([]domain.AccountType, 0, len(domain.AccountTypeNames))
	for _, name := range domain.AccountTypeNames {
		if id, ok := s.taxonomy.IDOf(name); ok {
			types = append(types, domain.AccountType{ID: id, Name: name})
		}
	}
	return types
}

// EnsureSeeded idempotently creates the stock groups, the capital mirror
// groups with their member accounts, and the Corrections group for the
// identity's ledger.
func (s *ledgerService) EnsureSeeded(ctx context.Context, identityID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}

	for _, typeName := range domain.AccountTypeNames {
		typeID, ok := s.taxonomy.IDOf(typeName)
		if !ok {
			return fmt.Errorf("%w: account type %q missing from taxonomy", apperrors.ErrInternal, typeName)
		}
		for _, groupName := range domain.DefaultGroups[typeName] {
			if err := s.ensureGroup(ctx, ownerID, typeID, groupName); err != nil {
				return err
			}
		}
	}

	// Mirror accounts: for every active group of a mirrored type, the capital
	// group named after the type carries a same-named account.
	capitalTypeID, _ := s.taxonomy.IDOf(domain.TypeCapital)
	for _, typeName := range domain.MirroredTypes {
		typeID, _ := s.taxonomy.IDOf(typeName)
		mirrorGroup, err := s.groupRepo.FindGroupByName(ctx, ownerID, capitalTypeID, string(typeName))
		if err != nil {
			return fmt.Errorf("failed to resolve mirror group %q: %w", typeName, err)
		}
		groups, err := s.groupRepo.ListGroups(ctx, ownerID, typeID)
		if err != nil {
			return fmt.Errorf("failed to list %s groups for mirroring: %w", typeName, err)
		}
		for _, g := range groups {
			if err := s.ensureMirrorAccount(ctx, ownerID, mirrorGroup.ID, g.Name); err != nil {
				return err
			}
		}
	}

	logger.Debug("Ledger seeded", slog.Int64("owner_id", ownerID))
	return nil
}

func (s *ledgerService) ensureGroup(ctx context.Context, ownerID, typeID int64, name string) error {
	existing, err := s.groupRepo.FindGroupByName(ctx, ownerID, typeID, name)
	if err == nil && existing != nil {
		return nil
	}
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to look up group %q: %w", name, err)
	}
	if _, err := s.groupRepo.SaveGroup(ctx, ownerID, typeID, name); err != nil {
		if isDuplicate(err) {
			return nil
		}
		return fmt.Errorf("failed to seed group %q: %w", name, err)
	}
	return nil
}

func (s *ledgerService) ensureMirrorAccount(ctx context.Context, ownerID, mirrorGroupID int64, name string) error {
	accounts, err := s.accountRepo.ListAccounts(ctx, ownerID, mirrorGroupID)
	if err != nil {
		return fmt.Errorf("failed to list mirror accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Name == name {
			return nil
		}
	}
	if _, err := s.accountRepo.SaveAccount(ctx, ownerID, mirrorGroupID, name); err != nil {
		return fmt.Errorf("failed to seed mirror account %q: %w", name, err)
	}
	return nil
}

func (s *ledgerService) CreateGroup(ctx context.Context, identityID int64, req dto.CreateGroupRequest) (*domain.AccountGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return nil, err
	}

	typeName, ok := s.taxonomy.NameOf(req.TypeID)
	if !ok {
		return nil, fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, req.TypeID)
	}

	groupID, err := s.groupRepo.SaveGroup(ctx, ownerID, req.TypeID, req.Name)
	if err != nil {
		return nil, err
	}

	// A group of a mirrored type gains its same-named capital mirror account
	// immediately, so later opening-value postings always resolve. The group
	// row is already committed here; on failure the caller sees the error and
	// the missing mirror is backfilled by EnsureSeeded.
	if typeName != domain.TypeCapital {
		if err := s.ensureMirrorForGroup(ctx, ownerID, typeName, req.Name); err != nil {
			logger.Warn("Failed to provision mirror account for new group", slog.String("group", req.Name), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to provision mirror for group %q: %w", req.Name, err)
		}
	}

	logger.Info("Group created", slog.Int64("group_id", groupID), slog.String("type", string(typeName)))
	return &domain.AccountGroup{
		ID:       groupID,
		OwnerID:  ownerID,
		TypeID:   req.TypeID,
		TypeName: typeName,
		Name:     req.Name,
	}, nil
}

func (s *ledgerService) ensureMirrorForGroup(ctx context.Context, ownerID int64, typeName domain.AccountTypeName, groupName string) error {
	capitalTypeID, ok := s.taxonomy.IDOf(domain.TypeCapital)
	if !ok {
		return fmt.Errorf("%w: capital type missing from taxonomy", apperrors.ErrInternal)
	}
	mirrorGroup, err := s.groupRepo.FindGroupByName(ctx, ownerID, capitalTypeID, string(typeName))
	if err != nil {
		if isNotFound(err) {
			mirrorGroupID, err := s.groupRepo.SaveGroup(ctx, ownerID, capitalTypeID, string(typeName))
			if err != nil {
				return err
			}
			mirrorGroup = &domain.AccountGroup{ID: mirrorGroupID}
		} else {
			return err
		}
	}
	return s.ensureMirrorAccount(ctx, ownerID, mirrorGroup.ID, groupName)
}

func (s *ledgerService) ListGroups(ctx context.Context, identityID, typeID int64) ([]domain.AccountGroup, error) {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if _, ok := s.taxonomy.NameOf(typeID); !ok {
		return nil, fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, typeID)
	}
	return s.groupRepo.ListGroups(ctx, ownerID, typeID)
}

func (s *ledgerService) RenameGroup(ctx context.Context, identityID, groupID int64, name string) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	// In-place rename: no uniqueness re-check, matching creation-time rules
	// only. Renames may introduce duplicate names.
	return s.groupRepo.RenameGroup(ctx, ownerID, groupID, name)
}

func (s *ledgerService) ArchiveGroup(ctx context.Context, identityID, groupID int64) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	return s.reconSvc.ArchiveGroup(ctx, ownerID, groupID)
}

func (s *ledgerService) CreateAccount(ctx context.Context, identityID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if req.OpeningValue.IsNegative() {
		return nil, fmt.Errorf("%w: opening value must not be negative", apperrors.ErrValidation)
	}

	group, err := s.groupRepo.FindGroupByID(ctx, ownerID, req.GroupID)
	if err != nil {
		return nil, err
	}

	accountID, err := s.accountRepo.SaveAccount(ctx, ownerID, req.GroupID, req.Name)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:        accountID,
		OwnerID:   ownerID,
		GroupID:   group.ID,
		GroupName: group.Name,
		Name:      req.Name,
	}

	if !req.OpeningValue.IsZero() {
		if _, err := s.reconSvc.PostOpeningValue(ctx, ownerID, account, req.OpeningValue); err != nil {
			return nil, err
		}
	}

	logger.Info("Account created", slog.Int64("account_id", accountID), slog.Int64("group_id", group.ID))
	return account, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context, identityID, groupID int64) ([]domain.Account, error) {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.groupRepo.FindGroupByID(ctx, ownerID, groupID); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccounts(ctx, ownerID, groupID)
}

func (s *ledgerService) RenameAccount(ctx context.Context, identityID, accountID int64, name string) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	return s.accountRepo.RenameAccount(ctx, ownerID, accountID, name)
}

func (s *ledgerService) ArchiveAccount(ctx context.Context, identityID, accountID int64) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	_, err = s.reconSvc.ArchiveAccount(ctx, ownerID, accountID)
	return err
}

func (s *ledgerService) CreateTransaction(ctx context.Context, identityID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	// Both legs must reference existing accounts, archived or not. Equal legs
	// are not rejected; the store contract is deliberately relaxed there.
	if _, err := s.accountRepo.FindAccountByID(ctx, ownerID, req.FromAccount); err != nil {
		return nil, fmt.Errorf("from account %d: %w", req.FromAccount, err)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, ownerID, req.ToAccount); err != nil {
		return nil, fmt.Errorf("to account %d: %w", req.ToAccount, err)
	}

	ts, err := req.ParseTimestamp()
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q", apperrors.ErrValidation, *req.Timestamp)
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	txnID, err := s.transactionRepo.SaveTransaction(ctx, ownerID, req.FromAccount, req.ToAccount, req.Amount, ts)
	if err != nil {
		return nil, err
	}

	logger.Info("Transaction posted", slog.Int64("transaction_id", txnID))
	return &domain.Transaction{
		ID:          txnID,
		OwnerID:     ownerID,
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount,
		Timestamp:   ts,
	}, nil
}

func (s *ledgerService) UpdateTransactionAmount(ctx context.Context, identityID, txnID int64, amount decimal.Decimal) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return s.transactionRepo.UpdateTransactionAmount(ctx, ownerID, txnID, amount)
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, identityID, txnID int64) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	return s.transactionRepo.DeleteTransaction(ctx, ownerID, txnID)
}

func (s *ledgerService) SetSetting(ctx context.Context, identityID int64, key, value string) error {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return err
	}
	return s.settingRepo.UpsertSetting(ctx, ownerID, key, value)
}

func (s *ledgerService) GetSetting(ctx context.Context, identityID int64, key string) (string, error) {
	ownerID, err := s.owner(ctx, identityID)
	if err != nil {
		return "", err
	}
	return s.settingRepo.GetSetting(ctx, ownerID, key)
}
