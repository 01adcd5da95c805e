package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
)

// valuationService computes balances and sign-adjusted values over the store.
// It never mutates anything.
type valuationService struct {
	taxonomy      domain.Taxonomy
	groupRepo     portsrepo.GroupRepository
	accountRepo   portsrepo.AccountRepository
	valuationRepo portsrepo.ValuationRepository
	settingRepo   portsrepo.SettingRepository
	tenancySvc    portssvc.TenancySvcFacade
}

// NewValuationService creates the valuation engine.
func NewValuationService(
	taxonomy domain.Taxonomy,
	groupRepo portsrepo.GroupRepository,
	accountRepo portsrepo.AccountRepository,
	valuationRepo portsrepo.ValuationRepository,
	settingRepo portsrepo.SettingRepository,
	tenancySvc portssvc.TenancySvcFacade,
) portssvc.ValuationSvcFacade {
	return &valuationService{
		taxonomy:      taxonomy,
		groupRepo:     groupRepo,
		accountRepo:   accountRepo,
		valuationRepo: valuationRepo,
		settingRepo:   settingRepo,
		tenancySvc:    tenancySvc,
	}
}

var _ portssvc.ValuationSvcFacade = (*valuationService)(nil)

func (s *valuationService) AccountBalance(ctx context.Context, identityID, accountID int64) (decimal.Decimal, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return decimal.Zero, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID); err != nil {
		return decimal.Zero, err
	}
	return s.valuationRepo.AccountBalance(ctx, ownerID, accountID)
}

func (s *valuationService) AccountValue(ctx context.Context, identityID, accountID int64) (decimal.Decimal, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return decimal.Zero, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	group, err := s.groupRepo.FindGroupByID(ctx, ownerID, account.GroupID)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := s.valuationRepo.AccountBalance(ctx, ownerID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return group.TypeName.SignedValue(balance), nil
}

func (s *valuationService) GroupValue(ctx context.Context, identityID, groupID int64) (decimal.Decimal, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return decimal.Zero, err
	}
	group, err := s.groupRepo.FindGroupByID(ctx, ownerID, groupID)
	if err != nil {
		return decimal.Zero, err
	}
	balances, err := s.valuationRepo.ActiveAccountBalancesByGroup(ctx, ownerID, groupID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	return group.TypeName.SignedValue(total), nil
}

func (s *valuationService) TypeValue(ctx context.Context, identityID, typeID int64) (decimal.Decimal, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return decimal.Zero, err
	}
	typeName, ok := s.taxonomy.NameOf(typeID)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, typeID)
	}
	balances, err := s.valuationRepo.ActiveGroupBalancesByType(ctx, ownerID, typeID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	return typeName.SignedValue(total), nil
}

func (s *valuationService) ListTypesWithValue(ctx context.Context, identityID int64) ([]domain.ValueLine, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	balances, err := s.valuationRepo.ActiveTypeBalances(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return signedLines(balances), nil
}

func (s *valuationService) ListGroupsWithValue(ctx context.Context, identityID, typeID int64) ([]domain.ValueLine, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if _, ok := s.taxonomy.NameOf(typeID); !ok {
		return nil, fmt.Errorf("%w: account type %d", apperrors.ErrNotFound, typeID)
	}
	balances, err := s.valuationRepo.ActiveGroupBalancesByType(ctx, ownerID, typeID)
	if err != nil {
		return nil, err
	}
	return signedLines(balances), nil
}

func (s *valuationService) ListAccountsWithValue(ctx context.Context, identityID, groupID int64) ([]domain.ValueLine, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.groupRepo.FindGroupByID(ctx, ownerID, groupID); err != nil {
		return nil, err
	}
	balances, err := s.valuationRepo.ActiveAccountBalancesByGroup(ctx, ownerID, groupID)
	if err != nil {
		return nil, err
	}
	return signedLines(balances), nil
}

// SelectedAccountsBalance sums raw balances over the owner's dashboard
// selection. The selection is an opaque comma-separated id list persisted by
// the presentation layer; an absent or empty selection yields zero.
func (s *valuationService) SelectedAccountsBalance(ctx context.Context, identityID int64) (decimal.Decimal, error) {
	ownerID, err := s.tenancySvc.FamilyID(ctx, identityID)
	if err != nil {
		return decimal.Zero, err
	}

	raw, err := s.settingRepo.GetSetting(ctx, ownerID, domain.DashboardAccountsSetting)
	if err != nil {
		if isNotFound(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	var accountIDs []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: malformed dashboard selection entry %q", apperrors.ErrValidation, part)
		}
		accountIDs = append(accountIDs, id)
	}
	if len(accountIDs) == 0 {
		return decimal.Zero, nil
	}

	balances, err := s.valuationRepo.AccountBalances(ctx, ownerID, accountIDs)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	return total, nil
}

func signedLines(balances []domain.AccountBalance) []domain.ValueLine {
	lines := make([]domain.ValueLine, len(balances))
	for i, b := range balances {
		lines[i] = domain.ValueLine{
			ID:    b.ID,
			Name:  b.Name,
			Value: b.TypeName.SignedValue(b.Balance),
		}
	}
	return lines
}
