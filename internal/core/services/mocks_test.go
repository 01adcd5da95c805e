package services_test

import (
	"context"
	"time"

	"github.com/famledger/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service suites in this package.

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, ownerID, typeID int64, name string) (int64, error) {
	args := m.Called(ctx, ownerID, typeID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, ownerID, groupID int64) (*domain.AccountGroup, error) {
	args := m.Called(ctx, ownerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockGroupRepository) FindGroupByName(ctx context.Context, ownerID, typeID int64, name string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, ownerID, typeID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockGroupRepository) ListGroups(ctx context.Context, ownerID, typeID int64) ([]domain.AccountGroup, error) {
	args := m.Called(ctx, ownerID, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockGroupRepository) RenameGroup(ctx context.Context, ownerID, groupID int64, name string) error {
	args := m.Called(ctx, ownerID, groupID, name)
	return args.Error(0)
}

func (m *MockGroupRepository) ArchiveGroup(ctx context.Context, ownerID, groupID int64) error {
	args := m.Called(ctx, ownerID, groupID)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, ownerID, groupID int64, name string) (int64, error) {
	args := m.Called(ctx, ownerID, groupID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, ownerID, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, ownerID, groupID int64) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccountIDsByGroup(ctx context.Context, ownerID, groupID int64) ([]int64, error) {
	args := m.Called(ctx, ownerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAccountRepository) FindCapitalAccount(ctx context.Context, ownerID, capitalTypeID int64, groupName, accountName string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, capitalTypeID, groupName, accountName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) RenameAccount(ctx context.Context, ownerID, accountID int64, name string) error {
	args := m.Called(ctx, ownerID, accountID, name)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, ownerID, fromAccount, toAccount int64, amount decimal.Decimal, ts time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, fromAccount, toAccount, amount, ts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, txnID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, ownerID int64, limit, offset int, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, limit, offset, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsChronological(ctx context.Context, ownerID int64, scope domain.ChronoScope, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, scope, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionAmount(ctx context.Context, ownerID, txnID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, ownerID, txnID, amount)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, txnID int64) error {
	args := m.Called(ctx, ownerID, txnID)
	return args.Error(0)
}

type MockValuationRepository struct {
	mock.Mock
}

func (m *MockValuationRepository) AccountBalance(ctx context.Context, ownerID, accountID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockValuationRepository) AccountBalances(ctx context.Context, ownerID int64, accountIDs []int64) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, ownerID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockValuationRepository) ActiveAccountBalancesByGroup(ctx context.Context, ownerID, groupID int64) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, ownerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockValuationRepository) ActiveGroupBalancesByType(ctx context.Context, ownerID, typeID int64) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, ownerID, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockValuationRepository) ActiveTypeBalances(ctx context.Context, ownerID int64) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) EnsureCorrectionAccount(ctx context.Context, ownerID, capitalTypeID int64) (int64, error) {
	args := m.Called(ctx, ownerID, capitalTypeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReconciliationRepository) ArchiveAccountWithCorrection(ctx context.Context, ownerID, accountID, capitalTypeID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, accountID, capitalTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) UpsertSetting(ctx context.Context, ownerID int64, key, value string) error {
	args := m.Called(ctx, ownerID, key, value)
	return args.Error(0)
}

func (m *MockSettingRepository) GetSetting(ctx context.Context, ownerID int64, key string) (string, error) {
	args := m.Called(ctx, ownerID, key)
	return args.String(0), args.Error(1)
}

type MockTenancyRepository struct {
	mock.Mock
}

func (m *MockTenancyRepository) FindFamilyID(ctx context.Context, identityID int64) (int64, bool, error) {
	args := m.Called(ctx, identityID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockTenancyRepository) SaveInvite(ctx context.Context, token string, familyID int64) error {
	args := m.Called(ctx, token, familyID)
	return args.Error(0)
}

func (m *MockTenancyRepository) RedeemInvite(ctx context.Context, token string, identityID int64) (int64, bool, error) {
	args := m.Called(ctx, token, identityID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// MockTenancySvc stands in for the tenancy facade in other service suites.
type MockTenancySvc struct {
	mock.Mock
}

func (m *MockTenancySvc) FamilyID(ctx context.Context, identityID int64) (int64, error) {
	args := m.Called(ctx, identityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenancySvc) CreateInvite(ctx context.Context, identityID int64) (string, error) {
	args := m.Called(ctx, identityID)
	return args.String(0), args.Error(1)
}

func (m *MockTenancySvc) RedeemInvite(ctx context.Context, token string, identityID int64) (bool, error) {
	args := m.Called(ctx, token, identityID)
	return args.Bool(0), args.Error(1)
}

// MockReconciliationSvc stands in for the reconciliation facade in the ledger
// suite.
type MockReconciliationSvc struct {
	mock.Mock
}

func (m *MockReconciliationSvc) PostOpeningValue(ctx context.Context, ownerID int64, account *domain.Account, value decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, account, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockReconciliationSvc) ArchiveAccount(ctx context.Context, ownerID, accountID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockReconciliationSvc) ArchiveGroup(ctx context.Context, ownerID, groupID int64) error {
	args := m.Called(ctx, ownerID, groupID)
	return args.Error(0)
}

func (m *MockReconciliationSvc) EnsureCorrectionAccount(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// testTaxonomy builds a registry with fixed ids: assets=1, expenditures=2,
// liabilities=3, income=4, capital=5.
func testTaxonomy() domain.Taxonomy {
	types := make([]domain.AccountType, len(domain.AccountTypeNames))
	for i, name := range domain.AccountTypeNames {
		types[i] = domain.AccountType{ID: int64(i + 1), Name: name}
	}
	return domain.NewTaxonomy(types)
}
