package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/core/services"
	"github.com/famledger/famledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockGroups   *MockGroupRepository
	mockAccounts *MockAccountRepository
	mockTxns     *MockTransactionRepository
	mockSettings *MockSettingRepository
	mockTenancy  *MockTenancySvc
	mockRecon    *MockReconciliationSvc
	service      portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockGroups = new(MockGroupRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockSettings = new(MockSettingRepository)
	suite.mockTenancy = new(MockTenancySvc)
	suite.mockRecon = new(MockReconciliationSvc)
	suite.mockTenancy.On("FamilyID", mock.Anything, testIdentityID).Return(testOwnerID, nil)
	suite.service = services.NewLedgerService(
		testTaxonomy(),
		suite.mockGroups,
		suite.mockAccounts,
		suite.mockTxns,
		suite.mockSettings,
		suite.mockTenancy,
		suite.mockRecon,
	)
}

func (suite *LedgerServiceTestSuite) TestListTypes_SeedingOrder() {
	types := suite.service.ListTypes(context.Background())

	suite.Require().Len(types, 5)
	suite.Equal(domain.TypeAssets, types[0].Name)
	suite.Equal(domain.TypeCapital, types[4].Name)
}

func (suite *LedgerServiceTestSuite) TestCreateGroup_UnknownType() {
	req := dto.CreateGroupRequest{TypeID: 99, Name: "whatever"}

	_, err := suite.service.CreateGroup(context.Background(), testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGroups.AssertNotCalled(suite.T(), "SaveGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateGroup_ProvisionsMirrorAccount() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{TypeID: 1, Name: "savings"}
	mirrorGroup := &domain.AccountGroup{ID: 50, TypeID: 5, TypeName: domain.TypeCapital, Name: "assets"}

	suite.mockGroups.On("SaveGroup", ctx, testOwnerID, int64(1), "savings").Return(int64(14), nil).Once()
	suite.mockGroups.On("FindGroupByName", ctx, testOwnerID, int64(5), "assets").Return(mirrorGroup, nil).Once()
	suite.mockAccounts.On("ListAccounts", ctx, testOwnerID, int64(50)).Return([]domain.Account{}, nil).Once()
	suite.mockAccounts.On("SaveAccount", ctx, testOwnerID, int64(50), "savings").Return(int64(200), nil).Once()

	group, err := suite.service.CreateGroup(ctx, testIdentityID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(14), group.ID)
	suite.Equal(domain.TypeAssets, group.TypeName)
	suite.mockAccounts.AssertExpectations(suite.T())
}

// Mirror provisioning failures surface to the caller instead of leaving a
// silently half-provisioned group; the group row itself has committed and
// EnsureSeeded backfills the mirror on the next seeding pass.
func (suite *LedgerServiceTestSuite) TestCreateGroup_MirrorProvisioningFailureSurfaces() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{TypeID: 1, Name: "savings"}

	suite.mockGroups.On("SaveGroup", ctx, testOwnerID, int64(1), "savings").Return(int64(14), nil).Once()
	suite.mockGroups.On("FindGroupByName", ctx, testOwnerID, int64(5), "assets").Return(nil, assert.AnError).Once()

	_, err := suite.service.CreateGroup(ctx, testIdentityID, req)

	suite.ErrorIs(err, assert.AnError)
}

func (suite *LedgerServiceTestSuite) TestCreateGroup_DuplicatePropagates() {
	ctx := context.Background()
	req := dto.CreateGroupRequest{TypeID: 1, Name: "cash"}

	suite.mockGroups.On("SaveGroup", ctx, testOwnerID, int64(1), "cash").Return(int64(0), apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateGroup(ctx, testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_NegativeOpeningValue() {
	req := dto.CreateAccountRequest{GroupID: 7, Name: "wallet", OpeningValue: decimal.NewFromInt(-5)}

	_, err := suite.service.CreateAccount(context.Background(), testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccounts.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_ZeroOpeningSkipsReconciliation() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{GroupID: 7, Name: "wallet"}
	group := &domain.AccountGroup{ID: 7, TypeName: domain.TypeAssets, Name: "cash"}

	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(7)).Return(group, nil).Once()
	suite.mockAccounts.On("SaveAccount", ctx, testOwnerID, int64(7), "wallet").Return(int64(31), nil).Once()

	account, err := suite.service.CreateAccount(ctx, testIdentityID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(31), account.ID)
	suite.Equal("cash", account.GroupName)
	suite.mockRecon.AssertNotCalled(suite.T(), "PostOpeningValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_OpeningValueDelegated() {
	ctx := context.Background()
	value := decimal.NewFromInt(900)
	req := dto.CreateAccountRequest{GroupID: 7, Name: "wallet", OpeningValue: value}
	group := &domain.AccountGroup{ID: 7, TypeName: domain.TypeAssets, Name: "cash"}

	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(7)).Return(group, nil).Once()
	suite.mockAccounts.On("SaveAccount", ctx, testOwnerID, int64(7), "wallet").Return(int64(32), nil).Once()
	suite.mockRecon.On("PostOpeningValue", ctx, testOwnerID, mock.MatchedBy(func(a *domain.Account) bool {
		return a.ID == 32 && a.GroupID == 7
	}), value).Return(&domain.Transaction{ID: 1}, nil).Once()

	_, err := suite.service.CreateAccount(ctx, testIdentityID, req)

	suite.Require().NoError(err)
	suite.mockRecon.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateAccount_UnresolvedMirrorSurfaces() {
	ctx := context.Background()
	value := decimal.NewFromInt(10)
	req := dto.CreateAccountRequest{GroupID: 7, Name: "wallet", OpeningValue: value}
	group := &domain.AccountGroup{ID: 7, TypeName: domain.TypeAssets, Name: "cash"}

	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(7)).Return(group, nil).Once()
	suite.mockAccounts.On("SaveAccount", ctx, testOwnerID, int64(7), "wallet").Return(int64(33), nil).Once()
	suite.mockRecon.On("PostOpeningValue", ctx, testOwnerID, mock.Anything, value).Return(nil, apperrors.ErrUnresolvedMirror).Once()

	_, err := suite.service.CreateAccount(ctx, testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrUnresolvedMirror)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	req := dto.CreateTransactionRequest{FromAccount: 1, ToAccount: 2, Amount: decimal.Zero}

	_, err := suite.service.CreateTransaction(context.Background(), testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_UnknownLeg() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{FromAccount: 404, ToAccount: 2, Amount: decimal.NewFromInt(5)}

	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxns.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Equal legs are deliberately not rejected. Valuation nets such a posting to
// zero (inflow and outflow are summed independently), so accepting it here is
// harmless and matches the relaxed store contract.
func (suite *LedgerServiceTestSuite) TestCreateTransaction_EqualLegsAccepted() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{FromAccount: 9, ToAccount: 9, Amount: decimal.NewFromInt(100)}

	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(9)).Return(&domain.Account{ID: 9}, nil).Twice()
	suite.mockTxns.On("SaveTransaction", ctx, testOwnerID, int64(9), int64(9), req.Amount, mock.AnythingOfType("time.Time")).Return(int64(77), nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, testIdentityID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(9), txn.FromAccount)
	suite.Equal(int64(9), txn.ToAccount)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_ParsesTimestamp() {
	ctx := context.Background()
	tsStr := "2026-03-01T09:30:00"
	req := dto.CreateTransactionRequest{FromAccount: 1, ToAccount: 2, Amount: decimal.NewFromInt(5), Timestamp: &tsStr}
	want, _ := time.Parse(dto.TimestampLayout, tsStr)

	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(1)).Return(&domain.Account{ID: 1}, nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(2)).Return(&domain.Account{ID: 2}, nil).Once()
	suite.mockTxns.On("SaveTransaction", ctx, testOwnerID, int64(1), int64(2), req.Amount, want).Return(int64(61), nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, testIdentityID, req)

	suite.Require().NoError(err)
	suite.Equal(want, txn.Timestamp)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_MalformedTimestamp() {
	ctx := context.Background()
	tsStr := "01/03/2026"
	req := dto.CreateTransactionRequest{FromAccount: 1, ToAccount: 2, Amount: decimal.NewFromInt(5), Timestamp: &tsStr}

	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(1)).Return(&domain.Account{ID: 1}, nil).Once()
	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(2)).Return(&domain.Account{ID: 2}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, testIdentityID, req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpdateTransactionAmount_RejectsNonPositive() {
	err := suite.service.UpdateTransactionAmount(context.Background(), testIdentityID, 1, decimal.NewFromInt(-3))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestArchiveAccount_Delegates() {
	ctx := context.Background()
	suite.mockRecon.On("ArchiveAccount", ctx, testOwnerID, int64(21)).Return(nil, nil).Once()

	err := suite.service.ArchiveAccount(ctx, testIdentityID, 21)

	suite.Require().NoError(err)
	suite.mockRecon.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestEnsureSeeded_CreatesStockGroupsAndMirrors() {
	ctx := context.Background()

	// Every stock group is looked up and found, so nothing is created.
	for _, typeName := range domain.AccountTypeNames {
		typeID, _ := testTaxonomy().IDOf(typeName)
		for _, groupName := range domain.DefaultGroups[typeName] {
			suite.mockGroups.On("FindGroupByName", ctx, testOwnerID, typeID, groupName).
				Return(&domain.AccountGroup{ID: typeID * 100, Name: groupName}, nil).Once()
		}
	}
	// Mirror pass: no sibling groups, so no mirror accounts are ensured.
	for _, typeName := range domain.MirroredTypes {
		typeID, _ := testTaxonomy().IDOf(typeName)
		suite.mockGroups.On("FindGroupByName", ctx, testOwnerID, int64(5), string(typeName)).
			Return(&domain.AccountGroup{ID: 500 + typeID, Name: string(typeName)}, nil).Once()
		suite.mockGroups.On("ListGroups", ctx, testOwnerID, typeID).Return([]domain.AccountGroup{}, nil).Once()
	}

	err := suite.service.EnsureSeeded(ctx, testIdentityID)

	suite.Require().NoError(err)
	suite.mockGroups.AssertExpectations(suite.T())
	suite.mockAccounts.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
