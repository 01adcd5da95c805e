package services_test

import (
	"context"
	"testing"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testIdentityID = int64(7)

type ValuationServiceTestSuite struct {
	suite.Suite
	mockGroups    *MockGroupRepository
	mockAccounts  *MockAccountRepository
	mockValuation *MockValuationRepository
	mockSettings  *MockSettingRepository
	mockTenancy   *MockTenancySvc
	service       portssvc.ValuationSvcFacade
}

func (suite *ValuationServiceTestSuite) SetupTest() {
	suite.mockGroups = new(MockGroupRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockValuation = new(MockValuationRepository)
	suite.mockSettings = new(MockSettingRepository)
	suite.mockTenancy = new(MockTenancySvc)
	suite.mockTenancy.On("FamilyID", mock.Anything, testIdentityID).Return(testOwnerID, nil)
	suite.service = services.NewValuationService(
		testTaxonomy(),
		suite.mockGroups,
		suite.mockAccounts,
		suite.mockValuation,
		suite.mockSettings,
		suite.mockTenancy,
	)
}

func (suite *ValuationServiceTestSuite) TestAccountValue_DirectTypeKeepsSign() {
	ctx := context.Background()
	account := &domain.Account{ID: 1, GroupID: 10}
	group := &domain.AccountGroup{ID: 10, TypeName: domain.TypeAssets}

	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(1)).Return(account, nil).Once()
	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(10)).Return(group, nil).Once()
	suite.mockValuation.On("AccountBalance", ctx, testOwnerID, int64(1)).Return(decimal.NewFromInt(120), nil).Once()

	value, err := suite.service.AccountValue(ctx, testIdentityID, 1)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(120).Equal(value))
}

func (suite *ValuationServiceTestSuite) TestAccountValue_InvertedTypeNegates() {
	ctx := context.Background()
	account := &domain.Account{ID: 2, GroupID: 11}
	group := &domain.AccountGroup{ID: 11, TypeName: domain.TypeLiabilities}

	suite.mockAccounts.On("FindAccountByID", ctx, testOwnerID, int64(2)).Return(account, nil).Once()
	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(11)).Return(group, nil).Once()
	suite.mockValuation.On("AccountBalance", ctx, testOwnerID, int64(2)).Return(decimal.NewFromInt(-300), nil).Once()

	value, err := suite.service.AccountValue(ctx, testIdentityID, 2)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(300).Equal(value))
}

func (suite *ValuationServiceTestSuite) TestGroupValue_SumsThenSigns() {
	ctx := context.Background()
	group := &domain.AccountGroup{ID: 12, TypeName: domain.TypeIncome}
	balances := []domain.AccountBalance{
		{ID: 1, Balance: decimal.NewFromInt(-100)},
		{ID: 2, Balance: decimal.NewFromInt(-50)},
	}

	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(12)).Return(group, nil).Once()
	suite.mockValuation.On("ActiveAccountBalancesByGroup", ctx, testOwnerID, int64(12)).Return(balances, nil).Once()

	value, err := suite.service.GroupValue(ctx, testIdentityID, 12)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(150).Equal(value))
}

func (suite *ValuationServiceTestSuite) TestTypeValue_UnknownType() {
	_, err := suite.service.TypeValue(context.Background(), testIdentityID, 99)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ValuationServiceTestSuite) TestListAccountsWithValue_AppliesPerLineSign() {
	ctx := context.Background()
	group := &domain.AccountGroup{ID: 13, TypeName: domain.TypeExpenditures}
	balances := []domain.AccountBalance{
		{ID: 1, Name: "groceries", TypeName: domain.TypeExpenditures, Balance: decimal.NewFromInt(80)},
		{ID: 2, Name: "rent", TypeName: domain.TypeExpenditures, Balance: decimal.NewFromInt(900)},
	}

	suite.mockGroups.On("FindGroupByID", ctx, testOwnerID, int64(13)).Return(group, nil).Once()
	suite.mockValuation.On("ActiveAccountBalancesByGroup", ctx, testOwnerID, int64(13)).Return(balances, nil).Once()

	lines, err := suite.service.ListAccountsWithValue(ctx, testIdentityID, 13)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)
	suite.Equal("groceries", lines[0].Name)
	suite.True(decimal.NewFromInt(80).Equal(lines[0].Value))
	suite.True(decimal.NewFromInt(900).Equal(lines[1].Value))
}

func (suite *ValuationServiceTestSuite) TestSelectedAccountsBalance_NoSelectionIsZero() {
	ctx := context.Background()
	suite.mockSettings.On("GetSetting", ctx, testOwnerID, domain.DashboardAccountsSetting).Return("", apperrors.ErrNotFound).Once()

	balance, err := suite.service.SelectedAccountsBalance(ctx, testIdentityID)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
	suite.mockValuation.AssertNotCalled(suite.T(), "AccountBalances", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ValuationServiceTestSuite) TestSelectedAccountsBalance_SumsSelection() {
	ctx := context.Background()
	suite.mockSettings.On("GetSetting", ctx, testOwnerID, domain.DashboardAccountsSetting).Return("3, 5,8", nil).Once()
	suite.mockValuation.On("AccountBalances", ctx, testOwnerID, []int64{3, 5, 8}).Return([]domain.AccountBalance{
		{ID: 3, Balance: decimal.NewFromInt(10)},
		{ID: 5, Balance: decimal.NewFromInt(-4)},
		{ID: 8, Balance: decimal.NewFromInt(6)},
	}, nil).Once()

	balance, err := suite.service.SelectedAccountsBalance(ctx, testIdentityID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(12).Equal(balance))
}

func (suite *ValuationServiceTestSuite) TestSelectedAccountsBalance_MalformedEntry() {
	ctx := context.Background()
	suite.mockSettings.On("GetSetting", ctx, testOwnerID, domain.DashboardAccountsSetting).Return("3,oops", nil).Once()

	_, err := suite.service.SelectedAccountsBalance(ctx, testIdentityID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestValuationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ValuationServiceTestSuite))
}
