package services_test

import (
	"context"
	"testing"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type QueryServiceTestSuite struct {
	suite.Suite
	mockTxns    *MockTransactionRepository
	mockTenancy *MockTenancySvc
	service     portssvc.QuerySvcFacade
}

func (suite *QueryServiceTestSuite) SetupTest() {
	suite.mockTxns = new(MockTransactionRepository)
	suite.mockTenancy = new(MockTenancySvc)
	suite.mockTenancy.On("FamilyID", mock.Anything, testIdentityID).Return(testOwnerID, nil)
	suite.service = services.NewQueryService(suite.mockTxns, suite.mockTenancy)
}

func (suite *QueryServiceTestSuite) TestListTransactions_NormalizesPaging() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}

	// Zero limit falls back to the default page size, negative offset to zero.
	suite.mockTxns.On("ListTransactions", ctx, testOwnerID, 20, 0, filter).
		Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, testIdentityID, 0, -3, filter)

	suite.Require().NoError(err)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *QueryServiceTestSuite) TestListTransactions_ResolvesOwnerThroughTenancy() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	rows := []domain.Transaction{{ID: 9, OwnerID: testOwnerID}}

	suite.mockTxns.On("ListTransactions", ctx, testOwnerID, 50, 10, filter).Return(rows, nil).Once()

	got, err := suite.service.ListTransactions(ctx, testIdentityID, 50, 10, filter)

	suite.Require().NoError(err)
	suite.Equal(rows, got)
}

func (suite *QueryServiceTestSuite) TestListTransactionsChronological_PassesScope() {
	ctx := context.Background()
	typeID := int64(3)
	scope := domain.ChronoScope{TypeID: &typeID}
	filter := domain.TransactionFilter{}

	suite.mockTxns.On("ListTransactionsChronological", ctx, testOwnerID, scope, filter, 20, 0).
		Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.ListTransactionsChronological(ctx, testIdentityID, scope, filter, 0, 0)

	suite.Require().NoError(err)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *QueryServiceTestSuite) TestGetTransaction_NotFound() {
	ctx := context.Background()
	suite.mockTxns.On("FindTransactionByID", ctx, testOwnerID, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTransaction(ctx, testIdentityID, 404)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QueryServiceTestSuite))
}
