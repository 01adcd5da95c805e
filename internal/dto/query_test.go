package dto

import (
	"testing"
	"time"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListTransactionsParams_ToFilter(t *testing.T) {
	groupID := int64(7)
	params := ListTransactionsParams{
		MinDate:   strPtr("2026-03-01"),
		MaxDate:   strPtr("2026-03-31"),
		MinAmount: strPtr("10.50"),
		GroupID:   &groupID,
	}

	filter, err := params.ToFilter()
	require.NoError(t, err)

	require.NotNil(t, filter.MinDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *filter.MinDate)
	require.NotNil(t, filter.MaxDate)
	require.NotNil(t, filter.MinAmount)
	assert.Equal(t, "10.5", filter.MinAmount.String())
	assert.Nil(t, filter.MaxAmount)
	assert.Equal(t, &groupID, filter.GroupID)
	assert.False(t, filter.Empty())
}

func TestListTransactionsParams_ToFilterEmpty(t *testing.T) {
	filter, err := ListTransactionsParams{}.ToFilter()
	require.NoError(t, err)
	assert.True(t, filter.Empty())
}

func TestListTransactionsParams_ToFilterBadDate(t *testing.T) {
	params := ListTransactionsParams{MinDate: strPtr("01/03/2026")}

	_, err := params.ToFilter()

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListTransactionsParams_ToFilterBadAmount(t *testing.T) {
	params := ListTransactionsParams{MaxAmount: strPtr("ten")}

	_, err := params.ToFilter()

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateTransactionRequest_ParseTimestamp(t *testing.T) {
	req := CreateTransactionRequest{Timestamp: strPtr("2026-03-01T09:30:00")}

	ts, err := req.ParseTimestamp()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), ts)

	req.Timestamp = nil
	ts, err = req.ParseTimestamp()
	require.NoError(t, err)
	assert.True(t, ts.IsZero())
}
