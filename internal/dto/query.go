package dto

import (
	"fmt"
	"time"

	"github.com/famledger/famledger/internal/apperrors"
	"github.com/famledger/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams carries filter and paging inputs as they arrive on
// the query string.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	Offset    int     `form:"offset"`
	MinDate   *string `form:"minDate"`
	MaxDate   *string `form:"maxDate"`
	MinAmount *string `form:"minAmount"`
	MaxAmount *string `form:"maxAmount"`
	GroupID   *int64  `form:"groupID"`
	AccountID *int64  `form:"accountID"`

	// Chronological scope, only honored on the time-series listing.
	TypeID *int64 `form:"typeID"`
}

// ToFilter validates and converts the raw params into a domain filter.
func (p ListTransactionsParams) ToFilter() (domain.TransactionFilter, error) {
	var f domain.TransactionFilter
	if p.MinDate != nil && *p.MinDate != "" {
		d, err := time.Parse(DateLayout, *p.MinDate)
		if err != nil {
			return f, fmt.Errorf("%w: minDate %q", apperrors.ErrValidation, *p.MinDate)
		}
		f.MinDate = &d
	}
	if p.MaxDate != nil && *p.MaxDate != "" {
		d, err := time.Parse(DateLayout, *p.MaxDate)
		if err != nil {
			return f, fmt.Errorf("%w: maxDate %q", apperrors.ErrValidation, *p.MaxDate)
		}
		f.MaxDate = &d
	}
	if p.MinAmount != nil && *p.MinAmount != "" {
		a, err := decimal.NewFromString(*p.MinAmount)
		if err != nil {
			return f, fmt.Errorf("%w: minAmount %q", apperrors.ErrValidation, *p.MinAmount)
		}
		f.MinAmount = &a
	}
	if p.MaxAmount != nil && *p.MaxAmount != "" {
		a, err := decimal.NewFromString(*p.MaxAmount)
		if err != nil {
			return f, fmt.Errorf("%w: maxAmount %q", apperrors.ErrValidation, *p.MaxAmount)
		}
		f.MaxAmount = &a
	}
	f.GroupID = p.GroupID
	f.AccountID = p.AccountID
	return f, nil
}

// ListTransactionsResponse is a page of postings.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ValueLineResponse is one {id, name, value} row of a valuation listing.
type ValueLineResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

func ToValueLineResponses(lines []domain.ValueLine) []ValueLineResponse {
	out := make([]ValueLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ValueLineResponse{ID: l.ID, Name: l.Name, Value: l.Value}
	}
	return out
}

// BalanceResponse returns one computed balance or value.
type BalanceResponse struct {
	ID    int64           `json:"id"`
	Value decimal.Decimal `json:"value"`
}
