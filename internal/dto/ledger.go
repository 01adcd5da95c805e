package dto

import (
	"time"

	"github.com/famledger/famledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TimestampLayout is the wire format for posting timestamps: ISO-8601 at
// second precision, local/naive, no timezone.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the wire format for filter date bounds.
const DateLayout = "2006-01-02"

// CreateGroupRequest defines the data needed to create an account group.
type CreateGroupRequest struct {
	TypeID int64  `json:"typeID" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// GroupResponse mirrors domain.AccountGroup.
type GroupResponse struct {
	ID       int64                  `json:"id"`
	TypeID   int64                  `json:"typeID"`
	TypeName domain.AccountTypeName `json:"typeName"`
	Name     string                 `json:"name"`
	Archived bool                   `json:"archived"`
}

func ToGroupResponse(g *domain.AccountGroup) GroupResponse {
	return GroupResponse{
		ID:       g.ID,
		TypeID:   g.TypeID,
		TypeName: g.TypeName,
		Name:     g.Name,
		Archived: g.Archived,
	}
}

// CreateAccountRequest defines the data needed to create an account. A nonzero
// opening value triggers a mirror posting against the capital side.
type CreateAccountRequest struct {
	GroupID      int64           `json:"groupID" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	OpeningValue decimal.Decimal `json:"openingValue" binding:"gte=0"`
}

// AccountResponse mirrors domain.Account.
type AccountResponse struct {
	ID        int64  `json:"id"`
	GroupID   int64  `json:"groupID"`
	GroupName string `json:"groupName,omitempty"`
	Name      string `json:"name"`
	Archived  bool   `json:"archived"`
}

func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		GroupID:   a.GroupID,
		GroupName: a.GroupName,
		Name:      a.Name,
		Archived:  a.Archived,
	}
}

// RenameRequest carries an in-place name update.
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTransactionRequest defines a user-entered posting. Amount must be a
// positive finite number; Timestamp is optional and defaults to now.
type CreateTransactionRequest struct {
	FromAccount int64           `json:"fromAccount" binding:"required"`
	ToAccount   int64           `json:"toAccount" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Timestamp   *string         `json:"timestamp"`
}

// ParseTimestamp returns the request timestamp, or the zero time when absent.
func (r CreateTransactionRequest) ParseTimestamp() (time.Time, error) {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return time.Time{}, nil
	}
	return time.Parse(TimestampLayout, *r.Timestamp)
}

// UpdateTransactionAmountRequest carries an in-place amount correction.
type UpdateTransactionAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse mirrors domain.Transaction with presentation labels.
type TransactionResponse struct {
	ID          int64                  `json:"id"`
	FromAccount int64                  `json:"fromAccount"`
	ToAccount   int64                  `json:"toAccount"`
	Amount      decimal.Decimal        `json:"amount"`
	Timestamp   string                 `json:"timestamp"`
	FromName    string                 `json:"fromName,omitempty"`
	ToName      string                 `json:"toName,omitempty"`
	FromGroup   string                 `json:"fromGroup,omitempty"`
	ToGroup     string                 `json:"toGroup,omitempty"`
	FromType    domain.AccountTypeName `json:"fromType,omitempty"`
	ToType      domain.AccountTypeName `json:"toType,omitempty"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		FromAccount: t.FromAccount,
		ToAccount:   t.ToAccount,
		Amount:      t.Amount,
		Timestamp:   t.Timestamp.Format(TimestampLayout),
		FromName:    t.FromName,
		ToName:      t.ToName,
		FromGroup:   t.FromGroup,
		ToGroup:     t.ToGroup,
		FromType:    t.FromType,
		ToType:      t.ToType,
	}
}

func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}

// SettingRequest carries an opaque setting value.
type SettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse returns an opaque setting value.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
