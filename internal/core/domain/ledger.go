package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountGroup is a named subdivision of accounts within a type, owner-scoped.
// Active groups are unique on (owner, type, name); archiving is soft.
type AccountGroup struct {
	ID       int64           `json:"id"`
	OwnerID  int64           `json:"ownerID"`
	TypeID   int64           `json:"typeID"`
	TypeName AccountTypeName `json:"typeName"`
	Name     string          `json:"name"`
	Archived bool            `json:"archived"`
}

// Account is a leaf the ledger posts against. Names may repeat within a group.
type Account struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerID"`
	GroupID   int64  `json:"groupID"`
	GroupName string `json:"groupName"`
	Name      string `json:"name"`
	Archived  bool   `json:"archived"`
}

// Transaction is a directed transfer of a positive amount between two accounts.
// Immutable once posted, except the amount which may be corrected in place.
type Transaction struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"ownerID"`
	FromAccount int64           `json:"fromAccount"`
	ToAccount   int64           `json:"toAccount"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`

	// Leg labels for presentation, populated by list queries.
	FromName  string          `json:"fromName,omitempty"`
	ToName    string          `json:"toName,omitempty"`
	FromGroup string          `json:"fromGroup,omitempty"`
	ToGroup   string          `json:"toGroup,omitempty"`
	FromType  AccountTypeName `json:"fromType,omitempty"`
	ToType    AccountTypeName `json:"toType,omitempty"`
}

// Setting is an opaque per-owner key/value pair persisted for presentation
// collaborators. The core never interprets the value.
type Setting struct {
	OwnerID int64  `json:"ownerID"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

// ValueLine is one row of a valuation listing: an entity and its sign-adjusted value.
type ValueLine struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// AccountBalance pairs an account with its raw (unsigned) balance.
type AccountBalance struct {
	ID       int64
	Name     string
	TypeName AccountTypeName
	Balance  decimal.Decimal
}
