package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilter is a conjunction of optional predicates over postings.
// Date bounds compare the calendar date of the posting timestamp, inclusive.
// Amount bounds are inclusive. Group and account predicates match either leg.
type TransactionFilter struct {
	MinDate   *time.Time
	MaxDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	GroupID   *int64
	AccountID *int64
}

// Empty reports whether no predicate is set.
func (f TransactionFilter) Empty() bool {
	return f.MinDate == nil && f.MaxDate == nil &&
		f.MinAmount == nil && f.MaxAmount == nil &&
		f.GroupID == nil && f.AccountID == nil
}

// ChronoScope restricts a chronological listing to postings touching a type
// or a group on either leg. At most one of the two fields is set.
type ChronoScope struct {
	TypeID  *int64
	GroupID *int64
}
