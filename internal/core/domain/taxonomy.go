package domain

import "github.com/shopspring/decimal"

// AccountTypeName identifies one of the five fixed account types.
type AccountTypeName string

const (
	TypeAssets       AccountTypeName = "assets"
	TypeExpenditures AccountTypeName = "expenditures"
	TypeLiabilities  AccountTypeName = "liabilities"
	TypeIncome       AccountTypeName = "income"
	TypeCapital      AccountTypeName = "capital"
)

// AccountTypeNames lists every type in seeding order.
var AccountTypeNames = []AccountTypeName{
	TypeAssets,
	TypeExpenditures,
	TypeLiabilities,
	TypeIncome,
	TypeCapital,
}

// TypeCodes are short codes used in transaction descriptions.
var TypeCodes = map[AccountTypeName]string{
	TypeAssets:       "A",
	TypeExpenditures: "E",
	TypeLiabilities:  "L",
	TypeIncome:       "I",
	TypeCapital:      "C",
}

// IsInverted reports whether the type's sign convention inverts the raw
// balance for reporting. Assets and expenditures are direct; liabilities,
// income and capital are inverted.
func (n AccountTypeName) IsInverted() bool {
	switch n {
	case TypeLiabilities, TypeIncome, TypeCapital:
		return true
	default:
		return false
	}
}

// SignedValue applies the type's sign convention to a raw balance.
func (n AccountTypeName) SignedValue(balance decimal.Decimal) decimal.Decimal {
	if n.IsInverted() {
		return balance.Neg()
	}
	return balance
}

// Valid reports whether n is one of the five known types.
func (n AccountTypeName) Valid() bool {
	switch n {
	case TypeAssets, TypeExpenditures, TypeLiabilities, TypeIncome, TypeCapital:
		return true
	}
	return false
}

// Well-known rows inside the capital type.
const (
	CorrectionsGroupName     = "Corrections"
	CorrectionsAccountName   = "Default"
	DashboardAccountsSetting = "dashboard_accounts"
)

// DefaultGroups is the stock group taxonomy created for a fresh ledger.
var DefaultGroups = map[AccountTypeName][]string{
	TypeAssets: {
		"cash",
		"bank accounts",
		"bank deposits",
		"debit card",
		"credit card",
		"fixed assets",
	},
	TypeExpenditures: {
		"Education",
		"Living space",
		"Entertainment",
		"Transport",
		"Health & Sport",
		"Culture",
		"Digital",
		"Electronics",
		"Apparel",
	},
	TypeLiabilities: {
		"Mortgage",
	},
	TypeIncome: {
		"Salary",
	},
	TypeCapital: {
		string(TypeAssets),
		string(TypeLiabilities),
		string(TypeExpenditures),
		string(TypeIncome),
		CorrectionsGroupName,
	},
}

// MirroredTypes are the types that get a same-named mirror group under capital.
// Accounts inside each mirror group are named after the sibling type's groups.
var MirroredTypes = []AccountTypeName{
	TypeAssets,
	TypeLiabilities,
	TypeExpenditures,
	TypeIncome,
}

// AccountType is a persisted taxonomy row. Rows are global, not per-owner.
type AccountType struct {
	ID   int64           `json:"id"`
	Name AccountTypeName `json:"name"`
}

// Taxonomy is the registry of well-known type ids, resolved once at startup.
// A missing row after seeding is a startup error, not a per-call condition.
type Taxonomy struct {
	ids   map[AccountTypeName]int64
	names map[int64]AccountTypeName
}

func NewTaxonomy(types []AccountType) Taxonomy {
	t := Taxonomy{
		ids:   make(map[AccountTypeName]int64, len(types)),
		names: make(map[int64]AccountTypeName, len(types)),
	}
	for _, at := range types {
		t.ids[at.Name] = at.ID
		t.names[at.ID] = at.Name
	}
	return t
}

// Complete reports whether every known type has a resolved id.
func (t Taxonomy) Complete() bool {
	for _, name := range AccountTypeNames {
		if _, ok := t.ids[name]; !ok {
			return false
		}
	}
	return true
}

// IDOf returns the persisted id for a type name.
func (t Taxonomy) IDOf(name AccountTypeName) (int64, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// NameOf returns the type name for a persisted id.
func (t Taxonomy) NameOf(id int64) (AccountTypeName, bool) {
	name, ok := t.names[id]
	return name, ok
}
