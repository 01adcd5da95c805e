package pgsql

import (
	"fmt"
	"strings"

	"github.com/famledger/famledger/internal/core/domain"
)

// buildTransactionWhere renders the filter predicates as SQL fragments over the
// aliased transactions row (x) and its resolved leg groups (fg, tg). Arguments
// continue numbering from the supplied args slice, which already carries the
// owner id.
func buildTransactionWhere(filter domain.TransactionFilter, args []interface{}) (string, []interface{}) {
	clauses := []string{}

	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.MinDate != nil {
		clauses = append(clauses, fmt.Sprintf("x.ts::date >= %s::date", next(*filter.MinDate)))
	}
	if filter.MaxDate != nil {
		clauses = append(clauses, fmt.Sprintf("x.ts::date <= %s::date", next(*filter.MaxDate)))
	}
	if filter.MinAmount != nil {
		clauses = append(clauses, fmt.Sprintf("x.amount >= %s", next(*filter.MinAmount)))
	}
	if filter.MaxAmount != nil {
		clauses = append(clauses, fmt.Sprintf("x.amount <= %s", next(*filter.MaxAmount)))
	}
	if filter.GroupID != nil {
		p := next(*filter.GroupID)
		clauses = append(clauses, fmt.Sprintf("(fa.group_id = %s OR ta.group_id = %s)", p, p))
	}
	if filter.AccountID != nil {
		p := next(*filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("(x.from_account = %s OR x.to_account = %s)", p, p))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " AND " + strings.Join(clauses, " AND "), args
}

// buildScopeWhere renders the chronological scope restriction, matching either
// leg of the posting.
func buildScopeWhere(scope domain.ChronoScope, args []interface{}) (string, []interface{}) {
	if scope.TypeID != nil {
		args = append(args, *scope.TypeID)
		p := fmt.Sprintf("$%d", len(args))
		return fmt.Sprintf(" AND (fg.type_id = %s OR tg.type_id = %s)", p, p), args
	}
	if scope.GroupID != nil {
		args = append(args, *scope.GroupID)
		p := fmt.Sprintf("$%d", len(args))
		return fmt.Sprintf(" AND (fa.group_id = %s OR ta.group_id = %s)", p, p), args
	}
	return "", args
}
