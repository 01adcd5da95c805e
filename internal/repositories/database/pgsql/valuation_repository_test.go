package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The balance must be inflow minus outflow as two independent sums. A single
// joined CASE expression counts a self-transfer once (as inflow only) instead
// of cancelling it, so the expression shape is load-bearing.
func TestAccountNet_SumsInflowAndOutflowIndependently(t *testing.T) {
	assert.Contains(t, accountNet, "SELECT SUM(f.amount) FROM transactions f WHERE f.to_account = a.id")
	assert.Contains(t, accountNet, "SELECT SUM(f.amount) FROM transactions f WHERE f.from_account = a.id")
	assert.NotContains(t, accountNet, "CASE")
}
