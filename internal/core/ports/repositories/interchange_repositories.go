package repositories

import (
	"context"

	"github.com/famledger/famledger/internal/interchange"
)

// InterchangeRepository dumps and restores the full store state for the bulk
// export/import collaborator.
type InterchangeRepository interface {
	// Dump reads every table into a snapshot, columns in declaration order.
	Dump(ctx context.Context) (*interchange.Snapshot, error)

	// Restore destructively replaces the store contents with the snapshot,
	// inserting rows verbatim in file order and matching columns by header.
	Restore(ctx context.Context, snap *interchange.Snapshot) error
}
