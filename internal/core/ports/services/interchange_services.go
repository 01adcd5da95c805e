package services

import (
	"context"
	"io"
)

// InterchangeSvcFacade is the bulk export/import surface. Import is
// destructive: the store is reset before rows are replayed.
type InterchangeSvcFacade interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, archive []byte) error
}
