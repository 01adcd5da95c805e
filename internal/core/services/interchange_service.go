package services

import (
	"context"
	"fmt"
	"io"

	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/interchange"
	"github.com/famledger/famledger/internal/middleware"
)

// interchangeService bridges the store and the zip-of-CSV wire format.
type interchangeService struct {
	interchangeRepo portsrepo.InterchangeRepository
}

// NewInterchangeService creates the bulk export/import service.
func NewInterchangeService(interchangeRepo portsrepo.InterchangeRepository) portssvc.InterchangeSvcFacade {
	return &interchangeService{interchangeRepo: interchangeRepo}
}

var _ portssvc.InterchangeSvcFacade = (*interchangeService)(nil)

func (s *interchangeService) Export(ctx context.Context, w io.Writer) error {
	snap, err := s.interchangeRepo.Dump(ctx)
	if err != nil {
		return fmt.Errorf("failed to dump store: %w", err)
	}
	if err := interchange.WriteArchive(w, snap); err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	return nil
}

// Import destructively replaces the store contents with the archive rows.
func (s *interchangeService) Import(ctx context.Context, archive []byte) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := interchange.ReadArchive(archive)
	if err != nil {
		return fmt.Errorf("failed to decode archive: %w", err)
	}
	if err := s.interchangeRepo.Restore(ctx, snap); err != nil {
		return fmt.Errorf("failed to restore store: %w", err)
	}

	logger.Info("Store restored from archive")
	return nil
}
