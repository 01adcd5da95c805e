package services

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
	"github.com/famledger/famledger/internal/middleware"
	"github.com/famledger/famledger/internal/utils"
)

// inviteTokenBytes sizes invite tokens; 32 random bytes hex-encode to 64 chars.
const inviteTokenBytes = 32

type tenancyService struct {
	tenancyRepo portsrepo.TenancyRepository
}

// NewTenancyService creates the service mapping identities onto shared ledgers.
func NewTenancyService(tenancyRepo portsrepo.TenancyRepository) portssvc.TenancySvcFacade {
	return &tenancyService{tenancyRepo: tenancyRepo}
}

var _ portssvc.TenancySvcFacade = (*tenancyService)(nil)

// FamilyID resolves the owning ledger identity; identities without a mapping
// own their own ledger.
func (s *tenancyService) FamilyID(ctx context.Context, identityID int64) (int64, error) {
	familyID, ok, err := s.tenancyRepo.FindFamilyID(ctx, identityID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve family for identity %d: %w", identityID, err)
	}
	if !ok {
		return identityID, nil
	}
	return familyID, nil
}

func (s *tenancyService) CreateInvite(ctx context.Context, identityID int64) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	familyID, err := s.FamilyID(ctx, identityID)
	if err != nil {
		return "", err
	}

	token, err := utils.GenerateSecureRandomString(inviteTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}

	if err := s.tenancyRepo.SaveInvite(ctx, token, familyID); err != nil {
		return "", fmt.Errorf("failed to store invite: %w", err)
	}

	logger.Info("Invite created", slog.Int64("family_id", familyID))
	return token, nil
}

// RedeemInvite consumes the token and rebinds the joining identity. The
// storage contract deletes the token and writes the mapping in one
// transaction, so a failed bind never burns the token and a retried
// redemption returns false rather than double-applying.
func (s *tenancyService) RedeemInvite(ctx context.Context, token string, identityID int64) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	familyID, ok, err := s.tenancyRepo.RedeemInvite(ctx, token, identityID)
	if err != nil {
		return false, fmt.Errorf("failed to redeem invite: %w", err)
	}
	if !ok {
		logger.Warn("Unknown or already used invite token")
		return false, nil
	}

	logger.Info("Identity joined family", slog.Int64("family_id", familyID))
	return true, nil
}
