package services

import "context"

// TenancySvcFacade maps identities to the owning ledger identity and manages
// invite tokens.
type TenancySvcFacade interface {
	// FamilyID returns the owning ledger identity; an unmapped identity owns
	// its own ledger.
	FamilyID(ctx context.Context, identityID int64) (int64, error)

	// CreateInvite issues an unguessable single-use token bound to the
	// caller's family.
	CreateInvite(ctx context.Context, identityID int64) (string, error)

	// RedeemInvite consumes the token and binds the joining identity to the
	// issuing family. Returns false for unknown or already used tokens.
	RedeemInvite(ctx context.Context, token string, identityID int64) (bool, error)
}
