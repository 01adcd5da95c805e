package repositories

import "context"

// TenancyRepository owns the identity->family mapping and invite tokens.
type TenancyRepository interface {
	// FindFamilyID returns the mapped owner for an identity. The second return
	// is false when no mapping exists (the identity is its own owner).
	FindFamilyID(ctx context.Context, identityID int64) (int64, bool, error)

	// SaveInvite stores a single-use token bound to a family.
	SaveInvite(ctx context.Context, token string, familyID int64) error

	// RedeemInvite deletes the token and binds identity -> family in a single
	// transaction, so the token is only ever consumed together with the
	// mapping it grants. ok is false for unknown or already used tokens.
	RedeemInvite(ctx context.Context, token string, identityID int64) (familyID int64, ok bool, err error)
}
