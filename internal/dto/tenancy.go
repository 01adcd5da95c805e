package dto

// InviteResponse returns a freshly issued single-use invite token.
type InviteResponse struct {
	Token string `json:"token"`
}

// JoinFamilyRequest redeems an invite token for the calling identity.
type JoinFamilyRequest struct {
	Token string `json:"token" binding:"required"`
}

// FamilyResponse reports the ledger owner an identity maps to.
type FamilyResponse struct {
	IdentityID int64 `json:"identityID"`
	FamilyID   int64 `json:"familyID"`
}
