package domain

// TenancyMapping binds an end-user identity to the identity owning the shared
// ledger. An identity without a mapping is its own ledger owner.
type TenancyMapping struct {
	IdentityID int64 `json:"identityID"`
	FamilyID   int64 `json:"familyID"`
}

// Invite is a single-use token admitting a joining identity into a family
// ledger. The row is deleted on redemption.
type Invite struct {
	Token    string `json:"token"`
	FamilyID int64  `json:"familyID"`
}
