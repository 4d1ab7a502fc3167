package domain

import "context"

// DraftResponse is the session snapshot returned to clients
type DraftResponse struct {
	Draft    UserDraft `json:"draft"`
	Hydrated bool      `json:"hydrated"`
}

// RoleSwitchRequest starts a role switch
type RoleSwitchRequest struct {
	Role RoleName `json:"role" validate:"required,oneof=talent recruiter org_admin"`
}

// RoleSwitchResult tells the client where to navigate once the switch is made
type RoleSwitchResult struct {
	Draft      UserDraft `json:"draft"`
	RedirectTo string    `json:"redirect_to"`
}

// Mutating operations refuse a store that has not hydrated: its snapshot is
// provisional and any check made against it could be wrong once the durable
// record loads.
type SessionUsecase interface {
	// GetDraft returns the current snapshot
	GetDraft(store DraftStore) *DraftResponse

	// UpdateProfile validates and merges client-editable profile fields
	UpdateProfile(store DraftStore, patch *ProfilePatch) (*DraftResponse, error)

	// Logout restores the default record
	Logout(store DraftStore) (*DraftResponse, error)

	// SyncIdentity fetches the identity document for token and merges it.
	// subject is the verified token subject the document must belong to.
	SyncIdentity(ctx context.Context, store DraftStore, token, subject string) (*DraftResponse, error)

	// BeginRoleSwitch marks a switch in progress and activates the new role
	BeginRoleSwitch(store DraftStore, req *RoleSwitchRequest) (*RoleSwitchResult, error)

	// CompleteRoleSwitch clears the in-progress flag
	CompleteRoleSwitch(store DraftStore) (*DraftResponse, error)
}
