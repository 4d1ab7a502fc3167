package usecase

import (
	"context"
	"errors"

	"talent-onboarding-backend/internal/domain"
	"talent-onboarding-backend/pkg/apperror"
	"talent-onboarding-backend/pkg/logger"
	"talent-onboarding-backend/pkg/metrics"
	"talent-onboarding-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type sessionUsecase struct {
	identity domain.IdentityClient
	validate *validator.Validate
}

func NewSessionUsecase(identity domain.IdentityClient, validate *validator.Validate) domain.SessionUsecase {
	return &sessionUsecase{
		identity: identity,
		validate: validate,
	}
}

func snapshot(store domain.DraftStore, draft domain.UserDraft) *domain.DraftResponse {
	return &domain.DraftResponse{Draft: draft, Hydrated: store.HasHydrated()}
}

// requireHydrated refuses to act on a provisional snapshot.
func requireHydrated(store domain.DraftStore) error {
	if !store.HasHydrated() {
		return apperror.ServiceUnavailable("Session is still loading. Please retry.")
	}
	return nil
}

func (u *sessionUsecase) GetDraft(store domain.DraftStore) *domain.DraftResponse {
	return snapshot(store, store.Get())
}

func (u *sessionUsecase) UpdateProfile(store domain.DraftStore, patch *domain.ProfilePatch) (*domain.DraftResponse, error) {
	if err := requireHydrated(store); err != nil {
		return nil, err
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(err))
	}

	// Security: once an identity is attached its roles come from identity sync only
	if patch.AvailableRoles != nil && store.Get().HasToken() {
		return nil, apperror.Forbidden("Available roles are managed by the identity service")
	}

	return snapshot(store, store.MergePatch(patch.ToDraftPatch())), nil
}

func (u *sessionUsecase) Logout(store domain.DraftStore) (*domain.DraftResponse, error) {
	if err := requireHydrated(store); err != nil {
		return nil, err
	}
	return snapshot(store, store.Reset()), nil
}

// ============================================================================
// Identity Sync
// ============================================================================

func (u *sessionUsecase) SyncIdentity(ctx context.Context, store domain.DraftStore, token, subject string) (*domain.DraftResponse, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Session token required")
	}
	if err := requireHydrated(store); err != nil {
		return nil, err
	}

	doc, err := u.identity.FetchIdentity(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityRejected) {
			return nil, apperror.Unauthorized("Identity service rejected the session token")
		}
		return nil, apperror.BadGateway("Identity service unavailable", err)
	}

	// Security: the document must describe the token's own subject
	if subject != "" && doc.ID != nil && *doc.ID != subject {
		logger.Log.Warn("Identity document subject mismatch", "token_sub", subject, "document_id", *doc.ID)
		return nil, apperror.Forbidden("Identity does not match session token")
	}

	for _, role := range doc.UnknownRoles() {
		logger.Log.Warn("Unknown role in identity document", "role", role)
		metrics.UnknownRoles.Inc()
	}

	patch := doc.ToDraftPatch()
	patch.Token = domain.Some(token)
	if patch.ID == nil && subject != "" {
		patch.ID = &subject
	}
	enforceActiveRoleAvailable(store.Get(), &patch)

	return snapshot(store, store.MergePatch(patch)), nil
}

// enforceActiveRoleAvailable keeps availableRoles a superset of the active
// role once the patch is applied.
func enforceActiveRoleAvailable(current domain.UserDraft, patch *domain.DraftPatch) {
	active := current.ActiveRole
	if patch.ActiveRole != nil {
		active = *patch.ActiveRole
	}
	if !active.IsSet() {
		return
	}

	roles := current.AvailableRoles
	if patch.AvailableRoles != nil {
		roles = *patch.AvailableRoles
	}
	for _, r := range roles {
		if r == active.RoleName() {
			return
		}
	}

	merged := append(append([]domain.RoleName{}, roles...), active.RoleName())
	patch.AvailableRoles = &merged
}

// ============================================================================
// Role Switch
// ============================================================================

func (u *sessionUsecase) BeginRoleSwitch(store domain.DraftStore, req *domain.RoleSwitchRequest) (*domain.RoleSwitchResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(err))
	}

	if err := requireHydrated(store); err != nil {
		return nil, err
	}

	draft := store.Get()
	if !draft.HasToken() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !draft.HasRole(req.Role) {
		return nil, apperror.Forbidden("Role is not available for this account: " + string(req.Role))
	}

	active := domain.MapRoleToUserType(string(req.Role))
	switching := true
	updated := store.MergePatch(domain.DraftPatch{
		IsSwitchingRole: &switching,
		ActiveRole:      &active,
	})

	return &domain.RoleSwitchResult{
		Draft:      updated,
		RedirectTo: domain.DefaultRouteFor(req.Role),
	}, nil
}

func (u *sessionUsecase) CompleteRoleSwitch(store domain.DraftStore) (*domain.DraftResponse, error) {
	if err := requireHydrated(store); err != nil {
		return nil, err
	}
	switching := false
	return snapshot(store, store.MergePatch(domain.DraftPatch{IsSwitchingRole: &switching})), nil
}
