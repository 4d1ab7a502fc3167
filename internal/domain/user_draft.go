package domain

import (
	"context"
	"errors"
	"time"
)

// DraftKeyPrefix namespaces persisted drafts. The full key is the prefix
// followed by the session id.
const DraftKeyPrefix = "create-user-store:"

// DraftKey returns the durable storage key for a session.
func DraftKey(sessionID string) string {
	return DraftKeyPrefix + sessionID
}

// ErrDraftNotFound is returned by repositories when no record exists for a key.
var ErrDraftNotFound = errors.New("draft not found")

// ============================================================================
// UserDraft
// ============================================================================

// UserDraft is the single persisted record describing a session and its
// onboarding progress.
type UserDraft struct {
	ID              string     `json:"id,omitempty"`
	ActiveRole      UserType   `json:"activeRole,omitempty" swaggertype:"string" enums:"TALENT,INDEPENDENT_RECRUITER,ORGANISATION"`
	AvailableRoles  []RoleName `json:"availableRoles"`
	Token           *string    `json:"token"`
	IsSwitchingRole bool       `json:"isSwitchingRole"`
	CurrentStep     int        `json:"currentStep"`

	// Profile fields, free-form
	FirstName           string   `json:"first_name,omitempty"`
	LastName            string   `json:"last_name,omitempty"`
	Email               string   `json:"email,omitempty"`
	Phone               string   `json:"phone,omitempty"`
	Location            string   `json:"location,omitempty"`
	OrganisationName    string   `json:"organisation_name,omitempty"`
	OrganisationWebsite string   `json:"organisation_website,omitempty"`
	OrganisationSize    string   `json:"organisation_size,omitempty"`
	Industry            string   `json:"industry,omitempty"`
	JobTitle            string   `json:"job_title,omitempty"`
	CompanyName         string   `json:"company_name,omitempty"`
	LinkedInURL         string   `json:"linkedin_url,omitempty"`
	CVURL               string   `json:"cv_url,omitempty"`
	Headline            string   `json:"headline,omitempty"`
	Skills              []string `json:"skills,omitempty"`

	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// DefaultUserDraft returns the record a new session starts with and a
// logout restores.
func DefaultUserDraft() UserDraft {
	return UserDraft{
		AvailableRoles: []RoleName{},
	}
}

// Clone returns a deep copy so snapshots never share slices with the store.
func (d UserDraft) Clone() UserDraft {
	out := d
	if d.AvailableRoles != nil {
		out.AvailableRoles = append([]RoleName{}, d.AvailableRoles...)
	}
	if d.Skills != nil {
		out.Skills = append([]string{}, d.Skills...)
	}
	if d.Token != nil {
		tok := *d.Token
		out.Token = &tok
	}
	return out
}

// HasToken reports whether a session credential is present.
func (d UserDraft) HasToken() bool {
	return d.Token != nil && *d.Token != ""
}

// TokenValue returns the token or "" when absent.
func (d UserDraft) TokenValue() string {
	if d.Token == nil {
		return ""
	}
	return *d.Token
}

// HasRole reports whether the identity may act as the given role.
func (d UserDraft) HasRole(role RoleName) bool {
	for _, r := range d.AvailableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ============================================================================
// Merge-patch
// ============================================================================

// Nullable is a patch field that can be left alone, set, or explicitly
// cleared.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some builds a Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null builds a Nullable that clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// DraftPatch names the fields to overwrite. Nil fields are left untouched.
type DraftPatch struct {
	ID              *string
	ActiveRole      *UserType
	AvailableRoles  *[]RoleName
	Token           Nullable[string]
	IsSwitchingRole *bool
	CurrentStep     *int

	FirstName           *string
	LastName            *string
	Email               *string
	Phone               *string
	Location            *string
	OrganisationName    *string
	OrganisationWebsite *string
	OrganisationSize    *string
	Industry            *string
	JobTitle            *string
	CompanyName         *string
	LinkedInURL         *string
	CVURL               *string
	Headline            *string
	Skills              *[]string
}

// Apply shallow-merges p into d and returns the result. d is not modified.
func (d UserDraft) Apply(p DraftPatch) UserDraft {
	out := d.Clone()

	setString(&out.ID, p.ID)
	if p.ActiveRole != nil {
		out.ActiveRole = *p.ActiveRole
	}
	if p.AvailableRoles != nil {
		out.AvailableRoles = append([]RoleName{}, (*p.AvailableRoles)...)
	}
	if p.Token.Set {
		out.Token = nil
		if p.Token.Value != nil {
			tok := *p.Token.Value
			out.Token = &tok
		}
	}
	if p.IsSwitchingRole != nil {
		out.IsSwitchingRole = *p.IsSwitchingRole
	}
	if p.CurrentStep != nil {
		out.CurrentStep = *p.CurrentStep
	}

	setString(&out.FirstName, p.FirstName)
	setString(&out.LastName, p.LastName)
	setString(&out.Email, p.Email)
	setString(&out.Phone, p.Phone)
	setString(&out.Location, p.Location)
	setString(&out.OrganisationName, p.OrganisationName)
	setString(&out.OrganisationWebsite, p.OrganisationWebsite)
	setString(&out.OrganisationSize, p.OrganisationSize)
	setString(&out.Industry, p.Industry)
	setString(&out.JobTitle, p.JobTitle)
	setString(&out.CompanyName, p.CompanyName)
	setString(&out.LinkedInURL, p.LinkedInURL)
	setString(&out.CVURL, p.CVURL)
	setString(&out.Headline, p.Headline)
	if p.Skills != nil {
		out.Skills = append([]string{}, (*p.Skills)...)
	}

	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// ProfilePatch is the client-editable subset of the draft. Role, token and
// step fields change only through their dedicated operations.
type ProfilePatch struct {
	FirstName           *string   `json:"first_name,omitempty" validate:"omitempty,max=100,valid_name,no_emoji"`
	LastName            *string   `json:"last_name,omitempty" validate:"omitempty,max=100,valid_name,no_emoji"`
	Email               *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone               *string   `json:"phone,omitempty" validate:"omitempty,valid_phone"`
	Location            *string   `json:"location,omitempty" validate:"omitempty,max=120,no_emoji"`
	OrganisationName    *string   `json:"organisation_name,omitempty" validate:"omitempty,max=200,valid_name"`
	OrganisationWebsite *string   `json:"organisation_website,omitempty" validate:"omitempty,url"`
	OrganisationSize    *string   `json:"organisation_size,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-1000 1000+"`
	Industry            *string   `json:"industry,omitempty" validate:"omitempty,max=100"`
	JobTitle            *string   `json:"job_title,omitempty" validate:"omitempty,max=100,no_emoji"`
	CompanyName         *string   `json:"company_name,omitempty" validate:"omitempty,max=200,valid_name"`
	LinkedInURL         *string   `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	CVURL               *string   `json:"cv_url,omitempty" validate:"omitempty,url"`
	Headline            *string   `json:"headline,omitempty" validate:"omitempty,max=160,no_emoji"`
	Skills              *[]string `json:"skills,omitempty" validate:"omitempty,max=50,dive,min=1,max=60"`
	// AvailableRoles may only be set before an identity is attached
	AvailableRoles *[]RoleName `json:"availableRoles,omitempty" validate:"omitempty,max=3,dive,oneof=talent recruiter org_admin"`
}

// ToDraftPatch converts the profile fields into a draft patch.
func (p ProfilePatch) ToDraftPatch() DraftPatch {
	return DraftPatch{
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		Email:               p.Email,
		Phone:               p.Phone,
		Location:            p.Location,
		OrganisationName:    p.OrganisationName,
		OrganisationWebsite: p.OrganisationWebsite,
		OrganisationSize:    p.OrganisationSize,
		Industry:            p.Industry,
		JobTitle:            p.JobTitle,
		CompanyName:         p.CompanyName,
		LinkedInURL:         p.LinkedInURL,
		CVURL:               p.CVURL,
		Headline:            p.Headline,
		Skills:              p.Skills,
		AvailableRoles:      p.AvailableRoles,
	}
}

// ============================================================================
// Store & Repository Interfaces
// ============================================================================

// DraftStore is a session's state container.
type DraftStore interface {
	Get() UserDraft
	MergePatch(p DraftPatch) UserDraft
	Reset() UserDraft
	HasHydrated() bool
	// AwaitHydration blocks until hydration completes, grace elapses or ctx
	// is done. It reports whether the store is hydrated.
	AwaitHydration(ctx context.Context, grace time.Duration) bool
}

// DraftRepository is the durable storage behind a DraftStore.
type DraftRepository interface {
	// Load returns ErrDraftNotFound when the key has no record.
	Load(ctx context.Context, key string) (*UserDraft, error)
	Save(ctx context.Context, key string, draft UserDraft) error
}
