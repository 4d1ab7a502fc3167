package domain

import (
	"context"
	"errors"
)

// ErrIdentityRejected is returned by an IdentityClient when the upstream
// service refuses the token.
var ErrIdentityRejected = errors.New("identity: token rejected")

// IdentityDocument is the user/session document returned by the upstream
// identity endpoint. Absent fields decode to nil and leave the draft alone.
type IdentityDocument struct {
	ID                  *string  `json:"id"`
	ActiveRole          *string  `json:"activeRole"`
	Roles               []string `json:"roles"`
	Email               *string  `json:"email"`
	FirstName           *string  `json:"firstName"`
	LastName            *string  `json:"lastName"`
	Phone               *string  `json:"phoneNumber"`
	Location            *string  `json:"location"`
	OrganizationName    *string  `json:"organizationName"`
	OrganizationWebsite *string  `json:"organizationWebsite"`
	OrganizationSize    *string  `json:"organizationSize"`
	Industry            *string  `json:"industry"`
	JobTitle            *string  `json:"jobTitle"`
	CompanyName         *string  `json:"companyName"`
	LinkedInURL         *string  `json:"linkedinUrl"`
	Headline            *string  `json:"headline"`
}

// ToDraftPatch maps the identity document onto draft fields. The active role
// goes through MapRoleToUserType; unknown entries in roles are dropped.
func (doc IdentityDocument) ToDraftPatch() DraftPatch {
	patch := DraftPatch{
		ID:                  doc.ID,
		Email:               doc.Email,
		FirstName:           doc.FirstName,
		LastName:            doc.LastName,
		Phone:               doc.Phone,
		Location:            doc.Location,
		OrganisationName:    doc.OrganizationName,
		OrganisationWebsite: doc.OrganizationWebsite,
		OrganisationSize:    doc.OrganizationSize,
		Industry:            doc.Industry,
		JobTitle:            doc.JobTitle,
		CompanyName:         doc.CompanyName,
		LinkedInURL:         doc.LinkedInURL,
		Headline:            doc.Headline,
	}

	if doc.ActiveRole != nil {
		active := MapRoleToUserType(*doc.ActiveRole)
		patch.ActiveRole = &active
	}

	if doc.Roles != nil {
		roles := make([]RoleName, 0, len(doc.Roles))
		for _, r := range doc.Roles {
			role := RoleName(r)
			if !role.IsValid() {
				continue
			}
			if !containsRole(roles, role) {
				roles = append(roles, role)
			}
		}
		patch.AvailableRoles = &roles
	}

	return patch
}

// UnknownRoles lists the role strings in the document that ToDraftPatch
// could not map: an unrecognised active role (which falls back to talent)
// and dropped entries in roles.
func (doc IdentityDocument) UnknownRoles() []string {
	var unknown []string
	if doc.ActiveRole != nil {
		if _, ok := ParseRole(*doc.ActiveRole); !ok {
			unknown = append(unknown, *doc.ActiveRole)
		}
	}
	for _, r := range doc.Roles {
		if !RoleName(r).IsValid() {
			unknown = append(unknown, r)
		}
	}
	return unknown
}

func containsRole(roles []RoleName, role RoleName) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// IdentityClient fetches the identity document for a session token.
type IdentityClient interface {
	FetchIdentity(ctx context.Context, token string) (*IdentityDocument, error)
}
