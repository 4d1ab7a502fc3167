package domain_test

import (
	"encoding/json"
	"testing"

	"talent-onboarding-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityDocument_ToDraftPatch(t *testing.T) {
	raw := `{
		"id": "user-1",
		"activeRole": "org_admin",
		"roles": ["org_admin", "recruiter", "superuser", "recruiter"],
		"email": "ana@example.com",
		"organizationName": "Acme",
		"organizationWebsite": "https://acme.example",
		"phoneNumber": "+351900000000"
	}`

	var doc domain.IdentityDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	before := domain.DefaultUserDraft()
	before.FirstName = "Ana"
	before.Headline = "kept"

	d := before.Apply(doc.ToDraftPatch())

	assert.Equal(t, "user-1", d.ID)
	assert.Equal(t, domain.UserTypeOrganisation, d.ActiveRole)
	assert.Equal(t, []domain.RoleName{domain.RoleOrgAdmin, domain.RoleRecruiter}, d.AvailableRoles)
	assert.Equal(t, "Acme", d.OrganisationName)
	assert.Equal(t, "https://acme.example", d.OrganisationWebsite)
	assert.Equal(t, "+351900000000", d.Phone)
	assert.Equal(t, "Ana", d.FirstName, "absent fields stay untouched")
	assert.Equal(t, "kept", d.Headline)
}

func TestIdentityDocument_UnknownActiveRoleFallsBack(t *testing.T) {
	role := "superuser"
	p := domain.IdentityDocument{ActiveRole: &role}.ToDraftPatch()

	require.NotNil(t, p.ActiveRole)
	assert.Equal(t, domain.UserTypeTalent, *p.ActiveRole)
}

func TestIdentityDocument_UnknownRoles(t *testing.T) {
	role := "superuser"
	doc := domain.IdentityDocument{ActiveRole: &role, Roles: []string{"talent", "admin"}}

	assert.Equal(t, []string{"superuser", "admin"}, doc.UnknownRoles())
	assert.Equal(t, []domain.RoleName{domain.RoleTalent}, *doc.ToDraftPatch().AvailableRoles)

	known := "org_admin"
	assert.Empty(t, domain.IdentityDocument{ActiveRole: &known, Roles: []string{"org_admin"}}.UnknownRoles())
}

func TestIdentityDocument_EmptyLeavesDraftAlone(t *testing.T) {
	before := domain.DefaultUserDraft()
	before.Email = "ana@example.com"
	before.AvailableRoles = []domain.RoleName{domain.RoleTalent}

	after := before.Apply(domain.IdentityDocument{}.ToDraftPatch())

	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.AvailableRoles, after.AvailableRoles)
	assert.Equal(t, before.ActiveRole, after.ActiveRole)
}
