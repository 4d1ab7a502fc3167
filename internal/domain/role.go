package domain

// ============================================================================
// Role names (server-supplied strings)
// ============================================================================

// RoleName is the role string used by the identity service and route guards.
type RoleName string

const (
	RoleTalent    RoleName = "talent"
	RoleRecruiter RoleName = "recruiter"
	RoleOrgAdmin  RoleName = "org_admin"
)

// ValidRoleNames returns all known role names
func ValidRoleNames() []RoleName {
	return []RoleName{RoleTalent, RoleRecruiter, RoleOrgAdmin}
}

// IsValid checks if the role name is known
func (r RoleName) IsValid() bool {
	for _, valid := range ValidRoleNames() {
		if r == valid {
			return true
		}
	}
	return false
}

// ============================================================================
// User type (internal active-role enum)
// ============================================================================

// UserType is the active role a session operates as. The zero value means
// no role has been chosen yet.
type UserType string

const (
	UserTypeNone                 UserType = ""
	UserTypeTalent               UserType = "TALENT"
	UserTypeIndependentRecruiter UserType = "INDEPENDENT_RECRUITER"
	UserTypeOrganisation         UserType = "ORGANISATION"
)

// IsSet reports whether the user type is one of the known variants.
func (t UserType) IsSet() bool {
	switch t {
	case UserTypeTalent, UserTypeIndependentRecruiter, UserTypeOrganisation:
		return true
	}
	return false
}

// RoleName returns the role string for the user type, or "" when unset.
func (t UserType) RoleName() RoleName {
	switch t {
	case UserTypeTalent:
		return RoleTalent
	case UserTypeIndependentRecruiter:
		return RoleRecruiter
	case UserTypeOrganisation:
		return RoleOrgAdmin
	}
	return ""
}

// UnmarshalText decodes a persisted user type. Unknown values decode to
// UserTypeNone so a corrupted record reads as "no role".
func (t *UserType) UnmarshalText(text []byte) error {
	v := UserType(text)
	if !v.IsSet() {
		*t = UserTypeNone
		return nil
	}
	*t = v
	return nil
}

// ParseRole maps a server-supplied role string to the internal user type.
// ok is false for unrecognised input.
func ParseRole(role string) (t UserType, ok bool) {
	switch RoleName(role) {
	case RoleTalent:
		return UserTypeTalent, true
	case RoleRecruiter:
		return UserTypeIndependentRecruiter, true
	case RoleOrgAdmin:
		return UserTypeOrganisation, true
	}
	return UserTypeTalent, false
}

// MapRoleToUserType is ParseRole with the talent fallback for unrecognised
// input.
func MapRoleToUserType(role string) UserType {
	t, _ := ParseRole(role)
	return t
}
