package model

// Role classifies a user account into one of the fixed festival staff
// positions.  Roles are a closed enumeration: values outside this set are
// rejected at the boundary (ParseRole) so route guards can match on the
// constants without worrying about free-form strings.
type Role string

const (
	RoleAdmin             Role = "admin"              // manages user accounts
	RoleInspectionManager Role = "inspection_manager" // registers competition documentaries
	RoleProductionManager Role = "production_manager" // schedules and publishes screenings
	RoleJuryPresident     Role = "jury_president"     // collects jury scores
	RoleJuryMember        Role = "jury_member"        // read-only staff access
)

// AllRoles lists every valid role.  Used for validation and by the admin
// user form.
func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleInspectionManager,
		RoleProductionManager,
		RoleJuryPresident,
		RoleJuryMember,
	}
}

// ParseRole maps a raw string onto the closed enumeration.  The boolean is
// false when the input names no known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleInspectionManager, RoleProductionManager, RoleJuryPresident, RoleJuryMember:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }
