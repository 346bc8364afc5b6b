// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// Roles form an ordered hierarchy: user < admin < superadmin.
type Role string

const (
	// RoleUser indicates a regular shopper role.
	RoleUser Role = "user"
	// RoleAdmin indicates a store administrator role.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin indicates the top-level administrator role.
	RoleSuperAdmin Role = "superadmin"
)

// roleRank maps each role to its position in the hierarchy.
var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]

	return ok
}

// AtLeast reports whether the role sits at or above the required role in the
// hierarchy. This is the single comparison used by every role-gated operation.
func (r Role) AtLeast(required Role) bool {
	return roleRank[r] >= roleRank[required]
}

// RoleFromString converts a string to a Role, returning RoleUser for unknown values.
func RoleFromString(s string) Role {
	role := Role(s)
	if !role.IsValid() {
		return RoleUser
	}

	return role
}
