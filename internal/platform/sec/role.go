// Copyright (c) 2026 marsAI. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleSuperAdmin manages every festival instance (CMS).
	RoleSuperAdmin UserRole = "superadmin"

	// RoleAdmin reviews submissions and curates the gallery of one festival.
	RoleAdmin UserRole = "admin"

	// RoleJury scores validated films of one festival.
	RoleJury UserRole = "jury"

	// RoleVisitor is the default role for self-registered accounts.
	RoleVisitor UserRole = "visitor"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleSuperAdmin:
		return 40
	case RoleAdmin:
		return 30
	case RoleJury:
		return 20
	case RoleVisitor:
		return 10
	default:
		return 0
	}
}
