package models

import "strings"

// Role authorizes access to role-scoped routes. The zero value means no role
// has been assigned yet.
type Role string

const (
	RoleUnset    Role = ""
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// ParseRole normalizes s and reports whether it names a known, assignable role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return r, true
	default:
		return RoleUnset, false
	}
}

// RoleFlags is the one-hot view of a role returned by the own-role lookup.
type RoleFlags struct {
	Admin    bool `json:"admin"`
	HR       bool `json:"hr"`
	Employee bool `json:"employee"`
}

// FlagsFor expands r into RoleFlags. Unknown roles produce all false.
func FlagsFor(r Role) RoleFlags {
	return RoleFlags{
		Admin:    r == RoleAdmin,
		HR:       r == RoleHR,
		Employee: r == RoleEmployee,
	}
}
