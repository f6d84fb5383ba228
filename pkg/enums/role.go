package enums

import "fmt"

// Role is the account-level role carried in the access token.
type Role string

const (
	// RoleNone marks the absence of a usable role claim. For gating purposes
	// it is equivalent to being unauthenticated.
	RoleNone Role = ""

	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

var validRoles = []Role{
	RoleCustomer,
	RoleOwner,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// In reports whether the role is a member of the allow-set.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return RoleNone, fmt.Errorf("invalid role %q", value)
}
