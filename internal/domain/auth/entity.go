// internal/domain/auth/entity.go
package auth

import "strings"

// Role is the closed set of roles a session may carry.
type Role string

const (
	RoleUnknown  Role = ""
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Capability is something a role may be allowed to do.
type Capability string

const (
	CapabilityDashboard Capability = "dashboard"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin:    {CapabilityDashboard},
	RoleCustomer: nil,
}

// ParseRole maps a raw role string onto the enumeration. Anything unrecognised
// becomes RoleUnknown, which holds no capabilities.
func ParseRole(s string) Role {
	switch Role(strings.TrimSpace(s)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleCustomer:
		return RoleCustomer
	default:
		return RoleUnknown
	}
}

// Valid reports whether r is a member of the enumeration.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can checks whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Identity is the verified account a session is issued for. It is immutable
// for the lifetime of the session.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// AdminAccount is a row of the users table as seen by the directory verifier.
type AdminAccount struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password"`
	Role         string `json:"role" db:"role"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}
