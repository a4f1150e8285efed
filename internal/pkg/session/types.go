// internal/pkg/session/types.go
package session

import (
	"time"

	"tour-admin/internal/domain/auth"
)

// Session is a decoded, verified session token.
type Session struct {
	JTI       string        `json:"jti"`
	Identity  auth.Identity `json:"identity"`
	IssuedAt  time.Time     `json:"issued_at"`
	ExpiresAt time.Time     `json:"expires_at"`
	// Token is the raw signed value; the live feed re-verifies it.
	Token string `json:"-"`
}

// IsAdmin reports whether the session grants dashboard access.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Identity.Role.Can(auth.CapabilityDashboard)
}

// Issued is the result of issuing a session.
type Issued struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}
