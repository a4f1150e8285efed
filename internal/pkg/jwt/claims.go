// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the session token claims
type Claims struct {
	IdentityID int64  `json:"identity_id"`
	Role       string `json:"role"`
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// HasRole checks if the claims carry the given role
func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

// IsAdmin checks if the token was issued to an admin
func (c *Claims) IsAdmin() bool {
	return c.HasRole("admin")
}
