// internal/domain/auth/dto.go
package auth

import "time"

// LoginRequest is accepted from both the HTML form and JSON callers.
type LoginRequest struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	IPAddress string `json:"-" form:"-"`
	UserAgent string `json:"-" form:"-"`
}

// LoginResponse is returned to JSON callers after a successful login.
type LoginResponse struct {
	Redirect  string    `json:"redirect"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo minimal user information
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// NewUserInfo projects an identity for responses.
func NewUserInfo(id *Identity) UserInfo {
	return UserInfo{
		ID:    id.ID,
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
	}
}
