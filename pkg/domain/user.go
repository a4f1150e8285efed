package domain

// User is a customer account held by the backend.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserActiveUpdate toggles a user's active flag; it is the only user update
// the dashboard sends.
type UserActiveUpdate struct {
	IsActive bool `json:"isActive"`
}
