package models

import "time"

// Role is a staff role on the admin panel.
type Role string

const (
	RoleFullAdmin      Role = "full-admin"
	RoleAccountManager Role = "account-manager"
	RoleProduction     Role = "production"
)

// IsValidRole checks the role against the known staff roles.
func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleFullAdmin, RoleAccountManager, RoleProduction:
		return true
	}
	return false
}

// AdminUser is a staff account.
type AdminUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor identifies who performs an order operation.
type Actor struct {
	Name string
	Role Role
}

// Credentials for login request
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
