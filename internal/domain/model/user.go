package model

import "time"

// Role describes what a user is allowed to do.
type Role string

const (
	RoleBuyer       Role = "buyer"
	RoleSalesperson Role = "salesperson"
	RoleAdmin       Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSalesperson, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account: buyer, salesperson or admin.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
