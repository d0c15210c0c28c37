package entity

import "fmt"

type UserRole string

const (
	RoleBuyer  UserRole = "buyer"
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)

// ParseUserRole accepts only the roles a user may pick at signup.
// Admins are provisioned out of band.
func ParseUserRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case RoleBuyer, RoleSeller:
		return r, nil
	default:
		return "", fmt.Errorf("role must be 'buyer' or 'seller', got %q", s)
	}
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	FullName     string   `db:"full_name"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
