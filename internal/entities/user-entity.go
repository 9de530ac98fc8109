package entities

import "reservation-system/pkg/types"

const (
	RoleBorrower   = "borrower"
	RoleStaff      = "staff"
	RoleSuperadmin = "superadmin"
)

type User struct {
	ID           uint64 `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`

	types.BaseEntity
}
