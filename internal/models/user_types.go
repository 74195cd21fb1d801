package models

import "time"

// Operator roles. Managers run the catalog; administrators can also create
// manager accounts.
const (
	RoleManager       = "manager"
	RoleAdministrator = "administrator"
)

// User is a back-office operator account. PasswordHash never leaves the API.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateManagerInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
