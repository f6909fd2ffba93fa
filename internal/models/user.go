package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleInvestor Role = "investor"
	RoleBuyer    Role = "buyer"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize in JSON
	Name         string     `json:"name" db:"name"`
	Role         Role       `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// UserUpdate carries the fields an admin may change on a user.
// Nil means unchanged.
type UserUpdate struct {
	Name   *string     `json:"name,omitempty"`
	Email  *string     `json:"email,omitempty"`
	Role   *Role       `json:"role,omitempty"`
	Status *UserStatus `json:"status,omitempty"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.Status == nil
}

// Diff returns the applied fields keyed by column name
func (u UserUpdate) Diff() map[string]interface{} {
	diff := make(map[string]interface{})
	if u.Name != nil {
		diff["name"] = *u.Name
	}
	if u.Email != nil {
		diff["email"] = *u.Email
	}
	if u.Role != nil {
		diff["role"] = string(*u.Role)
	}
	if u.Status != nil {
		diff["status"] = string(*u.Status)
	}
	return diff
}

// Apply copies the set fields onto user
func (u UserUpdate) Apply(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
	if u.Status != nil {
		user.Status = *u.Status
	}
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}
