package entities

import (
	"strings"
	"time"

	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// Role is the access level of a user account
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole parses a role value, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return r, nil
	}
	return "", apperrors.NewValidationError("invalid role: " + s)
}

// UserStatus represents whether an account may sign in
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// ParseUserStatus parses a user status value, case-insensitively.
func ParseUserStatus(s string) (UserStatus, error) {
	switch st := UserStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return st, nil
	}
	return "", apperrors.NewValidationError("invalid user status: " + s)
}

// User represents a login account
type User struct {
	ID           int64      `json:"user_id" db:"user_id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// Field exposes the user to in-memory predicates and orderings.
func (u User) Field(key string) any {
	switch key {
	case "user_id":
		return u.ID
	case "username":
		return u.Username
	case "email":
		return u.Email
	case "role":
		return string(u.Role)
	case "user_status":
		return string(u.Status)
	case "user_created_at":
		return u.CreatedAt
	}
	return nil
}

// UserInput carries the writable fields of an account. Password is only
// required on create.
type UserInput struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin doctor patient"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// AuthContext identifies the caller of a service operation. ProfileID is the
// doctor or patient row linked to the account, zero for admins.
type AuthContext struct {
	UserID    int64 `json:"user_id"`
	Role      Role  `json:"role"`
	ProfileID int64 `json:"profile_id,omitempty"`
}

// IsAdmin reports whether the caller is an administrator.
func (a AuthContext) IsAdmin() bool { return a.Role == RoleAdmin }

// IsDoctor reports whether the caller is a doctor.
func (a AuthContext) IsDoctor() bool { return a.Role == RoleDoctor }

// IsPatient reports whether the caller is a patient.
func (a AuthContext) IsPatient() bool { return a.Role == RolePatient }
