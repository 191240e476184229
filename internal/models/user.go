package models

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Role represents a user's access level
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
)

// ValidRoles lists every role the system accepts
var ValidRoles = []Role{RoleCustomer, RoleAdmin, RoleManager, RoleStaff}

// IsValidRole checks whether a role string is one of the known roles
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if string(r) == role {
			return true
		}
	}
	return false
}

// User represents a registered account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the display name used in admin search
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SignupRequest represents the request to create an account
type SignupRequest struct {
	Email           string  `json:"email" binding:"required"`
	Password        string  `json:"password" binding:"required"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
	FirstName       string  `json:"first_name" binding:"required"`
	LastName        string  `json:"last_name" binding:"required"`
	Phone           *string `json:"phone,omitempty"`
}

// Validate validates the signup request
func (r *SignupRequest) Validate() error {
	if !strings.Contains(r.Email, "@") || len(r.Email) < 5 {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if len(r.FirstName) < 2 {
		return &ValidationError{Field: "first_name", Message: "First name must be at least 2 characters"}
	}
	if len(r.LastName) < 2 {
		return &ValidationError{Field: "last_name", Message: "Last name must be at least 2 characters"}
	}
	if err := validatePassword(r.Password); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords don't match"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasUpper {
		return &ValidationError{Field: "password", Message: "Password must contain at least one uppercase letter"}
	}
	if !hasLower {
		return &ValidationError{Field: "password", Message: "Password must contain at least one lowercase letter"}
	}
	if !hasDigit {
		return &ValidationError{Field: "password", Message: "Password must contain at least one number"}
	}
	return nil
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	if !strings.Contains(r.Email, "@") {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	}
	return nil
}

// UpdateProfileRequest represents a profile edit
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Validate validates the profile update request
func (r *UpdateProfileRequest) Validate() error {
	if r.FirstName != nil && len(*r.FirstName) < 2 {
		return &ValidationError{Field: "first_name", Message: "First name must be at least 2 characters"}
	}
	if r.LastName != nil && len(*r.LastName) < 2 {
		return &ValidationError{Field: "last_name", Message: "Last name must be at least 2 characters"}
	}
	return nil
}

// UpdateUserRequest represents an admin edit of another user's role or status
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Validate validates the admin user update request
func (r *UpdateUserRequest) Validate() error {
	if r.Role == nil && r.IsActive == nil {
		return errors.New("at least one of role or is_active is required")
	}
	if r.Role != nil && !IsValidRole(*r.Role) {
		return &ValidationError{Field: "role", Message: "Invalid role"}
	}
	return nil
}

// AuthResponse is returned on successful login, signup or token refresh
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
