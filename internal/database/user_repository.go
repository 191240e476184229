package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
)

// UserRepository handles user database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateUser creates a new account. Signup always produces a customer; role
// changes go through UpdateRoleStatus.
func (r *UserRepository) CreateUser(email, passwordHash, firstName, lastName string, phone *string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Role:         models.RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, phone,
			role, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Role,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsDuplicate(err) {
			return nil, &DuplicateError{Message: "An account with this email already exists"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, password_hash, first_name, last_name, phone,
		       role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.Get(&user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, password_hash, first_name, last_name, phone,
		       role, is_active, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	if err := r.db.Get(&user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetAllUsers returns every account, newest first
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	var users []models.User
	query := `
		SELECT id, email, password_hash, first_name, last_name, phone,
		       role, is_active, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`
	if err := r.db.Select(&users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUsersByRole returns accounts holding the given role, newest first
func (r *UserRepository) GetUsersByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	query := `
		SELECT id, email, password_hash, first_name, last_name, phone,
		       role, is_active, created_at, updated_at
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC
	`
	if err := r.db.Select(&users, query, role); err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

// UpdateProfile updates the caller-editable profile fields
func (r *UserRepository) UpdateProfile(id uuid.UUID, firstName, lastName *string, phone *string) (*models.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    phone = COALESCE($4, phone),
		    updated_at = $5
		WHERE id = $1
	`
	result, err := r.db.Exec(query, id, firstName, lastName, phone, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetUserByID(id)
}

// UpdateRoleStatus applies an admin role or status change
func (r *UserRepository) UpdateRoleStatus(id uuid.UUID, role *string, isActive *bool) (*models.User, error) {
	query := `
		UPDATE users
		SET role = COALESCE($2, role),
		    is_active = COALESCE($3, is_active),
		    updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.Exec(query, id, role, isActive, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return r.GetUserByID(id)
}

// CountUsers returns the total number of accounts
func (r *UserRepository) CountUsers() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CountActiveUsers returns the number of accounts that are not disabled
func (r *UserRepository) CountActiveUsers() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM users WHERE is_active = true`); err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}

// CountUsersByRole returns the number of accounts holding a role
func (r *UserRepository) CountUsersByRole(role models.Role) (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM users WHERE role = $1`, role); err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
