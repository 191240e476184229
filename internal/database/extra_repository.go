package database

import (
	"database/sql"
	"fmt"

	"github.com/azurestay/booking-backend/internal/models"
)

// ExtraRepository handles add-on catalog database operations
type ExtraRepository struct {
	db DB
}

// NewExtraRepository creates a new extra repository
func NewExtraRepository(db DB) *ExtraRepository {
	return &ExtraRepository{
		db: db,
	}
}

// GetAvailableExtras returns every add-on currently offered
func (r *ExtraRepository) GetAvailableExtras() ([]models.Extra, error) {
	var extras []models.Extra
	query := `
		SELECT id, name, description, price, category, available
		FROM extras
		WHERE available = TRUE
		ORDER BY name
	`
	if err := r.db.Select(&extras, query); err != nil {
		return nil, fmt.Errorf("failed to list extras: %w", err)
	}
	return extras, nil
}

// GetExtraByID retrieves an add-on by ID
func (r *ExtraRepository) GetExtraByID(id string) (*models.Extra, error) {
	var extra models.Extra
	query := `
		SELECT id, name, description, price, category, available
		FROM extras
		WHERE id = $1
	`
	if err := r.db.Get(&extra, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get extra: %w", err)
	}
	return &extra, nil
}

// GetExtrasByCategory returns available add-ons in a category
func (r *ExtraRepository) GetExtrasByCategory(category string) ([]models.Extra, error) {
	var extras []models.Extra
	query := `
		SELECT id, name, description, price, category, available
		FROM extras
		WHERE category = $1 AND available = TRUE
		ORDER BY name
	`
	if err := r.db.Select(&extras, query, category); err != nil {
		return nil, fmt.Errorf("failed to list extras by category: %w", err)
	}
	return extras, nil
}
