package database

import (
	"database/sql"
	"fmt"

	"github.com/azurestay/booking-backend/internal/models"
)

// PromoCodeRepository handles promo code database operations
type PromoCodeRepository struct {
	db DB
}

// NewPromoCodeRepository creates a new promo code repository
func NewPromoCodeRepository(db DB) *PromoCodeRepository {
	return &PromoCodeRepository{
		db: db,
	}
}

// GetPromoCodeByCode retrieves a promo code; lookup is case-insensitive
func (r *PromoCodeRepository) GetPromoCodeByCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	query := `
		SELECT code, description, discount_type, value, active, end_date, created_at
		FROM promo_codes
		WHERE UPPER(code) = UPPER($1)
	`
	if err := r.db.Get(&promo, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &promo, nil
}

// GetActivePromoCodes returns codes that are active and not yet expired
func (r *PromoCodeRepository) GetActivePromoCodes() ([]models.PromoCode, error) {
	var promos []models.PromoCode
	query := `
		SELECT code, description, discount_type, value, active, end_date, created_at
		FROM promo_codes
		WHERE active = TRUE AND end_date >= NOW()
		ORDER BY created_at DESC
	`
	if err := r.db.Select(&promos, query); err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	return promos, nil
}
