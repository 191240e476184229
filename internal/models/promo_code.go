package models

import "time"

// PromoDiscountType distinguishes percentage discounts from absolute amounts
type PromoDiscountType string

const (
	PromoDiscountPercent PromoDiscountType = "percent"
	PromoDiscountAmount  PromoDiscountType = "amount"
)

// PromoCode represents a redeemable discount code
type PromoCode struct {
	Code         string            `json:"code" db:"code"`
	Description  string            `json:"description" db:"description"`
	DiscountType PromoDiscountType `json:"discount_type" db:"discount_type"`
	Value        float64           `json:"value" db:"value"`
	Active       bool              `json:"active" db:"active"`
	EndDate      time.Time         `json:"end_date" db:"end_date"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}

// IsRedeemable reports whether the code can currently be applied
func (p *PromoCode) IsRedeemable(now time.Time) bool {
	return p.Active && !p.EndDate.Before(now)
}

// ApplyPromoRequest represents the request to apply a promo code to a draft
type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}
