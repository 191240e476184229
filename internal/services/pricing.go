package services

import (
	"time"

	"github.com/azurestay/booking-backend/internal/config"
	"github.com/azurestay/booking-backend/internal/models"
)

// PriceBreakdown is the full decomposition of a booking's price. Values are
// exact decimals in currency units; rendering (symbol, 2-decimal rounding)
// is a presentation concern handled elsewhere.
type PriceBreakdown struct {
	Nights         int     `json:"nights"`
	RoomSubtotal   float64 `json:"room_subtotal"`
	ExtrasSubtotal float64 `json:"extras_subtotal"`
	Discount       float64 `json:"discount"`
	Subtotal       float64 `json:"subtotal"`
	Taxes          float64 `json:"taxes"`
	Fees           float64 `json:"fees"`
	Total          float64 `json:"total"`
}

// PricingEngine computes booking price breakdowns. It is pure: no I/O, no
// state beyond the configured constants, deterministic for a given input.
type PricingEngine struct {
	taxRate    float64
	serviceFee float64
}

// NewPricingEngine creates a pricing engine from configuration
func NewPricingEngine(cfg config.PricingConfig) *PricingEngine {
	return &PricingEngine{
		taxRate:    cfg.TaxRate,
		serviceFee: cfg.ServiceFee,
	}
}

// Nights returns the whole-day length of a stay. A malformed, equal or
// inverted date pair yields 0; zero nights means the stay is invalid and
// must be rejected upstream, it is never clamped to 1.
func Nights(checkIn, checkOut string) int {
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return 0
	}
	diff := out.Sub(in)
	if diff <= 0 {
		return 0
	}
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// Quote computes the breakdown for a nightly price, stay length, extras and
// an absolute discount amount. The discount applies to the pre-tax subtotal;
// taxes are charged on the discounted subtotal and the service fee is flat,
// independent of stay length.
func (e *PricingEngine) Quote(nightlyPrice float64, nights int, extras []models.BookingExtra, discount float64) PriceBreakdown {
	roomSubtotal := nightlyPrice * float64(nights)

	var extrasSubtotal float64
	for _, extra := range extras {
		extrasSubtotal += extra.Price * float64(extra.Quantity)
	}

	subtotal := roomSubtotal + extrasSubtotal - discount
	if subtotal < 0 {
		subtotal = 0
	}
	taxes := subtotal * e.taxRate

	return PriceBreakdown{
		Nights:         nights,
		RoomSubtotal:   roomSubtotal,
		ExtrasSubtotal: extrasSubtotal,
		Discount:       discount,
		Subtotal:       subtotal,
		Taxes:          taxes,
		Fees:           e.serviceFee,
		Total:          subtotal + taxes + e.serviceFee,
	}
}

// QuoteDraft computes the breakdown for a draft. The draft's discount slot
// holds the absolute amount resolved when the promo code was applied;
// checkout re-resolves it against the final subtotal.
func (e *PricingEngine) QuoteDraft(draft *models.BookingDraft) PriceBreakdown {
	if draft.SelectedRoom == nil {
		return PriceBreakdown{Fees: e.serviceFee, Total: e.serviceFee}
	}
	nights := Nights(draft.CheckIn, draft.CheckOut)
	return e.Quote(draft.SelectedRoom.Price, nights, draft.Extras, draft.Discount)
}

// ResolveDiscount converts a promo code into an absolute discount amount
// against the given pre-discount subtotal.
func ResolveDiscount(promo *models.PromoCode, subtotal float64) float64 {
	if promo == nil {
		return 0
	}
	switch promo.DiscountType {
	case models.PromoDiscountPercent:
		return subtotal * promo.Value / 100
	case models.PromoDiscountAmount:
		return promo.Value
	}
	return 0
}
