package services

import (
	"testing"

	"github.com/azurestay/booking-backend/internal/config"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestPricingEngine() *PricingEngine {
	return NewPricingEngine(config.PricingConfig{
		TaxRate:    0.10,
		ServiceFee: 25,
		Currency:   "USD",
	})
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"three nights", "2026-09-01", "2026-09-04", 3},
		{"one night", "2026-09-01", "2026-09-02", 1},
		{"same day", "2026-09-01", "2026-09-01", 0},
		{"inverted", "2026-09-04", "2026-09-01", 0},
		{"malformed check-in", "not-a-date", "2026-09-04", 0},
		{"malformed check-out", "2026-09-01", "", 0},
		{"across month boundary", "2026-08-30", "2026-09-02", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestQuote_RoomWithExtras(t *testing.T) {
	engine := newTestPricingEngine()

	// 100/night for 3 nights plus a 20 extra at quantity 2
	extras := []models.BookingExtra{
		{ID: "breakfast", Name: "Breakfast", Price: 20, Quantity: 2},
	}

	quote := engine.Quote(100, 3, extras, 0)

	assert.Equal(t, 300.0, quote.RoomSubtotal)
	assert.Equal(t, 40.0, quote.ExtrasSubtotal)
	assert.Equal(t, 340.0, quote.Subtotal)
	assert.Equal(t, 34.0, quote.Taxes)
	assert.Equal(t, 25.0, quote.Fees)
	assert.Equal(t, 399.0, quote.Total)
}

func TestQuote_ExtrasQuantityCounts(t *testing.T) {
	engine := newTestPricingEngine()

	one := engine.Quote(0, 0, []models.BookingExtra{{ID: "spa", Price: 110, Quantity: 1}}, 0)
	three := engine.Quote(0, 0, []models.BookingExtra{{ID: "spa", Price: 110, Quantity: 3}}, 0)

	assert.Equal(t, 110.0, one.ExtrasSubtotal)
	assert.Equal(t, 330.0, three.ExtrasSubtotal)
}

func TestQuote_DiscountAppliesBeforeTax(t *testing.T) {
	engine := newTestPricingEngine()

	quote := engine.Quote(100, 2, nil, 50)

	assert.Equal(t, 150.0, quote.Subtotal)
	assert.Equal(t, 15.0, quote.Taxes)
	assert.Equal(t, 190.0, quote.Total)
}

func TestQuote_DiscountCannotGoNegative(t *testing.T) {
	engine := newTestPricingEngine()

	quote := engine.Quote(50, 1, nil, 500)

	assert.Equal(t, 0.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Taxes)
	assert.Equal(t, 25.0, quote.Total)
}

func TestQuote_ServiceFeeIsFlat(t *testing.T) {
	engine := newTestPricingEngine()

	short := engine.Quote(100, 1, nil, 0)
	long := engine.Quote(100, 14, nil, 0)

	assert.Equal(t, 25.0, short.Fees)
	assert.Equal(t, 25.0, long.Fees)
}

func TestQuoteDraft(t *testing.T) {
	engine := newTestPricingEngine()

	t.Run("empty draft only carries the fee", func(t *testing.T) {
		quote := engine.QuoteDraft(models.NewBookingDraft())
		assert.Equal(t, 0.0, quote.Subtotal)
		assert.Equal(t, 25.0, quote.Total)
	})

	t.Run("full draft", func(t *testing.T) {
		draft := models.NewBookingDraft()
		draft.SelectRoom(&models.Room{ID: "r1", Price: 100})
		draft.SetDates("2026-09-01", "2026-09-04", 2)
		draft.AddExtra(models.BookingExtra{ID: "breakfast", Price: 20, Quantity: 2})

		quote := engine.QuoteDraft(draft)
		assert.Equal(t, 3, quote.Nights)
		assert.Equal(t, 399.0, quote.Total)
	})
}

func TestResolveDiscount(t *testing.T) {
	percent := &models.PromoCode{Code: "WELCOME10", DiscountType: models.PromoDiscountPercent, Value: 10}
	amount := &models.PromoCode{Code: "SUMMER25", DiscountType: models.PromoDiscountAmount, Value: 25}

	assert.Equal(t, 34.0, ResolveDiscount(percent, 340))
	assert.Equal(t, 25.0, ResolveDiscount(amount, 340))
	assert.Equal(t, 0.0, ResolveDiscount(nil, 340))
	assert.Equal(t, 0.0, ResolveDiscount(&models.PromoCode{DiscountType: "bogus", Value: 10}, 340))
}
