package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingDraft(t *testing.T) {
	draft := NewBookingDraft()

	assert.Nil(t, draft.SelectedRoom)
	assert.Equal(t, 1, draft.Guests)
	assert.Empty(t, draft.Extras)
	assert.Equal(t, DraftMinStep, draft.Step)
	assert.False(t, draft.HasRoom())
	assert.False(t, draft.HasDates())
}

func TestDraftAddExtra_MergesById(t *testing.T) {
	draft := NewBookingDraft()

	draft.AddExtra(BookingExtra{ID: "breakfast", Name: "Breakfast", Price: 20, Quantity: 1})
	draft.AddExtra(BookingExtra{ID: "spa", Name: "Spa", Price: 110, Quantity: 1})
	draft.AddExtra(BookingExtra{ID: "breakfast", Name: "Breakfast", Price: 20, Quantity: 2})

	assert.Len(t, draft.Extras, 2)
	assert.Equal(t, 3, draft.Extras[0].Quantity)
	assert.Equal(t, 1, draft.Extras[1].Quantity)
}

func TestDraftUpdateExtraQuantity_SetsNotAdds(t *testing.T) {
	draft := NewBookingDraft()
	draft.AddExtra(BookingExtra{ID: "breakfast", Price: 20, Quantity: 2})

	draft.UpdateExtraQuantity("breakfast", 5)
	assert.Equal(t, 5, draft.Extras[0].Quantity)

	// Unknown id is a no-op
	draft.UpdateExtraQuantity("missing", 9)
	assert.Len(t, draft.Extras, 1)
}

func TestDraftRemoveExtra(t *testing.T) {
	draft := NewBookingDraft()
	draft.AddExtra(BookingExtra{ID: "breakfast", Quantity: 1})
	draft.AddExtra(BookingExtra{ID: "spa", Quantity: 1})

	draft.RemoveExtra("breakfast")

	assert.Len(t, draft.Extras, 1)
	assert.Equal(t, "spa", draft.Extras[0].ID)

	// Removing again is a no-op
	draft.RemoveExtra("breakfast")
	assert.Len(t, draft.Extras, 1)
}

func TestDraftPromoCode_AtomicSetAndClear(t *testing.T) {
	draft := NewBookingDraft()

	draft.SetPromoCode("WELCOME10", 34)
	assert.Equal(t, "WELCOME10", draft.PromoCode)
	assert.Equal(t, 34.0, draft.Discount)

	draft.ClearPromoCode()
	assert.Empty(t, draft.PromoCode)
	assert.Equal(t, 0.0, draft.Discount)
}

func TestDraftStepClamping(t *testing.T) {
	draft := NewBookingDraft()

	draft.PreviousStep()
	assert.Equal(t, DraftMinStep, draft.Step)

	for i := 0; i < 10; i++ {
		draft.NextStep()
	}
	assert.Equal(t, DraftMaxStep, draft.Step)

	draft.SetStep(99)
	assert.Equal(t, DraftMaxStep, draft.Step)

	draft.SetStep(-3)
	assert.Equal(t, DraftMinStep, draft.Step)

	draft.SetStep(2)
	assert.Equal(t, 2, draft.Step)
}

func TestDraftClear_Idempotent(t *testing.T) {
	draft := NewBookingDraft()
	draft.SelectRoom(&Room{ID: "r1", Price: 100})
	draft.SetDates("2026-09-01", "2026-09-04", 2)
	draft.AddExtra(BookingExtra{ID: "breakfast", Quantity: 1})
	draft.SetGuestInfo(GuestInfo{FirstName: "Ada", LastName: "Lovelace"})
	draft.SetPromoCode("WELCOME10", 34)
	draft.SetStep(3)

	draft.Clear()
	first := *draft

	draft.Clear()
	assert.Equal(t, first, *draft)

	assert.Nil(t, draft.SelectedRoom)
	assert.Nil(t, draft.GuestInfo)
	assert.Empty(t, draft.Extras)
	assert.Equal(t, DraftMinStep, draft.Step)
	assert.Equal(t, 1, draft.Guests)
}

func TestDraftSelectRoom_ReplacesPrevious(t *testing.T) {
	draft := NewBookingDraft()
	draft.SelectRoom(&Room{ID: "r1"})
	draft.SelectRoom(&Room{ID: "r2"})

	assert.Equal(t, "r2", draft.SelectedRoom.ID)
	assert.True(t, draft.HasRoom())
}
