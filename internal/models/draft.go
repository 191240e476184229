package models

// Step bounds for the booking flow. The UI walks dates/extras → guest info →
// payment → confirmation; the counter is clamped so callers cannot step
// outside the flow.
const (
	DraftMinStep = 1
	DraftMaxStep = 4
)

// BookingDraft is the single active, uncommitted booking-in-progress for a
// user. Slots are independently settable; there is no strict ordering beyond
// the step counter.
type BookingDraft struct {
	SelectedRoom *Room          `json:"selected_room,omitempty"`
	CheckIn      string         `json:"check_in"`
	CheckOut     string         `json:"check_out"`
	Guests       int            `json:"guests"`
	Extras       []BookingExtra `json:"extras"`
	GuestInfo    *GuestInfo     `json:"guest_info,omitempty"`
	PromoCode    string         `json:"promo_code"`
	Discount     float64        `json:"discount"`
	Step         int            `json:"step"`
}

// NewBookingDraft returns the initial empty draft
func NewBookingDraft() *BookingDraft {
	return &BookingDraft{
		Guests: 1,
		Extras: []BookingExtra{},
		Step:   DraftMinStep,
	}
}

// SelectRoom replaces any previously selected room
func (d *BookingDraft) SelectRoom(room *Room) {
	d.SelectedRoom = room
}

// SetDates overwrites the stay dates and guest count
func (d *BookingDraft) SetDates(checkIn, checkOut string, guests int) {
	d.CheckIn = checkIn
	d.CheckOut = checkOut
	d.Guests = guests
}

// AddExtra merges an extra into the draft. An extra with an id already
// present has its quantity incremented; a new id is appended.
func (d *BookingDraft) AddExtra(extra BookingExtra) {
	for i := range d.Extras {
		if d.Extras[i].ID == extra.ID {
			d.Extras[i].Quantity += extra.Quantity
			return
		}
	}
	d.Extras = append(d.Extras, extra)
}

// RemoveExtra deletes an extra by id
func (d *BookingDraft) RemoveExtra(id string) {
	filtered := d.Extras[:0]
	for _, e := range d.Extras {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	d.Extras = filtered
}

// UpdateExtraQuantity sets (not adds) the quantity for the given id
func (d *BookingDraft) UpdateExtraQuantity(id string, quantity int) {
	for i := range d.Extras {
		if d.Extras[i].ID == id {
			d.Extras[i].Quantity = quantity
			return
		}
	}
}

// SetGuestInfo replaces any prior guest info wholesale
func (d *BookingDraft) SetGuestInfo(info GuestInfo) {
	d.GuestInfo = &info
}

// SetPromoCode replaces the code and resolved discount together
func (d *BookingDraft) SetPromoCode(code string, discount float64) {
	d.PromoCode = code
	d.Discount = discount
}

// ClearPromoCode resets code and discount atomically
func (d *BookingDraft) ClearPromoCode() {
	d.PromoCode = ""
	d.Discount = 0
}

// SetStep moves to an explicit step, clamped to the flow bounds
func (d *BookingDraft) SetStep(step int) {
	d.Step = clampStep(step)
}

// NextStep advances the step counter, never past the final step
func (d *BookingDraft) NextStep() {
	d.Step = clampStep(d.Step + 1)
}

// PreviousStep decrements the step counter, never below the first step
func (d *BookingDraft) PreviousStep() {
	d.Step = clampStep(d.Step - 1)
}

// Clear resets the entire draft to its initial empty state. This is the sole
// destructor; calling it repeatedly yields the same empty draft.
func (d *BookingDraft) Clear() {
	*d = *NewBookingDraft()
}

// HasRoom reports whether a room has been selected
func (d *BookingDraft) HasRoom() bool {
	return d.SelectedRoom != nil
}

// HasDates reports whether both stay dates are set
func (d *BookingDraft) HasDates() bool {
	return d.CheckIn != "" && d.CheckOut != ""
}

func clampStep(step int) int {
	if step < DraftMinStep {
		return DraftMinStep
	}
	if step > DraftMaxStep {
		return DraftMaxStep
	}
	return step
}
