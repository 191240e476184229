package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// IsValidBookingStatus checks whether a booking status string is known
func IsValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// GuestInfo holds the contact details captured during the booking flow
type GuestInfo struct {
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

// Validate validates the guest contact details
func (g *GuestInfo) Validate() error {
	if len(g.FirstName) < 2 {
		return &ValidationError{Field: "first_name", Message: "First name must be at least 2 characters"}
	}
	if len(g.LastName) < 2 {
		return &ValidationError{Field: "last_name", Message: "Last name must be at least 2 characters"}
	}
	if !isEmail(g.Email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if len(g.Phone) < 10 {
		return &ValidationError{Field: "phone", Message: "Please enter a valid phone number"}
	}
	return nil
}

// Value implements driver.Valuer so guest info persists as JSONB
func (g GuestInfo) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan implements sql.Scanner
func (g *GuestInfo) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	case nil:
		return nil
	}
	return errors.New("unsupported type for GuestInfo")
}

// BookingExtra is a priced add-on line item attached to a booking or draft
type BookingExtra struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// BookingExtras is the JSONB-persisted list of extras on a booking
type BookingExtras []BookingExtra

// Value implements driver.Valuer
func (e BookingExtras) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal([]BookingExtra{})
	}
	return json.Marshal(e)
}

// Scan implements sql.Scanner
func (e *BookingExtras) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = nil
		return nil
	}
	return errors.New("unsupported type for BookingExtras")
}

// Booking represents a persisted reservation. Monetary fields are computed
// once at checkout and never recomputed afterwards.
type Booking struct {
	ID            string        `json:"id" db:"id"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	RoomID        string        `json:"room_id" db:"room_id"`
	RoomName      string        `json:"room_name" db:"room_name"`
	RoomType      string        `json:"room_type" db:"room_type"`
	CheckIn       string        `json:"check_in" db:"check_in"`
	CheckOut      string        `json:"check_out" db:"check_out"`
	Guests        int           `json:"guests" db:"guests"`
	Nights        int           `json:"nights" db:"nights"`
	Subtotal      float64       `json:"subtotal" db:"subtotal"`
	Taxes         float64       `json:"taxes" db:"taxes"`
	Fees          float64       `json:"fees" db:"fees"`
	Discount      float64       `json:"discount" db:"discount"`
	Total         float64       `json:"total" db:"total"`
	Status        BookingStatus `json:"status" db:"status"`
	GuestInfo     GuestInfo     `json:"guest_info" db:"guest_info"`
	Extras        BookingExtras `json:"extras" db:"extras"`
	PromoCode     *string       `json:"promo_code,omitempty" db:"promo_code"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod *string       `json:"payment_method,omitempty" db:"payment_method"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// CanBeCancelled checks if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// PopulatedBooking is the structured result of a two-phase booking read: the
// booking itself, its linked room when the secondary fetch succeeded, and a
// warning when it did not. A failed room fetch degrades, it never fails the
// read.
type PopulatedBooking struct {
	Booking     *Booking `json:"booking"`
	Room        *Room    `json:"room,omitempty"`
	RoomWarning string   `json:"room_warning,omitempty"`
}

// PaymentForm carries the simulated card details submitted at checkout
type PaymentForm struct {
	CardNumber     string `json:"card_number" binding:"required"`
	CardName       string `json:"card_name" binding:"required"`
	ExpiryDate     string `json:"expiry_date" binding:"required"`
	CVV            string `json:"cvv" binding:"required"`
	BillingAddress string `json:"billing_address" binding:"required"`
	City           string `json:"city" binding:"required"`
	PostalCode     string `json:"postal_code" binding:"required"`
	Country        string `json:"country" binding:"required"`
}

// Validate validates the payment form fields
func (p *PaymentForm) Validate() error {
	if !isDigits(p.CardNumber) || len(p.CardNumber) != 16 {
		return &ValidationError{Field: "card_number", Message: "Card number must be 16 digits"}
	}
	if len(p.CardName) < 3 {
		return &ValidationError{Field: "card_name", Message: "Cardholder name is required"}
	}
	if !isExpiryDate(p.ExpiryDate) {
		return &ValidationError{Field: "expiry_date", Message: "Expiry date must be in MM/YY format"}
	}
	if !isDigits(p.CVV) || len(p.CVV) < 3 || len(p.CVV) > 4 {
		return &ValidationError{Field: "cvv", Message: "CVV must be 3 or 4 digits"}
	}
	if len(p.BillingAddress) < 5 {
		return &ValidationError{Field: "billing_address", Message: "Billing address is required"}
	}
	if len(p.City) < 2 {
		return &ValidationError{Field: "city", Message: "City is required"}
	}
	if len(p.PostalCode) < 3 {
		return &ValidationError{Field: "postal_code", Message: "Postal code is required"}
	}
	if len(p.Country) < 2 {
		return &ValidationError{Field: "country", Message: "Country is required"}
	}
	return nil
}

// UpdateBookingStatusRequest represents a manager/admin status transition
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Validate validates the status transition request
func (r *UpdateBookingStatusRequest) Validate() error {
	if !IsValidBookingStatus(r.Status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("Invalid booking status: %s", r.Status)}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isExpiryDate(s string) bool {
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	mm := s[:2]
	yy := s[3:]
	if !isDigits(mm) || !isDigits(yy) {
		return false
	}
	return mm >= "01" && mm <= "12"
}

func isEmail(s string) bool {
	at := -1
	for i, c := range s {
		if c == '@' {
			if at >= 0 {
				return false
			}
			at = i
		}
	}
	if at <= 0 || at == len(s)-1 {
		return false
	}
	dot := false
	for _, c := range s[at+1:] {
		if c == '.' {
			dot = true
		}
	}
	return dot
}
