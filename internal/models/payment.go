package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecordStatus represents the state of a payment record
type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "pending"
	PaymentRecordCompleted PaymentRecordStatus = "completed"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
	PaymentRecordRefunded  PaymentRecordStatus = "refunded"
)

// Payment represents a (simulated) payment transaction for a booking
type Payment struct {
	ID            string              `json:"id" db:"id"`
	BookingID     string              `json:"booking_id" db:"booking_id"`
	UserID        uuid.UUID           `json:"user_id" db:"user_id"`
	Amount        float64             `json:"amount" db:"amount"`
	Currency      string              `json:"currency" db:"currency"`
	Status        PaymentRecordStatus `json:"status" db:"status"`
	Method        string              `json:"method" db:"method"`
	TransactionID string              `json:"transaction_id" db:"transaction_id"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
}
