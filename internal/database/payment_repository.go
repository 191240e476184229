package database

import (
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
)

// PaymentRepository handles payment record database operations
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{
		db: db,
	}
}

// CreatePayment persists a payment record
func (r *PaymentRepository) CreatePayment(p *models.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, user_id, amount, currency, status, method, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(
		query,
		p.ID,
		p.BookingID,
		p.UserID,
		p.Amount,
		p.Currency,
		p.Status,
		p.Method,
		p.TransactionID,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetPaymentsByBooking returns a booking's payment records, newest first
func (r *PaymentRepository) GetPaymentsByBooking(bookingID string) ([]models.Payment, error) {
	var payments []models.Payment
	query := `
		SELECT id, booking_id, user_id, amount, currency, status, method, transaction_id, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.Select(&payments, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to list booking payments: %w", err)
	}
	return payments, nil
}

// MarkRefunded records a refund against a booking's completed payment
func (r *PaymentRepository) MarkRefunded(bookingID string) error {
	_, err := r.db.Exec(
		`UPDATE payments SET status = $2 WHERE booking_id = $1 AND status = $3`,
		bookingID, models.PaymentRecordRefunded, models.PaymentRecordCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to mark payment refunded: %w", err)
	}
	return nil
}

// NewPaymentID generates an identifier for a payment record
func NewPaymentID() string {
	return uuid.NewString()
}

// NewTransactionID generates a simulated gateway transaction reference
func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("txn_%d_%s", now.Unix(), uuid.NewString()[:8])
}
