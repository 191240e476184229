package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
)

const bookingColumns = `id, user_id, room_id, room_name, room_type, check_in,
	check_out, guests, nights, subtotal, taxes, fees, discount, total, status,
	guest_info, extras, promo_code, payment_status, payment_method,
	created_at, updated_at`

// BookingRepository handles booking database operations
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

// CreateBooking persists a new booking
func (r *BookingRepository) CreateBooking(b *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, user_id, room_id, room_name, room_type, check_in, check_out,
			guests, nights, subtotal, taxes, fees, discount, total, status,
			guest_info, extras, promo_code, payment_status, payment_method,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22
		)
	`
	_, err := r.db.Exec(
		query,
		b.ID,
		b.UserID,
		b.RoomID,
		b.RoomName,
		b.RoomType,
		b.CheckIn,
		b.CheckOut,
		b.Guests,
		b.Nights,
		b.Subtotal,
		b.Taxes,
		b.Fees,
		b.Discount,
		b.Total,
		b.Status,
		b.GuestInfo,
		b.Extras,
		b.PromoCode,
		b.PaymentStatus,
		b.PaymentMethod,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetBookingByID retrieves a booking by ID
func (r *BookingRepository) GetBookingByID(id string) (*models.Booking, error) {
	var booking models.Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	if err := r.db.Get(&booking, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetAllBookings returns every booking, newest first
func (r *BookingRepository) GetAllBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY created_at DESC`, bookingColumns)
	if err := r.db.Select(&bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingsByUser returns a user's bookings, newest first
func (r *BookingRepository) GetBookingsByUser(userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`, bookingColumns)
	if err := r.db.Select(&bookings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingsByStatus returns bookings in the given status, newest first
func (r *BookingRepository) GetBookingsByStatus(status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE status = $1
		ORDER BY created_at DESC`, bookingColumns)
	if err := r.db.Select(&bookings, query, status); err != nil {
		return nil, fmt.Errorf("failed to list bookings by status: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus applies a status transition. Writes are
// last-writer-wins: there is no version check on purpose.
func (r *BookingRepository) UpdateBookingStatus(id string, status models.BookingStatus) error {
	result, err := r.db.Exec(
		`UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePaymentStatus records a payment state change on the booking
func (r *BookingRepository) UpdatePaymentStatus(id string, status models.PaymentStatus, method *string) error {
	result, err := r.db.Exec(
		`UPDATE bookings SET payment_status = $2, payment_method = COALESCE($3, payment_method), updated_at = $4 WHERE id = $1`,
		id, status, method, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTodayCheckIns returns confirmed/completed bookings arriving today
func (r *BookingRepository) GetTodayCheckIns(today string) ([]models.Booking, error) {
	var bookings []models.Booking
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE check_in = $1 AND status IN ('confirmed', 'completed')
		ORDER BY created_at DESC`, bookingColumns)
	if err := r.db.Select(&bookings, query, today); err != nil {
		return nil, fmt.Errorf("failed to list today's check-ins: %w", err)
	}
	return bookings, nil
}

// GetTodayCheckOuts returns confirmed/completed bookings departing today
func (r *BookingRepository) GetTodayCheckOuts(today string) ([]models.Booking, error) {
	var bookings []models.Booking
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE check_out = $1 AND status IN ('confirmed', 'completed')
		ORDER BY created_at DESC`, bookingColumns)
	if err := r.db.Select(&bookings, query, today); err != nil {
		return nil, fmt.Errorf("failed to list today's check-outs: %w", err)
	}
	return bookings, nil
}

// CountBookings returns the total number of bookings
func (r *BookingRepository) CountBookings() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings`); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// CountBookingsByStatus returns the number of bookings in a status
func (r *BookingRepository) CountBookingsByStatus(status models.BookingStatus) (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	return count, nil
}

// TotalRevenue sums booking totals across all non-cancelled bookings
func (r *BookingRepository) TotalRevenue() (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(total), 0) FROM bookings WHERE status <> 'cancelled'`
	if err := r.db.Get(&total, query); err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// CountOccupied counts confirmed bookings whose stay covers today
func (r *BookingRepository) CountOccupied(today string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE status = 'confirmed' AND check_in <= $1 AND check_out > $1
	`
	if err := r.db.Get(&count, query, today); err != nil {
		return 0, fmt.Errorf("failed to count occupied rooms: %w", err)
	}
	return count, nil
}
