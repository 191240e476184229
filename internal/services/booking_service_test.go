package services

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
)

func setupBookingTest(t *testing.T) (*BookingService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &database.PostgresDB{DB: sqlxDB}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := NewBookingService(
		database.NewBookingRepository(postgresDB),
		database.NewPaymentRepository(postgresDB),
		database.NewRoomRepository(postgresDB),
		database.NewPromoCodeRepository(postgresDB),
		newMemoryDraftStore(),
		newTestPricingEngine(),
		NewAuditService(postgresDB, false),
		"USD",
		logger,
	)

	cleanup := func() {
		db.Close()
	}

	return service, mock, cleanup
}

func bookingColumnsList() []string {
	return []string{
		"id", "user_id", "room_id", "room_name", "room_type", "check_in",
		"check_out", "guests", "nights", "subtotal", "taxes", "fees",
		"discount", "total", "status", "guest_info", "extras", "promo_code",
		"payment_status", "payment_method", "created_at", "updated_at",
	}
}

func addBookingRow(rows *sqlmock.Rows, id string, userID uuid.UUID, roomID string, guestJSON string, status models.BookingStatus, paymentStatus models.PaymentStatus) {
	now := time.Now()
	rows.AddRow(
		id, userID, roomID, "Deluxe King", "deluxe", "2026-09-10", "2026-09-13",
		2, 3, 300.0, 30.0, 25.0, 0.0, 355.0, string(status), []byte(guestJSON),
		[]byte(`[]`), nil, string(paymentStatus), "card", now, now,
	)
}

func TestSearchBookings(t *testing.T) {
	service, mock, cleanup := setupBookingTest(t)
	defer cleanup()

	userID := uuid.New()
	adaGuest := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","phone":"0771234567"}`
	graceGuest := `{"first_name":"Grace","last_name":"Hopper","email":"grace@navy.mil","phone":"0777654321"}`

	allBookings := func() *sqlmock.Rows {
		rows := sqlmock.NewRows(bookingColumnsList())
		addBookingRow(rows, "bk-1001", userID, "room-1", adaGuest, models.BookingStatusConfirmed, models.PaymentStatusPaid)
		addBookingRow(rows, "bk-2002", userID, "room-2", graceGuest, models.BookingStatusConfirmed, models.PaymentStatusPaid)
		return rows
	}

	expectRooms := func() {
		mockRoomRow(mock, "room-1", 100, 2, true)
		mockRoomRow(mock, "room-2", 120, 2, true)
	}

	t.Run("Query Matches Guest Name", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings ORDER BY created_at`).
			WillReturnRows(allBookings())
		expectRooms()

		bookings, err := service.SearchBookings("", "LOVELACE")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "bk-1001", bookings[0].Booking.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query Matches Guest Email", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings ORDER BY created_at`).
			WillReturnRows(allBookings())
		expectRooms()

		bookings, err := service.SearchBookings("", "navy.mil")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "bk-2002", bookings[0].Booking.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query Matches Booking Id", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings ORDER BY created_at`).
			WillReturnRows(allBookings())
		expectRooms()

		bookings, err := service.SearchBookings("", "bk-2002")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "grace@navy.mil", bookings[0].Booking.GuestInfo.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Query Returns All", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings ORDER BY created_at`).
			WillReturnRows(allBookings())
		expectRooms()

		bookings, err := service.SearchBookings("", "")
		require.NoError(t, err)
		assert.Len(t, bookings, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Combines With Status Filter", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingColumnsList())
		addBookingRow(rows, "bk-3003", userID, "room-1", adaGuest, models.BookingStatusPending, models.PaymentStatusPending)
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE status`).
			WithArgs(models.BookingStatusPending).
			WillReturnRows(rows)
		mockRoomRow(mock, "room-1", 100, 2, true)

		bookings, err := service.SearchBookings(models.BookingStatusPending, "ada@example.com")
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, "bk-3003", bookings[0].Booking.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Status Rejected", func(t *testing.T) {
		_, err := service.SearchBookings("on-hold", "")
		require.Error(t, err)
		assert.Equal(t, "Unknown booking status", err.(*models.ValidationError).Message)
	})
}

func TestCancel(t *testing.T) {
	service, mock, cleanup := setupBookingTest(t)
	defer cleanup()

	userID := uuid.New()
	guest := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","phone":"0771234567"}`

	expectBooking := func(id string, owner uuid.UUID, status models.BookingStatus, paymentStatus models.PaymentStatus) {
		rows := sqlmock.NewRows(bookingColumnsList())
		addBookingRow(rows, id, owner, "room-1", guest, status, paymentStatus)
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(id).
			WillReturnRows(rows)
	}

	t.Run("Unpaid Cancellation Keeps Payment Status", func(t *testing.T) {
		expectBooking("bk-1", userID, models.BookingStatusPending, models.PaymentStatusPending)
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs("bk-1", models.BookingStatusCancelled, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		booking, err := service.Cancel(userID, "bk-1", "127.0.0.1", "test-agent")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)
		assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Paid Cancellation Refunds", func(t *testing.T) {
		expectBooking("bk-2", userID, models.BookingStatusConfirmed, models.PaymentStatusPaid)
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs("bk-2", models.BookingStatusCancelled, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE bookings SET payment_status`).
			WithArgs("bk-2", models.PaymentStatusRefunded, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE payments SET status`).
			WithArgs("bk-2", models.PaymentRecordRefunded, models.PaymentRecordCompleted).
			WillReturnResult(sqlmock.NewResult(0, 1))

		booking, err := service.Cancel(userID, "bk-2", "127.0.0.1", "test-agent")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, booking.Status)
		assert.Equal(t, models.PaymentStatusRefunded, booking.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Only The Owner Can Cancel", func(t *testing.T) {
		expectBooking("bk-3", uuid.New(), models.BookingStatusConfirmed, models.PaymentStatusPaid)

		_, err := service.Cancel(userID, "bk-3", "127.0.0.1", "test-agent")
		require.Error(t, err)
		assert.Equal(t, "booking not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Completed Booking Cannot Be Cancelled", func(t *testing.T) {
		expectBooking("bk-4", userID, models.BookingStatusCompleted, models.PaymentStatusPaid)

		_, err := service.Cancel(userID, "bk-4", "127.0.0.1", "test-agent")
		require.Error(t, err)
		assert.Equal(t, "This booking can no longer be cancelled", err.(*models.ValidationError).Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
