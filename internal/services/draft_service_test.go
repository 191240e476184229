package services

import (
	"context"
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

// memoryDraftStore is a map-backed DraftStore for tests
type memoryDraftStore struct {
	drafts map[uuid.UUID]*models.BookingDraft
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[uuid.UUID]*models.BookingDraft)}
}

func (m *memoryDraftStore) Get(_ context.Context, userID uuid.UUID) (*models.BookingDraft, error) {
	if d, ok := m.drafts[userID]; ok {
		copied := *d
		return &copied, nil
	}
	return models.NewBookingDraft(), nil
}

func (m *memoryDraftStore) Save(_ context.Context, userID uuid.UUID, draft *models.BookingDraft) error {
	m.drafts[userID] = draft
	return nil
}

func (m *memoryDraftStore) Delete(_ context.Context, userID uuid.UUID) error {
	delete(m.drafts, userID)
	return nil
}

func setupDraftTest(t *testing.T) (*DraftService, *memoryDraftStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	postgresDB := &database.PostgresDB{DB: sqlxDB}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := newMemoryDraftStore()
	service := NewDraftService(
		store,
		database.NewRoomRepository(postgresDB),
		database.NewExtraRepository(postgresDB),
		database.NewPromoCodeRepository(postgresDB),
		newTestPricingEngine(),
		logger,
	)

	cleanup := func() {
		db.Close()
	}

	return service, store, mock, cleanup
}

func stayDates() (string, string) {
	checkIn := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	return checkIn, checkOut
}

func mockRoomRow(mock sqlmock.Sqlmock, id string, price float64, maxOccupancy int, available bool) {
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM rooms WHERE id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "type", "description", "price", "max_occupancy", "size",
			"images", "amenities", "features", "available", "inventory", "rating",
			"review_count", "created_at", "updated_at",
		}).AddRow(
			id, "Deluxe King", "deluxe", "Spacious room with a king bed and city view",
			price, maxOccupancy, 42.0,
			[]byte(`{}`), []byte(`{"WiFi"}`), []byte(`{"City view"}`), available, 5, 4.5,
			12, now, now,
		))
}

func mockExtraRow(mock sqlmock.Sqlmock, id string, price float64, available bool) {
	mock.ExpectQuery(`SELECT (.+) FROM extras WHERE id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "price", "category", "available",
		}).AddRow(id, "Breakfast Buffet", "Daily breakfast for two", price, "dining", available))
}

func mockPromoRow(mock sqlmock.Sqlmock, code, discountType string, value float64, active bool, endDate time.Time) {
	mock.ExpectQuery(`SELECT (.+) FROM promo_codes WHERE`).
		WithArgs(code).
		WillReturnRows(sqlmock.NewRows([]string{
			"code", "description", "discount_type", "value", "active", "end_date", "created_at",
		}).AddRow(code, "Test promo", discountType, value, active, endDate, time.Now()))
}

func TestGetDraft_EmptyDraft(t *testing.T) {
	service, _, _, cleanup := setupDraftTest(t)
	defer cleanup()

	view, err := service.GetDraft(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, view.Draft.SelectedRoom)
	assert.Equal(t, models.DraftMinStep, view.Draft.Step)

	// An empty draft still carries the flat service fee
	assert.Equal(t, 0.0, view.Pricing.Subtotal)
	assert.Equal(t, 25.0, view.Pricing.Total)
}

func TestSelectRoom(t *testing.T) {
	service, store, mock, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRoomRow(mock, "room-1", 100, 2, true)

		view, err := service.SelectRoom(context.Background(), userID, "room-1")
		require.NoError(t, err)
		require.NotNil(t, view.Draft.SelectedRoom)
		assert.Equal(t, "room-1", view.Draft.SelectedRoom.ID)

		// The selection is persisted
		saved, err := store.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "room-1", saved.SelectedRoom.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unavailable Room", func(t *testing.T) {
		mockRoomRow(mock, "room-2", 100, 2, false)

		_, err := service.SelectRoom(context.Background(), userID, "room-2")
		require.Error(t, err)
		assert.Equal(t, "This room is not available", err.Error())

		// The previous selection survives the rejected request
		saved, err := store.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "room-1", saved.SelectedRoom.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Room Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rooms WHERE id`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := service.SelectRoom(context.Background(), userID, "missing")
		assert.Error(t, err)
		assert.True(t, database.IsNotFound(err))
	})
}

func TestSetDates(t *testing.T) {
	service, store, mock, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()
	checkIn, checkOut := stayDates()

	t.Run("Success Without Room", func(t *testing.T) {
		view, err := service.SetDates(context.Background(), userID, checkIn, checkOut, 2)
		require.NoError(t, err)
		assert.Equal(t, checkIn, view.Draft.CheckIn)
		assert.Equal(t, checkOut, view.Draft.CheckOut)
		assert.Equal(t, 2, view.Draft.Guests)
	})

	t.Run("Invalid Dates Leave Draft Untouched", func(t *testing.T) {
		_, err := service.SetDates(context.Background(), userID, checkOut, checkIn, 2)
		require.Error(t, err)
		assert.Equal(t, "Check-out date must be after check-in date", err.Error())

		saved, err := store.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, checkIn, saved.CheckIn)
	})

	t.Run("Occupancy Checked Against Selected Room", func(t *testing.T) {
		mockRoomRow(mock, "room-1", 100, 2, true)
		_, err := service.SelectRoom(context.Background(), userID, "room-1")
		require.NoError(t, err)

		_, err = service.SetDates(context.Background(), userID, checkIn, checkOut, 3)
		require.Error(t, err)
		assert.Equal(t, "This room can accommodate maximum 2 guests", err.Error())

		saved, err := store.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 2, saved.Guests)
	})

	t.Run("Zero Guests Rejected", func(t *testing.T) {
		_, err := service.SetDates(context.Background(), userID, checkIn, checkOut, 0)
		require.Error(t, err)
		assert.Equal(t, "At least 1 guest is required", err.Error())
	})
}

func TestAddExtra(t *testing.T) {
	service, _, mock, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()

	t.Run("Re-adding Merges Quantity", func(t *testing.T) {
		mockExtraRow(mock, "extra-1", 20, true)
		view, err := service.AddExtra(context.Background(), userID, "extra-1", 1)
		require.NoError(t, err)
		require.Len(t, view.Draft.Extras, 1)
		assert.Equal(t, 1, view.Draft.Extras[0].Quantity)

		mockExtraRow(mock, "extra-1", 20, true)
		view, err = service.AddExtra(context.Background(), userID, "extra-1", 2)
		require.NoError(t, err)
		require.Len(t, view.Draft.Extras, 1)
		assert.Equal(t, 3, view.Draft.Extras[0].Quantity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unavailable Extra Rejected", func(t *testing.T) {
		mockExtraRow(mock, "extra-2", 30, false)

		_, err := service.AddExtra(context.Background(), userID, "extra-2", 1)
		require.Error(t, err)
		assert.Equal(t, "This extra is not available", err.Error())
	})

	t.Run("Zero Quantity Rejected", func(t *testing.T) {
		_, err := service.AddExtra(context.Background(), userID, "extra-1", 0)
		require.Error(t, err)
		assert.Equal(t, "Quantity must be at least 1", err.Error())
	})
}

func TestUpdateAndRemoveExtra(t *testing.T) {
	service, _, mock, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()

	mockExtraRow(mock, "extra-1", 20, true)
	_, err := service.AddExtra(context.Background(), userID, "extra-1", 1)
	require.NoError(t, err)

	// Update sets, not adds
	view, err := service.UpdateExtraQuantity(context.Background(), userID, "extra-1", 4)
	require.NoError(t, err)
	require.Len(t, view.Draft.Extras, 1)
	assert.Equal(t, 4, view.Draft.Extras[0].Quantity)

	view, err = service.RemoveExtra(context.Background(), userID, "extra-1")
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Extras)

	// Removing an id that is not present is a no-op
	view, err = service.RemoveExtra(context.Background(), userID, "extra-1")
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Extras)
}

func TestApplyPromo(t *testing.T) {
	service, _, mock, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()
	checkIn, checkOut := stayDates()

	// Room at 100/night for 3 nights plus a 20x2 extra: subtotal 340
	mockRoomRow(mock, "room-1", 100, 4, true)
	_, err := service.SelectRoom(context.Background(), userID, "room-1")
	require.NoError(t, err)
	_, err = service.SetDates(context.Background(), userID, checkIn, checkOut, 2)
	require.NoError(t, err)
	mockExtraRow(mock, "extra-1", 20, true)
	_, err = service.AddExtra(context.Background(), userID, "extra-1", 2)
	require.NoError(t, err)

	t.Run("Percent Discount Resolved Against Subtotal", func(t *testing.T) {
		mockPromoRow(mock, "WELCOME10", "percent", 10, true, time.Now().AddDate(0, 1, 0))

		view, err := service.ApplyPromo(context.Background(), userID, "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", view.Draft.PromoCode)
		assert.InDelta(t, 34.0, view.Draft.Discount, 0.001)
		assert.InDelta(t, 34.0, view.Pricing.Discount, 0.001)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM promo_codes WHERE`).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows([]string{"code"}))

		_, err := service.ApplyPromo(context.Background(), userID, "NOPE")
		require.Error(t, err)
		assert.Equal(t, "Invalid promo code", err.Error())
	})

	t.Run("Expired Code", func(t *testing.T) {
		mockPromoRow(mock, "OLD25", "amount", 25, true, time.Now().AddDate(0, 0, -1))

		_, err := service.ApplyPromo(context.Background(), userID, "OLD25")
		require.Error(t, err)
		assert.Equal(t, "This promo code has expired", err.Error())
	})

	t.Run("Clear Resets Code And Discount", func(t *testing.T) {
		view, err := service.ClearPromo(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, view.Draft.PromoCode)
		assert.Equal(t, 0.0, view.Draft.Discount)
	})
}

func TestClearDraft(t *testing.T) {
	service, store, mock, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()

	mockRoomRow(mock, "room-1", 100, 2, true)
	_, err := service.SelectRoom(context.Background(), userID, "room-1")
	require.NoError(t, err)

	require.NoError(t, service.ClearDraft(context.Background(), userID))

	_, stored := store.drafts[userID]
	assert.False(t, stored)

	view, err := service.GetDraft(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, view.Draft.SelectedRoom)
	assert.Equal(t, models.DraftMinStep, view.Draft.Step)

	// Clearing an already-empty draft is a no-op
	require.NoError(t, service.ClearDraft(context.Background(), userID))
}

func TestDraftSteps(t *testing.T) {
	service, _, _, cleanup := setupDraftTest(t)
	defer cleanup()
	userID := uuid.New()

	view, err := service.NextStep(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Draft.Step)

	view, err = service.SetStep(context.Background(), userID, 99)
	require.NoError(t, err)
	assert.Equal(t, models.DraftMaxStep, view.Draft.Step)

	view, err = service.PreviousStep(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Draft.Step)
}
