package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BookingService handles checkout and booking lifecycle logic
type BookingService struct {
	bookingRepo *database.BookingRepository
	paymentRepo *database.PaymentRepository
	roomRepo    *database.RoomRepository
	promoRepo   *database.PromoCodeRepository
	draftStore  database.DraftStore
	pricing     *PricingEngine
	audit       *AuditService
	currency    string
	logger      *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo *database.BookingRepository,
	paymentRepo *database.PaymentRepository,
	roomRepo *database.RoomRepository,
	promoRepo *database.PromoCodeRepository,
	draftStore database.DraftStore,
	pricing *PricingEngine,
	audit *AuditService,
	currency string,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		roomRepo:    roomRepo,
		promoRepo:   promoRepo,
		draftStore:  draftStore,
		pricing:     pricing,
		audit:       audit,
		currency:    currency,
		logger:      logger,
	}
}

// Checkout converts the user's draft into a confirmed booking. Preconditions
// are checked in order and each failure names the step the client should
// return to. All amounts are recomputed server side from the draft; nothing
// the client submits can change the price.
func (s *BookingService) Checkout(ctx context.Context, userID uuid.UUID, form *models.PaymentForm, ipAddress, userAgent string) (*models.Booking, error) {
	draft, err := s.draftStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !draft.HasRoom() {
		return nil, &models.PreconditionError{Message: "No room selected", RedirectTo: "/rooms"}
	}
	if !draft.HasDates() {
		return nil, &models.PreconditionError{Message: "Stay dates are not set", RedirectTo: "/booking/dates"}
	}
	if err := models.ValidateStayDates(draft.CheckIn, draft.CheckOut); err != nil {
		return nil, &models.PreconditionError{Message: err.Error(), RedirectTo: "/booking/dates"}
	}
	if draft.GuestInfo == nil {
		return nil, &models.PreconditionError{Message: "Guest details are missing", RedirectTo: "/booking/guest"}
	}
	if err := draft.GuestInfo.Validate(); err != nil {
		return nil, &models.PreconditionError{Message: err.Error(), RedirectTo: "/booking/guest"}
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	// Re-read the room so stale drafts cannot book a withdrawn room
	room, err := s.roomRepo.GetRoomByID(draft.SelectedRoom.ID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, &models.PreconditionError{Message: "The selected room no longer exists", RedirectTo: "/rooms"}
		}
		return nil, err
	}
	if !room.Available {
		return nil, &models.PreconditionError{Message: "The selected room is no longer available", RedirectTo: "/rooms"}
	}
	if err := room.ValidateOccupancy(draft.Guests); err != nil {
		return nil, err
	}

	nights := Nights(draft.CheckIn, draft.CheckOut)
	if nights < 1 {
		return nil, &models.PreconditionError{Message: "Stay must be at least one night", RedirectTo: "/booking/dates"}
	}

	discount, promoCode := s.resolvePromo(draft, room.Price, nights)
	quote := s.pricing.Quote(room.Price, nights, draft.Extras, discount)

	now := time.Now()
	booking := &models.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		RoomID:        room.ID,
		RoomName:      room.Name,
		RoomType:      string(room.Type),
		CheckIn:       draft.CheckIn,
		CheckOut:      draft.CheckOut,
		Guests:        draft.Guests,
		Nights:        nights,
		Subtotal:      quote.Subtotal,
		Taxes:         quote.Taxes,
		Fees:          quote.Fees,
		Discount:      quote.Discount,
		Total:         quote.Total,
		Status:        models.BookingStatusConfirmed,
		GuestInfo:     *draft.GuestInfo,
		Extras:        models.BookingExtras(draft.Extras),
		PromoCode:     promoCode,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: strPtr("card"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bookingRepo.CreateBooking(booking); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:            database.NewPaymentID(),
		BookingID:     booking.ID,
		UserID:        userID,
		Amount:        quote.Total,
		Currency:      s.currency,
		Status:        models.PaymentRecordCompleted,
		Method:        "card",
		TransactionID: database.NewTransactionID(now),
		CreatedAt:     now,
	}
	if err := s.paymentRepo.CreatePayment(payment); err != nil {
		// The booking stands; the payment record is bookkeeping
		s.logger.WithError(err).WithField("booking_id", booking.ID).Error("Failed to record payment")
	}

	if err := s.draftStore.Delete(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to clear draft after checkout")
	}

	_ = s.audit.LogBookingCreated(userID, booking.ID, room.ID, quote.Total, ipAddress, userAgent)
	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    userID,
		"room_id":    room.ID,
		"total":      quote.Total,
	}).Info("Booking confirmed")

	return booking, nil
}

// resolvePromo re-resolves the draft's promo code against the final
// subtotal. A code that expired between apply and checkout silently drops;
// the checkout proceeds at full price.
func (s *BookingService) resolvePromo(draft *models.BookingDraft, nightlyPrice float64, nights int) (float64, *string) {
	if draft.PromoCode == "" {
		return 0, nil
	}

	promo, err := s.promoRepo.GetPromoCodeByCode(draft.PromoCode)
	if err != nil || !promo.IsRedeemable(time.Now()) {
		return 0, nil
	}

	base := s.pricing.Quote(nightlyPrice, nights, draft.Extras, 0)
	code := promo.Code
	return ResolveDiscount(promo, base.Subtotal), &code
}

// GetBooking loads a booking with its room populated. Ownership is enforced
// for customers; staff roles may read any booking. A booking whose room has
// since been deleted still loads, with a warning instead of room details.
func (s *BookingService) GetBooking(id string, requesterID uuid.UUID, requesterRole models.Role) (*models.PopulatedBooking, error) {
	booking, err := s.bookingRepo.GetBookingByID(id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != requesterID && !isStaffRole(requesterRole) {
		return nil, fmt.Errorf("booking not found")
	}

	return s.populate(booking), nil
}

// GetUserBookings lists the user's own bookings, newest first
func (s *BookingService) GetUserBookings(userID uuid.UUID) ([]*models.PopulatedBooking, error) {
	bookings, err := s.bookingRepo.GetBookingsByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.populateAll(bookings), nil
}

// GetAllBookings lists every booking for the management consoles
func (s *BookingService) GetAllBookings() ([]*models.PopulatedBooking, error) {
	bookings, err := s.bookingRepo.GetAllBookings()
	if err != nil {
		return nil, err
	}
	return s.populateAll(bookings), nil
}

// GetBookingsByStatus lists bookings in one status for the consoles
func (s *BookingService) GetBookingsByStatus(status models.BookingStatus) ([]*models.PopulatedBooking, error) {
	if !models.IsValidBookingStatus(string(status)) {
		return nil, &models.ValidationError{Field: "status", Message: "Unknown booking status"}
	}
	bookings, err := s.bookingRepo.GetBookingsByStatus(status)
	if err != nil {
		return nil, err
	}
	return s.populateAll(bookings), nil
}

// SearchBookings returns the console booking list, optionally restricted to
// one status and reduced by a free-text query. The query matches
// case-insensitively against guest name, guest email, and booking id; an
// empty query matches everything.
func (s *BookingService) SearchBookings(status models.BookingStatus, query string) ([]*models.PopulatedBooking, error) {
	var bookings []*models.PopulatedBooking
	var err error
	if status != "" {
		bookings, err = s.GetBookingsByStatus(status)
	} else {
		bookings, err = s.GetAllBookings()
	}
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return bookings, nil
	}

	matched := make([]*models.PopulatedBooking, 0, len(bookings))
	for _, b := range bookings {
		guest := b.Booking.GuestInfo
		if matchesQuery(needle, guest.FirstName+" "+guest.LastName, guest.Email, b.Booking.ID) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// UpdateStatus applies a staff-initiated status transition. Writes are
// last-writer-wins: two staff members updating the same booking do not
// conflict, the later write stands.
func (s *BookingService) UpdateStatus(actorID uuid.UUID, bookingID string, status models.BookingStatus, ipAddress, userAgent string) (*models.Booking, error) {
	if !models.IsValidBookingStatus(string(status)) {
		return nil, &models.ValidationError{Field: "status", Message: "Unknown booking status"}
	}

	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}

	previous := booking.Status
	if err := s.bookingRepo.UpdateBookingStatus(bookingID, status); err != nil {
		return nil, err
	}

	if status == models.BookingStatusCancelled && booking.PaymentStatus == models.PaymentStatusPaid {
		if err := s.refund(booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to refund cancelled booking")
		}
	}

	_ = s.audit.LogBookingStatusChange(actorID, bookingID, string(previous), string(status), ipAddress, userAgent)

	booking.Status = status
	return booking, nil
}

// Cancel lets a customer cancel their own booking. Paid bookings are
// refunded in full.
func (s *BookingService) Cancel(userID uuid.UUID, bookingID, ipAddress, userAgent string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("booking not found")
	}
	if !booking.CanBeCancelled() {
		return nil, &models.ValidationError{Field: "status", Message: "This booking can no longer be cancelled"}
	}

	previous := booking.Status
	if err := s.bookingRepo.UpdateBookingStatus(bookingID, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	if booking.PaymentStatus == models.PaymentStatusPaid {
		if err := s.refund(booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to refund cancelled booking")
		}
		booking.PaymentStatus = models.PaymentStatusRefunded
	}

	_ = s.audit.LogBookingStatusChange(userID, bookingID, string(previous), string(models.BookingStatusCancelled), ipAddress, userAgent)

	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// TodayActivity returns today's arrivals and departures for the front desk
func (s *BookingService) TodayActivity() (checkIns, checkOuts []models.Booking, err error) {
	today := time.Now().Format(models.DateLayout)
	checkIns, err = s.bookingRepo.GetTodayCheckIns(today)
	if err != nil {
		return nil, nil, err
	}
	checkOuts, err = s.bookingRepo.GetTodayCheckOuts(today)
	if err != nil {
		return nil, nil, err
	}
	return checkIns, checkOuts, nil
}

func (s *BookingService) refund(booking *models.Booking) error {
	if err := s.bookingRepo.UpdatePaymentStatus(booking.ID, models.PaymentStatusRefunded, booking.PaymentMethod); err != nil {
		return err
	}
	return s.paymentRepo.MarkRefunded(booking.ID)
}

// populate attaches the live room record to a booking. A missing room
// degrades to a warning; the booking's own denormalized fields still render.
func (s *BookingService) populate(booking *models.Booking) *models.PopulatedBooking {
	populated := &models.PopulatedBooking{Booking: booking}

	room, err := s.roomRepo.GetRoomByID(booking.RoomID)
	if err != nil {
		populated.RoomWarning = "Room details are no longer available"
		if !database.IsNotFound(err) {
			s.logger.WithError(err).WithField("room_id", booking.RoomID).Warn("Failed to load room for booking")
		}
		return populated
	}

	populated.Room = room
	return populated
}

func (s *BookingService) populateAll(bookings []models.Booking) []*models.PopulatedBooking {
	populated := make([]*models.PopulatedBooking, 0, len(bookings))
	for i := range bookings {
		populated = append(populated, s.populate(&bookings[i]))
	}
	return populated
}

func isStaffRole(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager || role == models.RoleStaff
}

func strPtr(s string) *string {
	return &s
}
