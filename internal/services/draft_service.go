package services

import (
	"context"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DraftService owns the single active booking draft per user. Every
// mutation loads the draft, applies one action and saves it back; mutations
// from a user's session are applied in the order they are issued.
type DraftService struct {
	store     database.DraftStore
	roomRepo  *database.RoomRepository
	extraRepo *database.ExtraRepository
	promoRepo *database.PromoCodeRepository
	pricing   *PricingEngine
	logger    *logrus.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	store database.DraftStore,
	roomRepo *database.RoomRepository,
	extraRepo *database.ExtraRepository,
	promoRepo *database.PromoCodeRepository,
	pricing *PricingEngine,
	logger *logrus.Logger,
) *DraftService {
	return &DraftService{
		store:     store,
		roomRepo:  roomRepo,
		extraRepo: extraRepo,
		promoRepo: promoRepo,
		pricing:   pricing,
		logger:    logger,
	}
}

// DraftView bundles the draft with its current price breakdown so every
// mutation response reflects the recomputed totals.
type DraftView struct {
	Draft   *models.BookingDraft `json:"draft"`
	Pricing PriceBreakdown       `json:"pricing"`
}

func (s *DraftService) view(draft *models.BookingDraft) *DraftView {
	return &DraftView{
		Draft:   draft,
		Pricing: s.pricing.QuoteDraft(draft),
	}
}

// GetDraft returns the user's draft, creating the empty draft implicitly
func (s *DraftService) GetDraft(ctx context.Context, userID uuid.UUID) (*DraftView, error) {
	draft, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(draft), nil
}

// SelectRoom puts a room into the draft, replacing any previous selection
func (s *DraftService) SelectRoom(ctx context.Context, userID uuid.UUID, roomID string) (*DraftView, error) {
	room, err := s.roomRepo.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if !room.Available {
		return nil, &models.ValidationError{Field: "room_id", Message: "This room is not available"}
	}
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.SelectRoom(room)
		return nil
	})
}

// SetDates overwrites the stay dates and guest count. Validation happens
// before any draft mutation: an invalid request leaves the draft untouched.
func (s *DraftService) SetDates(ctx context.Context, userID uuid.UUID, checkIn, checkOut string, guests int) (*DraftView, error) {
	if err := models.ValidateStayDates(checkIn, checkOut); err != nil {
		return nil, err
	}
	if guests < 1 {
		return nil, &models.ValidationError{Field: "guests", Message: "At least 1 guest is required"}
	}
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		if d.SelectedRoom != nil {
			if err := d.SelectedRoom.ValidateOccupancy(guests); err != nil {
				return err
			}
		}
		d.SetDates(checkIn, checkOut, guests)
		return nil
	})
}

// AddExtra merges an add-on into the draft; re-adding an id increments its
// quantity instead of duplicating the line.
func (s *DraftService) AddExtra(ctx context.Context, userID uuid.UUID, extraID string, quantity int) (*DraftView, error) {
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
	}
	extra, err := s.extraRepo.GetExtraByID(extraID)
	if err != nil {
		return nil, err
	}
	if !extra.Available {
		return nil, &models.ValidationError{Field: "extra_id", Message: "This extra is not available"}
	}
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.AddExtra(models.BookingExtra{
			ID:       extra.ID,
			Name:     extra.Name,
			Price:    extra.Price,
			Quantity: quantity,
		})
		return nil
	})
}

// RemoveExtra deletes an add-on line by id
func (s *DraftService) RemoveExtra(ctx context.Context, userID uuid.UUID, extraID string) (*DraftView, error) {
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.RemoveExtra(extraID)
		return nil
	})
}

// UpdateExtraQuantity sets (not adds) the quantity of an existing line
func (s *DraftService) UpdateExtraQuantity(ctx context.Context, userID uuid.UUID, extraID string, quantity int) (*DraftView, error) {
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Message: "Quantity must be at least 1"}
	}
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.UpdateExtraQuantity(extraID, quantity)
		return nil
	})
}

// SetGuestInfo replaces the guest contact details wholesale
func (s *DraftService) SetGuestInfo(ctx context.Context, userID uuid.UUID, info models.GuestInfo) (*DraftView, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.SetGuestInfo(info)
		return nil
	})
}

// ApplyPromo resolves a promo code and stores code+discount together
func (s *DraftService) ApplyPromo(ctx context.Context, userID uuid.UUID, code string) (*DraftView, error) {
	promo, err := s.promoRepo.GetPromoCodeByCode(code)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, &models.ValidationError{Field: "code", Message: "Invalid promo code"}
		}
		return nil, err
	}
	if !promo.IsRedeemable(time.Now()) {
		return nil, &models.ValidationError{Field: "code", Message: "This promo code has expired"}
	}
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		quote := s.pricing.Quote(roomPrice(d), Nights(d.CheckIn, d.CheckOut), d.Extras, 0)
		discount := ResolveDiscount(promo, quote.Subtotal)
		d.SetPromoCode(promo.Code, discount)
		return nil
	})
}

// ClearPromo resets the promo code and discount atomically
func (s *DraftService) ClearPromo(ctx context.Context, userID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.ClearPromoCode()
		return nil
	})
}

// SetStep jumps to an explicit step within the flow bounds
func (s *DraftService) SetStep(ctx context.Context, userID uuid.UUID, step int) (*DraftView, error) {
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.SetStep(step)
		return nil
	})
}

// NextStep advances the flow by one step
func (s *DraftService) NextStep(ctx context.Context, userID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.NextStep()
		return nil
	})
}

// PreviousStep moves the flow back by one step
func (s *DraftService) PreviousStep(ctx context.Context, userID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, userID, func(d *models.BookingDraft) error {
		d.PreviousStep()
		return nil
	})
}

// ClearDraft resets the draft to its initial empty state; calling it on an
// already-empty draft is a no-op with the same result.
func (s *DraftService) ClearDraft(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// mutate loads the draft, applies one action and saves the result
func (s *DraftService) mutate(ctx context.Context, userID uuid.UUID, action func(*models.BookingDraft) error) (*DraftView, error) {
	draft, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := action(draft); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID, draft); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("Failed to save booking draft")
		return nil, err
	}
	return s.view(draft), nil
}

func roomPrice(d *models.BookingDraft) float64 {
	if d.SelectedRoom == nil {
		return 0
	}
	return d.SelectedRoom.Price
}
