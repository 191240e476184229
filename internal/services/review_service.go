package services

import (
	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReviewService handles customer reviews. Reviews enter as pending and only
// count towards a room's rating once approved.
type ReviewService struct {
	reviewRepo  *database.ReviewRepository
	bookingRepo *database.BookingRepository
	logger      *logrus.Logger
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo *database.ReviewRepository, bookingRepo *database.BookingRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateReview submits a review for a completed stay. The booking must
// belong to the reviewer and match the reviewed room.
func (s *ReviewService) CreateReview(userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetBookingByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID || booking.RoomID != req.RoomID {
		return nil, &models.ValidationError{Field: "booking_id", Message: "You can only review your own stays"}
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, &models.ValidationError{Field: "booking_id", Message: "You can only review completed stays"}
	}

	review, err := s.reviewRepo.CreateReview(userID, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"review_id": review.ID,
		"room_id":   review.RoomID,
	}).Info("Review submitted for moderation")

	return review, nil
}

// GetRoomReviews returns a room's approved reviews for the detail page
func (s *ReviewService) GetRoomReviews(roomID string) ([]models.Review, error) {
	return s.reviewRepo.GetApprovedReviewsByRoom(roomID)
}

// GetPendingReviews lists reviews awaiting admin moderation
func (s *ReviewService) GetPendingReviews() ([]models.Review, error) {
	return s.reviewRepo.GetPendingReviews()
}
