package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
)

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{
		db: db,
	}
}

// CreateReview inserts a new review in pending state
func (r *ReviewRepository) CreateReview(userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	review := &models.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		RoomID:    req.RoomID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    models.ReviewStatusPending,
		CreatedAt: time.Now(),
	}
	query := `
		INSERT INTO reviews (id, user_id, room_id, booking_id, rating, comment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(
		query,
		review.ID,
		review.UserID,
		review.RoomID,
		review.BookingID,
		review.Rating,
		review.Comment,
		review.Status,
		review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// GetApprovedReviewsByRoom returns a room's approved reviews, newest first
func (r *ReviewRepository) GetApprovedReviewsByRoom(roomID string) ([]models.Review, error) {
	var reviews []models.Review
	query := `
		SELECT id, user_id, room_id, booking_id, rating, comment, status, created_at
		FROM reviews
		WHERE room_id = $1 AND status = 'approved'
		ORDER BY created_at DESC
	`
	if err := r.db.Select(&reviews, query, roomID); err != nil {
		return nil, fmt.Errorf("failed to list room reviews: %w", err)
	}
	return reviews, nil
}

// GetReviewByID retrieves a single review
func (r *ReviewRepository) GetReviewByID(id string) (*models.Review, error) {
	var review models.Review
	query := `
		SELECT id, user_id, room_id, booking_id, rating, comment, status, created_at
		FROM reviews
		WHERE id = $1
	`
	if err := r.db.Get(&review, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// GetPendingReviews returns reviews awaiting moderation, oldest first
func (r *ReviewRepository) GetPendingReviews() ([]models.Review, error) {
	var reviews []models.Review
	query := `
		SELECT id, user_id, room_id, booking_id, rating, comment, status, created_at
		FROM reviews
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`
	if err := r.db.Select(&reviews, query); err != nil {
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReviewStatus applies an admin moderation decision
func (r *ReviewRepository) UpdateReviewStatus(id string, status models.ReviewStatus) error {
	result, err := r.db.Exec(`UPDATE reviews SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update review status: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// RoomRatingAggregate returns the average rating and count of a room's
// approved reviews.
func (r *ReviewRepository) RoomRatingAggregate(roomID string) (float64, int, error) {
	var agg struct {
		Average float64 `db:"average"`
		Count   int     `db:"count"`
	}
	query := `
		SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count
		FROM reviews
		WHERE room_id = $1 AND status = 'approved'
	`
	if err := r.db.Get(&agg, query, roomID); err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate room rating: %w", err)
	}
	return agg.Average, agg.Count, nil
}

// AverageRating returns the overall average of approved reviews
func (r *ReviewRepository) AverageRating() (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE status = 'approved'`
	if err := r.db.Get(&avg, query); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}
