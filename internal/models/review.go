package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewStatus gates which reviews appear on public room pages
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review represents a guest review of a room
type Review struct {
	ID        string       `json:"id" db:"id"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id"`
	RoomID    string       `json:"room_id" db:"room_id"`
	BookingID string       `json:"booking_id" db:"booking_id"`
	Rating    int          `json:"rating" db:"rating"`
	Comment   string       `json:"comment" db:"comment"`
	Status    ReviewStatus `json:"status" db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// CreateReviewRequest represents the request to leave a review
type CreateReviewRequest struct {
	RoomID    string `json:"room_id" binding:"required"`
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}

// Validate validates the review request
func (r *CreateReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return &ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}
	if len(r.Comment) < 3 {
		return &ValidationError{Field: "comment", Message: "Comment is too short"}
	}
	return nil
}
