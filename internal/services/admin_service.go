package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Alert thresholds for the derived dashboard alerts
const (
	occupancyAlertPercent   = 90
	pendingBookingsAlertMin = 10
)

// AdminService aggregates statistics and handles the management operations
// exposed to the admin and manager consoles.
type AdminService struct {
	userRepo    *database.UserRepository
	roomRepo    *database.RoomRepository
	bookingRepo *database.BookingRepository
	reviewRepo  *database.ReviewRepository
	promoRepo   *database.PromoCodeRepository
	logger      *logrus.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo *database.UserRepository,
	roomRepo *database.RoomRepository,
	bookingRepo *database.BookingRepository,
	reviewRepo *database.ReviewRepository,
	promoRepo *database.PromoCodeRepository,
	logger *logrus.Logger,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		promoRepo:   promoRepo,
		logger:      logger,
	}
}

// GetDashboardStats computes the aggregate figures for the dashboards. Each
// aggregate that fails loads as zero; a partial dashboard beats no dashboard.
func (s *AdminService) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	today := time.Now().Format(models.DateLayout)

	var err error
	if stats.TotalUsers, err = s.userRepo.CountUsers(); err != nil {
		s.logger.WithError(err).Warn("Failed to count users for dashboard")
	}
	if stats.ActiveUsers, err = s.userRepo.CountActiveUsers(); err != nil {
		s.logger.WithError(err).Warn("Failed to count active users for dashboard")
	}
	if stats.TotalRooms, err = s.roomRepo.CountRooms(); err != nil {
		s.logger.WithError(err).Warn("Failed to count rooms for dashboard")
	}
	if stats.TotalBookings, err = s.bookingRepo.CountBookings(); err != nil {
		s.logger.WithError(err).Warn("Failed to count bookings for dashboard")
	}
	if stats.TotalRevenue, err = s.bookingRepo.TotalRevenue(); err != nil {
		s.logger.WithError(err).Warn("Failed to sum revenue for dashboard")
	}
	if stats.PendingBookings, err = s.bookingRepo.CountBookingsByStatus(models.BookingStatusPending); err != nil {
		s.logger.WithError(err).Warn("Failed to count pending bookings for dashboard")
	}
	if stats.AverageRating, err = s.reviewRepo.AverageRating(); err != nil {
		s.logger.WithError(err).Warn("Failed to average ratings for dashboard")
	}

	checkIns, err := s.bookingRepo.GetTodayCheckIns(today)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load today's check-ins for dashboard")
	}
	stats.TodayCheckIns = len(checkIns)

	checkOuts, err := s.bookingRepo.GetTodayCheckOuts(today)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load today's check-outs for dashboard")
	}
	stats.TodayCheckOuts = len(checkOuts)

	stats.OccupancyRate = s.occupancyRate(today)

	return stats, nil
}

// occupancyRate computes occupied/inventory as a whole percentage, clamped
// to 100. Zero inventory yields zero rather than dividing.
func (s *AdminService) occupancyRate(today string) int {
	inventory, err := s.roomRepo.TotalInventory()
	if err != nil || inventory < 1 {
		return 0
	}
	occupied, err := s.bookingRepo.CountOccupied(today)
	if err != nil {
		return 0
	}
	rate := int(math.Round(float64(occupied) / float64(inventory) * 100))
	if rate > 100 {
		rate = 100
	}
	return rate
}

// GetSystemAlerts derives alerts from the current statistics. Alerts are
// recomputed on every call and never stored.
func (s *AdminService) GetSystemAlerts(stats *models.DashboardStats) []models.SystemAlert {
	now := time.Now()
	alerts := []models.SystemAlert{}

	if stats.OccupancyRate > occupancyAlertPercent {
		alerts = append(alerts, models.SystemAlert{
			ID:        "occupancy-high",
			Severity:  models.AlertWarning,
			Title:     "High occupancy",
			Message:   fmt.Sprintf("Occupancy is at %d%%. Consider closing online sales for peak dates.", stats.OccupancyRate),
			Timestamp: now,
		})
	}

	if stats.PendingBookings > pendingBookingsAlertMin {
		alerts = append(alerts, models.SystemAlert{
			ID:        "pending-backlog",
			Severity:  models.AlertInfo,
			Title:     "Pending bookings backlog",
			Message:   fmt.Sprintf("%d bookings are awaiting confirmation.", stats.PendingBookings),
			Timestamp: now,
		})
	}

	return alerts
}

// ListUsers returns every account for the user management console
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAllUsers()
}

// ListUsersByRole returns the accounts holding one role
func (s *AdminService) ListUsersByRole(role models.Role) ([]models.User, error) {
	if !models.IsValidRole(string(role)) {
		return nil, &models.ValidationError{Field: "role", Message: "Unknown role"}
	}
	return s.userRepo.GetUsersByRole(role)
}

// SearchUsers returns the accounts for the user management console,
// optionally restricted to one role and reduced by a free-text query. The
// query matches case-insensitively against each account's full name and
// email; an empty query matches everyone.
func (s *AdminService) SearchUsers(role models.Role, query string) ([]models.User, error) {
	var users []models.User
	var err error
	if role != "" {
		users, err = s.ListUsersByRole(role)
	} else {
		users, err = s.ListUsers()
	}
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return users, nil
	}

	matched := make([]models.User, 0, len(users))
	for i := range users {
		if matchesQuery(needle, users[i].FullName(), users[i].Email) {
			matched = append(matched, users[i])
		}
	}
	return matched, nil
}

// matchesQuery reports whether needle occurs in the space-joined fields.
// The needle must already be lowercased.
func matchesQuery(needle string, fields ...string) bool {
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), needle)
}

// UpdateUser applies an admin change to another account's role or status.
// Admins cannot demote or disable themselves; the last admin stays.
func (s *AdminService) UpdateUser(actorID, targetID uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if actorID == targetID {
		if req.Role != nil && *req.Role != string(models.RoleAdmin) {
			return nil, &models.ValidationError{Field: "role", Message: "You cannot change your own role"}
		}
		if req.IsActive != nil && !*req.IsActive {
			return nil, &models.ValidationError{Field: "is_active", Message: "You cannot deactivate your own account"}
		}
	}

	user, err := s.userRepo.UpdateRoleStatus(targetID, req.Role, req.IsActive)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"actor_id":  actorID,
		"target_id": targetID,
	}).Info("User account updated")

	return user, nil
}

// CreateRoom adds a room to the catalog
func (s *AdminService) CreateRoom(req *models.RoomRequest) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	room, err := s.roomRepo.CreateRoom(req)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("room_id", room.ID).Info("Room created")
	return room, nil
}

// UpdateRoom replaces a room's editable fields
func (s *AdminService) UpdateRoom(id string, req *models.RoomRequest) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.roomRepo.UpdateRoom(id, req)
}

// DeleteRoom removes a room from the catalog. Bookings that reference the
// room keep their denormalized copy of its details.
func (s *AdminService) DeleteRoom(id string) error {
	if err := s.roomRepo.DeleteRoom(id); err != nil {
		return err
	}
	s.logger.WithField("room_id", id).Info("Room deleted")
	return nil
}

// ListPromoCodes returns the currently redeemable promo codes
func (s *AdminService) ListPromoCodes() ([]models.PromoCode, error) {
	return s.promoRepo.GetActivePromoCodes()
}

// ModerateReview approves or rejects a pending review. Approval folds the
// review into the room's rating aggregate.
func (s *AdminService) ModerateReview(reviewID string, status models.ReviewStatus) error {
	if status != models.ReviewStatusApproved && status != models.ReviewStatusRejected {
		return &models.ValidationError{Field: "status", Message: "Status must be approved or rejected"}
	}

	if err := s.reviewRepo.UpdateReviewStatus(reviewID, status); err != nil {
		return err
	}

	if status != models.ReviewStatusApproved {
		return nil
	}

	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		return err
	}

	rating, count, err := s.reviewRepo.RoomRatingAggregate(review.RoomID)
	if err != nil {
		return err
	}
	return s.roomRepo.UpdateRating(review.RoomID, rating, count)
}
