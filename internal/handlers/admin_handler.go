package handlers

import (
	"net/http"
	"strconv"

	"github.com/azurestay/booking-backend/internal/middleware"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/azurestay/booking-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles the admin and manager console endpoints
type AdminHandler struct {
	adminService   *services.AdminService
	bookingService *services.BookingService
	reviewService  *services.ReviewService
	auditService   *services.AuditService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService *services.AdminService,
	bookingService *services.BookingService,
	reviewService *services.ReviewService,
	auditService *services.AuditService,
) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		bookingService: bookingService,
		reviewService:  reviewService,
		auditService:   auditService,
	}
}

// GetDashboard returns the aggregate statistics plus derived alerts
// GET /api/v1/admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":  stats,
		"alerts": h.adminService.GetSystemAlerts(stats),
	})
}

// ListUsers returns accounts, optionally filtered by role and reduced by a
// free-text search over name and email
// GET /api/v1/admin/users?role=&q=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.SearchUsers(models.Role(c.Query("role")), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// UpdateUser changes another account's role or active status
// PUT /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid user id"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	user, err := h.adminService.UpdateUser(userCtx.UserID, targetID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateRoom adds a room to the catalog
// POST /api/v1/admin/rooms
func (h *AdminHandler) CreateRoom(c *gin.Context) {
	var req models.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	room, err := h.adminService.CreateRoom(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// UpdateRoom replaces a room's editable fields
// PUT /api/v1/admin/rooms/:id
func (h *AdminHandler) UpdateRoom(c *gin.Context) {
	var req models.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	room, err := h.adminService.UpdateRoom(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room from the catalog
// DELETE /api/v1/admin/rooms/:id
func (h *AdminHandler) DeleteRoom(c *gin.Context) {
	if err := h.adminService.DeleteRoom(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// ListBookings returns bookings, optionally filtered by status and reduced
// by a free-text search over guest name, guest email, and booking id
// GET /api/v1/manager/bookings?status=&q=
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService.SearchBookings(models.BookingStatus(c.Query("status")), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// UpdateBookingStatus applies a staff-initiated status transition
// PUT /api/v1/manager/bookings/:id/status
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "status is required"})
		return
	}

	booking, err := h.bookingService.UpdateStatus(
		userCtx.UserID,
		c.Param("id"),
		models.BookingStatus(req.Status),
		utils.GetRealIP(c),
		utils.GetUserAgent(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetTodayActivity returns today's arrivals and departures
// GET /api/v1/manager/today
func (h *AdminHandler) GetTodayActivity(c *gin.Context) {
	checkIns, checkOuts, err := h.bookingService.TodayActivity()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"check_ins":  checkIns,
		"check_outs": checkOuts,
	})
}

// ListPromoCodes returns the redeemable promo codes
// GET /api/v1/admin/promo-codes
func (h *AdminHandler) ListPromoCodes(c *gin.Context) {
	promos, err := h.adminService.ListPromoCodes()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promo_codes": promos, "count": len(promos)})
}

// GetAuditLog returns the most recent audit events
// GET /api/v1/admin/audit-logs
func (h *AdminHandler) GetAuditLog(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	events, err := h.auditService.GetRecentActivity(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// ListPendingReviews returns reviews awaiting moderation
// GET /api/v1/admin/reviews/pending
func (h *AdminHandler) ListPendingReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetPendingReviews()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// ModerateReview approves or rejects a pending review
// PUT /api/v1/admin/reviews/:id
func (h *AdminHandler) ModerateReview(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "status is required"})
		return
	}

	if err := h.adminService.ModerateReview(c.Param("id"), models.ReviewStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review updated"})
}
