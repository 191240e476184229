package handlers

import (
	"net/http"

	"github.com/azurestay/booking-backend/internal/middleware"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/azurestay/booking-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles checkout and the customer's booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Checkout converts the draft into a confirmed booking
// POST /api/v1/booking/checkout
func (h *BookingHandler) Checkout(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var form models.PaymentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "All payment fields are required"})
		return
	}

	booking, err := h.bookingService.Checkout(c.Request.Context(), userCtx.UserID, &form, utils.GetRealIP(c), utils.GetUserAgent(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings returns the user's bookings, newest first
// GET /api/v1/bookings
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	bookings, err := h.bookingService.GetUserBookings(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// GetBooking returns one booking with its room populated
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingService.GetBooking(c.Param("id"), userCtx.UserID, userCtx.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking cancels the user's own booking
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	booking, err := h.bookingService.Cancel(userCtx.UserID, c.Param("id"), utils.GetRealIP(c), utils.GetUserAgent(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
