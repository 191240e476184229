package handlers

import (
	"net/http"

	"github.com/azurestay/booking-backend/internal/middleware"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// DraftHandler exposes the booking draft endpoints. Every mutation returns
// the full draft with recomputed pricing, so the client never does money
// math on its own.
type DraftHandler struct {
	draftService *services.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *services.DraftService) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
	}
}

// GetDraft returns the user's current draft
// GET /api/v1/booking/draft
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	view, err := h.draftService.GetDraft(c.Request.Context(), userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SelectRoom puts a room into the draft
// PUT /api/v1/booking/draft/room
func (h *DraftHandler) SelectRoom(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req struct {
		RoomID string `json:"room_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "room_id is required"})
		return
	}

	view, err := h.draftService.SelectRoom(c.Request.Context(), userCtx.UserID, req.RoomID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetDates sets the stay dates and guest count
// PUT /api/v1/booking/draft/dates
func (h *DraftHandler) SetDates(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req struct {
		CheckIn  string `json:"check_in" binding:"required"`
		CheckOut string `json:"check_out" binding:"required"`
		Guests   int    `json:"guests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "check_in, check_out and guests are required"})
		return
	}

	view, err := h.draftService.SetDates(c.Request.Context(), userCtx.UserID, req.CheckIn, req.CheckOut, req.Guests)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddExtra merges an add-on into the draft
// POST /api/v1/booking/draft/extras
func (h *DraftHandler) AddExtra(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req struct {
		ExtraID  string `json:"extra_id" binding:"required"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "extra_id is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.draftService.AddExtra(c.Request.Context(), userCtx.UserID, req.ExtraID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateExtraQuantity sets the quantity of an add-on line
// PUT /api/v1/booking/draft/extras/:id
func (h *DraftHandler) UpdateExtraQuantity(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "quantity is required"})
		return
	}

	view, err := h.draftService.UpdateExtraQuantity(c.Request.Context(), userCtx.UserID, c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveExtra deletes an add-on line
// DELETE /api/v1/booking/draft/extras/:id
func (h *DraftHandler) RemoveExtra(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	view, err := h.draftService.RemoveExtra(c.Request.Context(), userCtx.UserID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetGuestInfo replaces the guest contact details
// PUT /api/v1/booking/draft/guest
func (h *DraftHandler) SetGuestInfo(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var info models.GuestInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	view, err := h.draftService.SetGuestInfo(c.Request.Context(), userCtx.UserID, info)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ApplyPromo applies a promo code to the draft
// POST /api/v1/booking/draft/promo
func (h *DraftHandler) ApplyPromo(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "code is required"})
		return
	}

	view, err := h.draftService.ApplyPromo(c.Request.Context(), userCtx.UserID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ClearPromo removes the promo code from the draft
// DELETE /api/v1/booking/draft/promo
func (h *DraftHandler) ClearPromo(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	view, err := h.draftService.ClearPromo(c.Request.Context(), userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetStep jumps to an explicit flow step
// PUT /api/v1/booking/draft/step
func (h *DraftHandler) SetStep(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "step is required"})
		return
	}

	view, err := h.draftService.SetStep(c.Request.Context(), userCtx.UserID, req.Step)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// NextStep advances the flow by one step
// POST /api/v1/booking/draft/step/next
func (h *DraftHandler) NextStep(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	view, err := h.draftService.NextStep(c.Request.Context(), userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// PreviousStep moves the flow back by one step
// POST /api/v1/booking/draft/step/previous
func (h *DraftHandler) PreviousStep(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	view, err := h.draftService.PreviousStep(c.Request.Context(), userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ClearDraft resets the draft to its initial state
// DELETE /api/v1/booking/draft
func (h *DraftHandler) ClearDraft(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	if err := h.draftService.ClearDraft(c.Request.Context(), userCtx.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
}
