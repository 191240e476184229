package handlers

import (
	"net/http"
	"strconv"

	"github.com/azurestay/booking-backend/internal/middleware"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/azurestay/booking-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles signup, login and session endpoints
type AuthHandler struct {
	authService  *services.AuthService
	rateLimiter  *services.RateLimitService
	auditService *services.AuditService
	logger       *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *services.AuthService,
	rateLimiter *services.RateLimitService,
	auditService *services.AuditService,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		rateLimiter:  rateLimiter,
		auditService: auditService,
		logger:       logger,
	}
}

// Signup registers a new customer account
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	resp, err := h.authService.Signup(&req, utils.GetRealIP(c), utils.GetUserAgent(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a user
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	ip := utils.GetRealIP(c)
	userAgent := utils.GetUserAgent(c)

	if err := h.rateLimiter.CheckLoginRateLimit(req.Email, ip); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.authService.Login(&req, ip, userAgent)
	if err != nil {
		// Only failed attempts count against the limit
		if recordErr := h.rateLimiter.RecordLoginAttempt(req.Email, ip); recordErr != nil {
			h.logger.WithError(recordErr).Warn("Failed to record login attempt")
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// refreshRequest carries the refresh token in the request body
type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "refresh_token is required"})
		return
	}

	resp, err := h.authService.Refresh(req.RefreshToken, utils.GetRealIP(c), utils.GetUserAgent(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented refresh token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "refresh_token is required"})
		return
	}

	if err := h.authService.Logout(userCtx.UserID, req.RefreshToken, utils.GetRealIP(c), utils.GetUserAgent(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// LogoutAll revokes every session the user holds
// POST /api/v1/auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	if err := h.authService.LogoutAll(userCtx.UserID, utils.GetRealIP(c), utils.GetUserAgent(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out of all sessions"})
}

// GetProfile returns the authenticated user's profile
// GET /api/v1/user/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	user, err := h.authService.GetProfile(userCtx.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetActivity returns the user's own recent account activity
// GET /api/v1/user/activity
func (h *AuthHandler) GetActivity(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	events, err := h.auditService.GetRecentEvents(userCtx.UserID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// UpdateProfile applies a partial update to the user's profile
// PUT /api/v1/user/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userCtx := middleware.MustGetUserContext(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	user, err := h.authService.UpdateProfile(userCtx.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
