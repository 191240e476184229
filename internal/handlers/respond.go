package handlers

import (
	"errors"
	"net/http"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. Validation failures
// carry the offending field; precondition failures carry the step the
// client should return to.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
		return
	}

	var preconditionErr *models.PreconditionError
	if errors.As(err, &preconditionErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "precondition_failed",
			"message":     preconditionErr.Message,
			"redirect_to": preconditionErr.RedirectTo,
		})
		return
	}

	var rateLimitErr *services.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", rateLimitErr.RetryAfter.Format(http.TimeFormat))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate_limited",
			"message":     rateLimitErr.Message,
			"retry_after": rateLimitErr.RetryAfter,
		})
		return
	}

	if database.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "The requested resource was not found",
		})
		return
	}

	var duplicateErr *database.DuplicateError
	if errors.As(err, &duplicateErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "conflict",
			"message": duplicateErr.Message,
		})
		return
	}

	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": err.Error(),
		})
		return
	}

	if errors.Is(err, services.ErrAccountInactive) || errors.Is(err, services.ErrInvalidRefreshToken) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "Something went wrong. Please try again.",
	})
}
