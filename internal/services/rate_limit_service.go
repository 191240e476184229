package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/database"
)

// RateLimitService throttles credential-guessing on the auth endpoints.
// Limits are tracked per account email and per source IP; both must be
// under their threshold for a request to pass.
type RateLimitService struct {
	db database.DB
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(db database.DB) *RateLimitService {
	return &RateLimitService{
		db: db,
	}
}

// LoginRateLimits holds the per-account and per-IP thresholds
type LoginRateLimits struct {
	MaxAccountAttempts int
	AccountWindow      time.Duration
	MaxIPAttempts      int
	IPWindow           time.Duration
}

// DefaultLoginRateLimits returns the default thresholds
func DefaultLoginRateLimits() LoginRateLimits {
	return LoginRateLimits{
		MaxAccountAttempts: 5,
		AccountWindow:      15 * time.Minute,
		MaxIPAttempts:      20,
		IPWindow:           1 * time.Hour,
	}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string // "account" or "ip"
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// CheckLoginRateLimit checks if an account or IP has exceeded the limits
func (s *RateLimitService) CheckLoginRateLimit(email, ip string) error {
	limits := DefaultLoginRateLimits()

	if email != "" {
		count, lastAttempt, err := s.getAttemptCount(email, "account", limits.AccountWindow)
		if err != nil {
			return fmt.Errorf("failed to check account rate limit: %w", err)
		}
		if count >= limits.MaxAccountAttempts {
			retryAfter := lastAttempt.Add(limits.AccountWindow)
			return &RateLimitError{
				Message:    fmt.Sprintf("Too many sign-in attempts for this account. Please try again after %s", retryAfter.Format("15:04:05")),
				RetryAfter: retryAfter,
				Type:       "account",
			}
		}
	}

	if ip != "" {
		count, lastAttempt, err := s.getAttemptCount(ip, "ip", limits.IPWindow)
		if err != nil {
			return fmt.Errorf("failed to check IP rate limit: %w", err)
		}
		if count >= limits.MaxIPAttempts {
			retryAfter := lastAttempt.Add(limits.IPWindow)
			return &RateLimitError{
				Message:    fmt.Sprintf("Too many sign-in attempts from this address. Please try again after %s", retryAfter.Format("15:04:05")),
				RetryAfter: retryAfter,
				Type:       "ip",
			}
		}
	}

	return nil
}

// getAttemptCount gets the number of attempts within the time window
func (s *RateLimitService) getAttemptCount(identifier, identifierType string, window time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Add(-window)

	query := `
		SELECT COUNT(*), COALESCE(MAX(created_at), NOW())
		FROM auth_rate_limits
		WHERE identifier = $1
		  AND identifier_type = $2
		  AND created_at > $3
	`

	var count int
	var lastAttempt time.Time

	err := s.db.QueryRow(query, identifier, identifierType, windowStart).Scan(&count, &lastAttempt)
	if err != nil && err != sql.ErrNoRows {
		return 0, time.Time{}, err
	}

	return count, lastAttempt, nil
}

// RecordLoginAttempt records a failed sign-in for rate limiting. Successful
// sign-ins are not recorded, so legitimate users never accumulate strikes.
func (s *RateLimitService) RecordLoginAttempt(email, ip string) error {
	if email != "" {
		if err := s.recordAttempt(email, "account"); err != nil {
			return fmt.Errorf("failed to record account attempt: %w", err)
		}
	}

	if ip != "" {
		if err := s.recordAttempt(ip, "ip"); err != nil {
			return fmt.Errorf("failed to record IP attempt: %w", err)
		}
	}

	return nil
}

// recordAttempt inserts a rate limit record
func (s *RateLimitService) recordAttempt(identifier, identifierType string) error {
	query := `
		INSERT INTO auth_rate_limits (identifier, identifier_type, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.Exec(query, identifier, identifierType)
	return err
}

// CleanupExpiredRateLimits removes attempt records past the longest window
func (s *RateLimitService) CleanupExpiredRateLimits() (int64, error) {
	limits := DefaultLoginRateLimits()

	maxWindow := limits.IPWindow
	if limits.AccountWindow > maxWindow {
		maxWindow = limits.AccountWindow
	}

	cutoffTime := time.Now().Add(-maxWindow)

	result, err := s.db.Exec(`DELETE FROM auth_rate_limits WHERE created_at < $1`, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup rate limits: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// IsRateLimited checks if an identifier is currently rate limited
func (s *RateLimitService) IsRateLimited(identifier, identifierType string) (bool, time.Time, error) {
	limits := DefaultLoginRateLimits()

	window := limits.AccountWindow
	maxAttempts := limits.MaxAccountAttempts
	if identifierType == "ip" {
		window = limits.IPWindow
		maxAttempts = limits.MaxIPAttempts
	}

	count, lastAttempt, err := s.getAttemptCount(identifier, identifierType, window)
	if err != nil {
		return false, time.Time{}, err
	}

	if count >= maxAttempts {
		return true, lastAttempt.Add(window), nil
	}

	return false, time.Time{}, nil
}
