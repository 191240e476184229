package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/utils"
	"github.com/google/uuid"
)

// AuditService handles audit logging for security and booking events
type AuditService struct {
	db      database.DB
	enabled bool
}

// NewAuditService creates a new audit service
func NewAuditService(db database.DB, enabled bool) *AuditService {
	return &AuditService{
		db:      db,
		enabled: enabled,
	}
}

// AuditEvent represents an event to be logged
type AuditEvent struct {
	UserID     *uuid.UUID // nil for pre-authentication events
	Action     string     // e.g. "login", "signup", "booking_created"
	EntityType string     // e.g. "user", "booking", "room"
	EntityID   *string
	IPAddress  string
	UserAgent  string
	Details    map[string]interface{}
}

// LogSignup logs an account creation attempt
func (s *AuditService) LogSignup(userID *uuid.UUID, email, ipAddress, userAgent string, success bool, reason string) error {
	details := map[string]interface{}{
		"email":       email,
		"success":     success,
		"device_info": utils.ParseUserAgent(userAgent),
	}
	if reason != "" {
		details["reason"] = reason
	}

	return s.logEvent(AuditEvent{
		UserID:     userID,
		Action:     "signup",
		EntityType: "user",
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details:    details,
	})
}

// LogLogin logs a login attempt, successful or not
func (s *AuditService) LogLogin(userID *uuid.UUID, email, ipAddress, userAgent string, success bool, failureReason string) error {
	details := map[string]interface{}{
		"email":       email,
		"success":     success,
		"device_info": utils.ParseUserAgent(userAgent),
	}
	if !success && failureReason != "" {
		details["failure_reason"] = failureReason
	}

	action := "login_failed"
	if success {
		action = "login"
	}

	return s.logEvent(AuditEvent{
		UserID:     userID,
		Action:     action,
		EntityType: "user",
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details:    details,
	})
}

// LogLogout logs a logout event
func (s *AuditService) LogLogout(userID uuid.UUID, ipAddress, userAgent string, logoutAll bool) error {
	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     "logout",
		EntityType: "user",
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details: map[string]interface{}{
			"logout_all":  logoutAll,
			"device_info": utils.ParseUserAgent(userAgent),
		},
	})
}

// LogTokenRefresh logs a refresh token usage event
func (s *AuditService) LogTokenRefresh(userID uuid.UUID, ipAddress, userAgent string, success bool) error {
	action := "token_refresh_failed"
	if success {
		action = "token_refresh_success"
	}

	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     action,
		EntityType: "token",
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details: map[string]interface{}{
			"success":     success,
			"device_info": utils.ParseUserAgent(userAgent),
		},
	})
}

// LogBookingCreated logs a confirmed checkout
func (s *AuditService) LogBookingCreated(userID uuid.UUID, bookingID, roomID string, total float64, ipAddress, userAgent string) error {
	return s.logEvent(AuditEvent{
		UserID:     &userID,
		Action:     "booking_created",
		EntityType: "booking",
		EntityID:   &bookingID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details: map[string]interface{}{
			"room_id": roomID,
			"total":   total,
		},
	})
}

// LogBookingStatusChange logs a staff-initiated status transition
func (s *AuditService) LogBookingStatusChange(actorID uuid.UUID, bookingID, from, to, ipAddress, userAgent string) error {
	return s.logEvent(AuditEvent{
		UserID:     &actorID,
		Action:     "booking_status_change",
		EntityType: "booking",
		EntityID:   &bookingID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details: map[string]interface{}{
			"from": from,
			"to":   to,
		},
	})
}

// LogRateLimitViolation logs a rate limit violation event
func (s *AuditService) LogRateLimitViolation(identifier, ipAddress, userAgent, limitType string, retryAfter time.Time) error {
	return s.logEvent(AuditEvent{
		Action:     "rate_limit_violation",
		EntityType: "rate_limit",
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Details: map[string]interface{}{
			"identifier":  identifier,
			"limit_type":  limitType, // "account" or "ip"
			"retry_after": retryAfter,
			"device_info": utils.ParseUserAgent(userAgent),
		},
	})
}

// logEvent is the internal method that writes to the audit_logs table
func (s *AuditService) logEvent(event AuditEvent) error {
	if !s.enabled {
		return nil
	}

	detailsJSON, err := json.Marshal(event.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err = s.db.Exec(
		query,
		event.UserID,
		event.Action,
		event.EntityType,
		event.EntityID,
		event.IPAddress,
		event.UserAgent,
		detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}

	return nil
}

// GetRecentEvents retrieves recent audit events for a user
func (s *AuditService) GetRecentEvents(userID uuid.UUID, limit int) ([]map[string]interface{}, error) {
	query := `
		SELECT action, entity_type, ip_address, user_agent, details, created_at
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}
	defer rows.Close()

	events := []map[string]interface{}{}
	for rows.Next() {
		var action, entityType, ipAddress, userAgent string
		var detailsJSON []byte
		var createdAt time.Time

		if err := rows.Scan(&action, &entityType, &ipAddress, &userAgent, &detailsJSON, &createdAt); err != nil {
			continue
		}

		var details map[string]interface{}
		_ = json.Unmarshal(detailsJSON, &details)

		events = append(events, map[string]interface{}{
			"action":      action,
			"entity_type": entityType,
			"ip_address":  ipAddress,
			"user_agent":  userAgent,
			"details":     details,
			"created_at":  createdAt,
		})
	}

	return events, nil
}

// GetRecentActivity retrieves the most recent audit events across all users
func (s *AuditService) GetRecentActivity(limit int) ([]map[string]interface{}, error) {
	query := `
		SELECT user_id, action, entity_type, ip_address, user_agent, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %w", err)
	}
	defer rows.Close()

	events := []map[string]interface{}{}
	for rows.Next() {
		var userID uuid.NullUUID
		var action, entityType, ipAddress, userAgent string
		var detailsJSON []byte
		var createdAt time.Time

		if err := rows.Scan(&userID, &action, &entityType, &ipAddress, &userAgent, &detailsJSON, &createdAt); err != nil {
			continue
		}

		var details map[string]interface{}
		_ = json.Unmarshal(detailsJSON, &details)

		var actor interface{}
		if userID.Valid {
			actor = userID.UUID
		}

		events = append(events, map[string]interface{}{
			"user_id":     actor,
			"action":      action,
			"entity_type": entityType,
			"ip_address":  ipAddress,
			"user_agent":  userAgent,
			"details":     details,
			"created_at":  createdAt,
		})
	}

	return events, nil
}

// CleanupOldAuditLogs removes audit logs older than the specified duration
func (s *AuditService) CleanupOldAuditLogs(olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)

	result, err := s.db.Exec(`DELETE FROM audit_logs WHERE created_at < $1`, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old audit logs: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
