package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRepository handles refresh token database operations. Tokens
// are stored hashed; the raw value never touches the database.
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db: db,
	}
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// StoreRefreshToken stores a refresh token with its issuing context
func (r *RefreshTokenRepository) StoreRefreshToken(userID uuid.UUID, token, ipAddress, userAgent string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, ip_address, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query, userID, hashToken(token), ipAddress, userAgent, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// IsRefreshTokenValid reports whether the token is known, unrevoked and
// unexpired.
func (r *RefreshTokenRepository) IsRefreshTokenValid(token string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM refresh_tokens
		WHERE token_hash = $1 AND revoked = FALSE AND expires_at > NOW()
	`
	if err := r.db.Get(&count, query, hashToken(token)); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return count > 0, nil
}

// RevokeRefreshToken revokes a single refresh token
func (r *RefreshTokenRepository) RevokeRefreshToken(token string) error {
	_, err := r.db.Exec(
		`UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE token_hash = $1`,
		hashToken(token), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes every refresh token a user holds
func (r *RefreshTokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	_, err := r.db.Exec(
		`UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE user_id = $1 AND revoked = FALSE`,
		userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}
