package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/azurestay/booking-backend/internal/database"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/pkg/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login failure that should not
// reveal whether the email exists.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// ErrAccountInactive is returned when a deactivated account attempts to
// sign in or refresh a session.
var ErrAccountInactive = fmt.Errorf("this account has been deactivated")

// ErrInvalidRefreshToken is returned when a refresh token fails validation
// or has already been revoked.
var ErrInvalidRefreshToken = fmt.Errorf("invalid or expired refresh token")

// AuthService handles authentication business logic
type AuthService struct {
	userRepo           *database.UserRepository
	refreshTokenRepo   *database.RefreshTokenRepository
	jwtService         *jwt.Service
	audit              *AuditService
	bcryptCost         int
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	logger             *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo *database.UserRepository,
	refreshTokenRepo *database.RefreshTokenRepository,
	jwtService *jwt.Service,
	audit *AuditService,
	bcryptCost int,
	accessTokenExpiry time.Duration,
	refreshTokenExpiry time.Duration,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:           userRepo,
		refreshTokenRepo:   refreshTokenRepo,
		jwtService:         jwtService,
		audit:              audit,
		bcryptCost:         bcryptCost,
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
		logger:             logger,
	}
}

// Signup registers a new customer account and signs it in. Every
// self-registered account starts as a customer; elevated roles are only
// assigned later through user management.
func (s *AuthService) Signup(req *models.SignupRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.CreateUser(email, string(hash), req.FirstName, req.LastName, req.Phone)
	if err != nil {
		_ = s.audit.LogSignup(nil, email, ipAddress, userAgent, false, err.Error())
		return nil, err
	}

	_ = s.audit.LogSignup(&user.ID, email, ipAddress, userAgent, true, "")
	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("New account registered")

	return s.issueTokens(user, ipAddress, userAgent)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		_ = s.audit.LogLogin(nil, email, ipAddress, userAgent, false, "unknown email")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		_ = s.audit.LogLogin(&user.ID, email, ipAddress, userAgent, false, "account disabled")
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		_ = s.audit.LogLogin(&user.ID, email, ipAddress, userAgent, false, "wrong password")
		return nil, ErrInvalidCredentials
	}

	_ = s.audit.LogLogin(&user.ID, email, ipAddress, userAgent, true, "")

	return s.issueTokens(user, ipAddress, userAgent)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// refresh token is revoked so each token can only be used once.
func (s *AuthService) Refresh(refreshToken, ipAddress, userAgent string) (*models.AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	valid, err := s.refreshTokenRepo.IsRefreshTokenValid(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify refresh token: %w", err)
	}
	if !valid {
		_ = s.audit.LogTokenRefresh(claims.UserID, ipAddress, userAgent, false)
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.refreshTokenRepo.RevokeRefreshToken(refreshToken); err != nil {
		s.logger.WithError(err).Warn("Failed to revoke used refresh token")
	}

	_ = s.audit.LogTokenRefresh(user.ID, ipAddress, userAgent, true)

	return s.issueTokens(user, ipAddress, userAgent)
}

// Logout revokes a single refresh token
func (s *AuthService) Logout(userID uuid.UUID, refreshToken, ipAddress, userAgent string) error {
	if err := s.refreshTokenRepo.RevokeRefreshToken(refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	_ = s.audit.LogLogout(userID, ipAddress, userAgent, false)
	return nil
}

// LogoutAll revokes every refresh token the user holds
func (s *AuthService) LogoutAll(userID uuid.UUID, ipAddress, userAgent string) error {
	if err := s.refreshTokenRepo.RevokeAllForUser(userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	_ = s.audit.LogLogout(userID, ipAddress, userAgent, true)
	return nil
}

// GetProfile retrieves the current user's profile
func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}

// UpdateProfile applies a partial profile update and returns the new state
func (s *AuthService) UpdateProfile(userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.userRepo.UpdateProfile(userID, req.FirstName, req.LastName, req.Phone)
}

// issueTokens generates and stores a token pair for the user
func (s *AuthService) issueTokens(user *models.User, ipAddress, userAgent string) (*models.AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.refreshTokenExpiry)
	if err := s.refreshTokenRepo.StoreRefreshToken(user.ID, refreshToken, ipAddress, userAgent, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTokenExpiry.Seconds()),
	}, nil
}
