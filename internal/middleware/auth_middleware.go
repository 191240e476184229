package middleware

import (
	"net/http"
	"strings"

	"github.com/azurestay/booking-backend/internal/access"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/azurestay/booking-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserContextKey is the key used to store user information in Gin context
const UserContextKey = "user"

// UserContext represents the authenticated user's information
type UserContext struct {
	UserID uuid.UUID   `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

// AuthMiddleware creates a middleware that validates JWT tokens. An
// unauthenticated request is rejected with the path it tried to reach, so
// the client can resume it after sign-in.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			rejectUnauthenticated(c, "Authorization header is required", "MISSING_AUTH_HEADER")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			rejectUnauthenticated(c, "Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			rejectUnauthenticated(c, "Token cannot be empty", "INVALID_AUTH_FORMAT")
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			rejectUnauthenticated(c, "Invalid or expired access token", "INVALID_TOKEN")
			return
		}

		c.Set(UserContextKey, UserContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   models.Role(claims.Role),
		})

		c.Next()
	}
}

// RequireAdmin restricts a route to admin accounts
func RequireAdmin() gin.HandlerFunc {
	return requirementMiddleware(access.Requirement{RequireAdmin: true})
}

// RequireManager restricts a route to manager accounts; admins pass too
func RequireManager() gin.HandlerFunc {
	return requirementMiddleware(access.Requirement{RequireManager: true})
}

// RequireRoles restricts a route to an explicit set of roles
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return requirementMiddleware(access.Requirement{AllowedRoles: roles})
}

// requirementMiddleware evaluates an access requirement against the
// authenticated session. Must run after AuthMiddleware.
func requirementMiddleware(req access.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		userCtx, exists := GetUserContext(c)

		session := access.Session{
			Authenticated: exists,
			Role:          userCtx.Role,
		}

		decision := access.Decide(session, req, c.Request.URL.Path)
		switch decision.Outcome {
		case access.Allow:
			c.Next()
		case access.RedirectToLogin:
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":       "unauthorized",
				"message":     "Please sign in to continue",
				"code":        "AUTH_REQUIRED",
				"redirect_to": "/login",
				"return_path": decision.ReturnPath,
			})
			c.Abort()
		default:
			c.JSON(http.StatusForbidden, gin.H{
				"error":       "forbidden",
				"message":     "You don't have permission to access this resource",
				"code":        "INSUFFICIENT_PERMISSIONS",
				"redirect_to": "/",
			})
			c.Abort()
		}
	}
}

func rejectUnauthenticated(c *gin.Context, message, code string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":       "unauthorized",
		"message":     message,
		"code":        code,
		"redirect_to": "/login",
		"return_path": c.Request.URL.Path,
	})
	c.Abort()
}

// GetUserContext retrieves the user context from Gin context
func GetUserContext(c *gin.Context) (UserContext, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return UserContext{}, false
	}

	userCtx, ok := value.(UserContext)
	if !ok {
		return UserContext{}, false
	}

	return userCtx, true
}

// MustGetUserContext retrieves the user context or panics (use only after AuthMiddleware)
func MustGetUserContext(c *gin.Context) UserContext {
	userCtx, exists := GetUserContext(c)
	if !exists {
		panic("user context not found - ensure AuthMiddleware is applied")
	}
	return userCtx
}
