// Package access implements the route protection decision engine. The
// decision is pure: it depends only on the session snapshot and the route's
// requirement, never on where it is evaluated from.
package access

import "github.com/azurestay/booking-backend/internal/models"

// Outcome is the result of a guard decision
type Outcome int

const (
	// Wait means the session is still being established; hold the request
	Wait Outcome = iota
	// Allow grants access to the protected resource
	Allow
	// RedirectToLogin denies an unauthenticated request, preserving the
	// originally requested path so it can be resumed after sign-in
	RedirectToLogin
	// RedirectHome denies an authenticated request that lacks the role
	RedirectHome
)

// Session is a snapshot of the caller's authentication state
type Session struct {
	Loading       bool
	Authenticated bool
	Role          models.Role
}

// Requirement describes what a route demands of a session
type Requirement struct {
	RequireAdmin   bool
	RequireManager bool
	// AllowedRoles, when non-empty, restricts access to the listed roles
	AllowedRoles []models.Role
}

// Decision carries the outcome plus the return path for login redirects
type Decision struct {
	Outcome    Outcome
	ReturnPath string
}

// Decide evaluates a requirement against a session. Checks are ordered:
// loading short-circuits everything, authentication is checked before any
// role, admin before manager, and the manager check accepts admins. A
// requirement with no role constraints admits any authenticated session.
func Decide(session Session, req Requirement, path string) Decision {
	if session.Loading {
		return Decision{Outcome: Wait}
	}
	if !session.Authenticated {
		return Decision{Outcome: RedirectToLogin, ReturnPath: path}
	}
	if req.RequireAdmin && session.Role != models.RoleAdmin {
		return Decision{Outcome: RedirectHome}
	}
	if req.RequireManager && session.Role != models.RoleManager && session.Role != models.RoleAdmin {
		return Decision{Outcome: RedirectHome}
	}
	if len(req.AllowedRoles) > 0 && !roleAllowed(session.Role, req.AllowedRoles) {
		return Decision{Outcome: RedirectHome}
	}
	return Decision{Outcome: Allow}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
