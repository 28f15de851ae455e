package auth

import "github.com/mmynk/hotelbilling/internal/models"

// Routes the gate redirects to.
const (
	RouteLogin   = "/"
	RouteLanding = "/tables"
)

// Decision is the outcome of a capability check.
// When Allowed is false, Redirect names where the actor should be sent.
type Decision struct {
	Allowed  bool
	Redirect string
}

// RequireAuthenticated passes iff a session identity is set.
func RequireAuthenticated(session *models.Session) Decision {
	if session == nil {
		return Decision{Redirect: RouteLogin}
	}
	return Decision{Allowed: true}
}

// RequireAdmin passes iff a session is set and carries the admin role.
// Authenticated non-admins go to the landing page, not back to login.
func RequireAdmin(session *models.Session) Decision {
	if session == nil {
		return Decision{Redirect: RouteLogin}
	}
	if !session.IsAdmin() {
		return Decision{Redirect: RouteLanding}
	}
	return Decision{Allowed: true}
}
