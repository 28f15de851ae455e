package billing

import (
	"context"
	"strings"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/models"
)

var _ auth.Authenticator = (*State)(nil)

// Authenticate matches a user id and password against the users collection.
// It does not change the current session.
func (s *State) Authenticate(_ context.Context, userID, password string) (*models.Session, error) {
	if strings.TrimSpace(userID) == "" || password == "" {
		s.metrics.LoginAttempt(false)
		return nil, auth.ErrInvalidCredentials
	}

	s.mu.RLock()
	i := s.userIndex(userID)
	var user models.User
	if i >= 0 {
		user = s.users[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		s.metrics.LoginAttempt(false)
		s.logger.Warn("Login failed", "user_id", userID, "reason", "unknown user")
		return nil, auth.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.metrics.LoginAttempt(false)
		s.logger.Warn("Login failed", "user_id", userID, "reason", "password mismatch")
		return nil, err
	}

	s.metrics.LoginAttempt(true)
	session := models.SessionFor(user)
	return &session, nil
}

// Login authenticates and makes the user the current session identity.
func (s *State) Login(ctx context.Context, userID, password string) (models.Session, error) {
	session, err := s.Authenticate(ctx, userID, password)
	if err != nil {
		return models.Session{}, err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.logger.Info("User logged in", "user_id", session.ID, "role", session.Role)
	return *session, nil
}

// Logout clears the current session identity.
func (s *State) Logout() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// Session returns the current session identity, if any.
func (s *State) Session() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

// RequireAuthenticated applies the authenticated-only gate to the current session.
func (s *State) RequireAuthenticated() auth.Decision {
	return auth.RequireAuthenticated(s.currentSession())
}

// RequireAdmin applies the admin-only gate to the current session.
func (s *State) RequireAdmin() auth.Decision {
	return auth.RequireAdmin(s.currentSession())
}

func (s *State) currentSession() *models.Session {
	if session, ok := s.Session(); ok {
		return &session
	}
	return nil
}
