package auth

import (
	"context"

	"github.com/mmynk/hotelbilling/internal/models"
)

// Authenticator defines the interface for credential checks.
// This abstraction keeps the RPC layer independent of where users live.
type Authenticator interface {
	// Authenticate verifies the user's credentials and returns the session
	// identity if successful. Returns ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, userID, credential string) (*models.Session, error)
}
