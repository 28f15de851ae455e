package billing

import (
	"fmt"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/models"
)

// storedUser is a user record as it may appear in storage. Accounts written
// before passwords were hashed carry the plaintext under "password".
type storedUser struct {
	models.User
	Password string `json:"password,omitempty"`
}

// migrateUsers converts stored records into users, hashing plaintext
// passwords and dropping the plaintext field. It returns how many records
// were rewritten.
func migrateUsers(stored []storedUser, cost int) ([]models.User, int, error) {
	users := make([]models.User, 0, len(stored))
	migrated := 0
	for _, su := range stored {
		u := su.User
		if su.Password != "" {
			if u.PasswordHash == "" {
				hash, err := auth.HashPassword(su.Password, cost)
				if err != nil {
					return nil, 0, fmt.Errorf("failed to hash stored password for %s: %w", u.ID, err)
				}
				u.PasswordHash = hash
			}
			migrated++
		}
		users = append(users, u)
	}
	return users, migrated, nil
}
