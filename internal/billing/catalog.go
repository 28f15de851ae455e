package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/internal/storage"
)

func validateMenuItem(item models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return ErrNameRequired
	}
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	if item.GST < 0 || item.GST >= 1 {
		return ErrInvalidGST
	}
	return nil
}

// AddMenuItem appends an item to the menu. An empty ID is generated.
func (s *State) AddMenuItem(item models.MenuItem) (models.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if err := validateMenuItem(item); err != nil {
		return models.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = "m-" + uuid.NewString()
	} else if s.menuIndex(item.ID) >= 0 {
		return models.MenuItem{}, fmt.Errorf("%w: menu item %s", ErrDuplicateID, item.ID)
	}

	s.menu = append(s.menu, item)
	s.persistLocked(storage.KeyMenu)
	s.logger.Info("Menu item added", "item_id", item.ID, "name", item.Name, "price", item.Price, "gst", item.GST)
	return item, nil
}

// UpdateMenuItem merges patch into an existing item.
// Bills that already carry the item keep their snapshot.
func (s *State) UpdateMenuItem(id string, patch models.MenuItemPatch) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.menuIndex(id)
	if i < 0 {
		return models.MenuItem{}, fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}

	updated := patch.Apply(s.menu[i])
	updated.Name = strings.TrimSpace(updated.Name)
	if err := validateMenuItem(updated); err != nil {
		return models.MenuItem{}, err
	}

	s.menu[i] = updated
	s.persistLocked(storage.KeyMenu)
	s.logger.Info("Menu item updated", "item_id", id)
	return updated, nil
}

// DeleteMenuItem removes an item from the menu.
// Bill lines copied from it are unaffected.
func (s *State) DeleteMenuItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.menuIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}

	s.menu = append(s.menu[:i:i], s.menu[i+1:]...)
	s.persistLocked(storage.KeyMenu)
	s.logger.Info("Menu item deleted", "item_id", id)
	return nil
}

// AddTable creates a free table. IDs continue from the largest existing
// "T<n>", so they stay unique however tables were added before.
func (s *State) AddTable(name string) (models.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Table{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var highest uint64
	for _, t := range s.tables {
		digits, ok := strings.CutPrefix(t.ID, "T")
		if !ok {
			continue
		}
		if n, err := strconv.ParseUint(digits, 10, 64); err == nil && n > highest {
			highest = n
		}
	}

	table := models.Table{ID: "T" + strconv.FormatUint(highest+1, 10), Name: name}
	s.tables = append(s.tables, table)
	s.persistLocked(storage.KeyTables)
	s.logger.Info("Table added", "table_id", table.ID, "name", name)
	return table, nil
}

// AddWaiter adds a waiter.
func (s *State) AddWaiter(name string) (models.Waiter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Waiter{}, ErrNameRequired
	}

	waiter := models.Waiter{ID: "w-" + uuid.NewString(), Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.waiters = append(s.waiters, waiter)
	s.persistLocked(storage.KeyWaiters)
	s.logger.Info("Waiter added", "waiter_id", waiter.ID, "name", name)
	return waiter, nil
}

// Result is the {ok, message} outcome of AddUserResult.
type Result struct {
	OK      bool
	Message string
}

// AddUser creates a login account. A taken id fails with ErrDuplicateUser
// and leaves the users collection untouched.
func (s *State) AddUser(nu models.NewUser) error {
	if strings.TrimSpace(nu.ID) == "" || strings.TrimSpace(nu.Name) == "" || nu.Password == "" {
		return ErrUserFieldsRequired
	}
	if !nu.Role.Valid() {
		return ErrInvalidRole
	}

	s.mu.RLock()
	taken := s.userIndex(nu.ID) >= 0
	s.mu.RUnlock()
	if taken {
		return ErrDuplicateUser
	}

	hash, err := auth.HashPassword(nu.Password, s.passwordCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Checked again: another caller may have added the id while hashing.
	if s.userIndex(nu.ID) >= 0 {
		return ErrDuplicateUser
	}

	s.users = append(s.users, models.User{ID: nu.ID, Name: nu.Name, Role: nu.Role, PasswordHash: hash})
	s.persistLocked(storage.KeyUsers)
	s.logger.Info("User added", "user_id", nu.ID, "role", nu.Role)
	return nil
}

// AddUserResult is AddUser reporting failure as a value.
func (s *State) AddUserResult(nu models.NewUser) Result {
	if err := s.AddUser(nu); err != nil {
		return Result{OK: false, Message: err.Error()}
	}
	return Result{OK: true}
}
