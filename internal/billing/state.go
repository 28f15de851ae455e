// Package billing owns the in-memory billing state and every operation that
// mutates it: opening and finalizing bills, editing bill lines, and managing
// the menu, tables, waiters and user accounts.
//
// State is the single owner of the five collections. All mutation goes
// through its methods, which hold one write lock for the whole operation, so
// compound changes such as opening a bill (bills + tables) are never
// observable half-done. After each mutation the touched collections are
// encoded and handed to a Persister.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/hotelbilling/internal/metrics"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/internal/storage"
)

// Persister receives encoded collection snapshots after every mutation.
// persist.Writer is the production implementation.
type Persister interface {
	Enqueue(key string, value []byte)
}

// State holds the billing collections and the current session identity.
type State struct {
	mu sync.RWMutex

	menu    []models.MenuItem
	tables  []models.Table
	waiters []models.Waiter
	users   []models.User
	bills   []models.Bill // newest first
	session *models.Session

	lastBillSeq uint64

	// unreadable holds keys whose startup read failed; they are never saved.
	unreadable map[string]bool

	persister    Persister
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
	passwordCost int
}

// Option configures a State.
type Option func(*State)

// WithPersister sets where snapshots go. Without one the state is memory-only.
func WithPersister(p Persister) Option {
	return func(s *State) { s.persister = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *State) { s.metrics = m }
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithClock overrides time.Now for bill timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithPasswordCost sets the bcrypt cost for new passwords.
func WithPasswordCost(cost int) Option {
	return func(s *State) { s.passwordCost = cost }
}

// Open loads every collection from store, falling back to the seed data for
// any key that is missing or malformed. store may be nil for a memory-only
// state. After loading, all collections are handed to the persister once so
// the store holds a complete snapshot.
//
// A key whose read fails outright is served from the seed data in memory but
// is never written back, so a store that is briefly unavailable cannot have
// its data replaced by defaults.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*State, error) {
	s := &State{
		logger:       slog.Default(),
		now:          time.Now,
		passwordCost: bcrypt.DefaultCost,
		unreadable:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	if store == nil {
		store = emptyStore{}
	}

	s.menu = loadCollection(ctx, s, store, storage.KeyMenu, defaultMenu())
	s.tables = loadCollection(ctx, s, store, storage.KeyTables, defaultTables())
	s.waiters = loadCollection(ctx, s, store, storage.KeyWaiters, defaultWaiters())
	s.bills = loadCollection(ctx, s, store, storage.KeyBills, []models.Bill{})

	users, err := s.loadUsers(ctx, store)
	if err != nil {
		return nil, err
	}
	s.users = users

	open := 0
	for _, bill := range s.bills {
		if seq, ok := billSeq(bill.ID); ok && seq > s.lastBillSeq {
			s.lastBillSeq = seq
		}
		if bill.Open() {
			open++
		}
	}
	s.metrics.SetOpenBills(open)

	s.mu.Lock()
	s.persistLocked(storage.Keys...)
	s.mu.Unlock()

	s.logger.Info("Billing state loaded",
		"menu_items", len(s.menu),
		"tables", len(s.tables),
		"waiters", len(s.waiters),
		"users", len(s.users),
		"bills", len(s.bills),
		"open_bills", open,
	)
	return s, nil
}

func loadCollection[T any](ctx context.Context, s *State, store storage.Store, key string, fallback []T) []T {
	v, err := storage.LoadJSON(ctx, store, key, fallback)
	if err != nil {
		s.loadFailed(key, err)
	}
	if v == nil {
		return []T{}
	}
	return v
}

// loadUsers loads the accounts, hashing any plaintext passwords left by older
// data. An absent, malformed or empty list is replaced by the seed accounts so
// an admin can always sign in.
func (s *State) loadUsers(ctx context.Context, store storage.Store) ([]models.User, error) {
	stored, err := storage.LoadJSON[[]storedUser](ctx, store, storage.KeyUsers, nil)
	if err != nil {
		s.loadFailed(storage.KeyUsers, err)
		return defaultUsers(s.passwordCost)
	}
	if len(stored) == 0 {
		s.logger.Warn("No user accounts stored, using defaults", "key", storage.KeyUsers)
		return defaultUsers(s.passwordCost)
	}

	users, migrated, err := migrateUsers(stored, s.passwordCost)
	if err != nil {
		return nil, err
	}
	if migrated > 0 {
		s.logger.Info("Migrated plaintext passwords", "key", storage.KeyUsers, "users", migrated)
	}
	return users, nil
}

// loadFailed logs why key fell back to defaults. Read failures other than a
// missing or malformed value mark the key unreadable.
func (s *State) loadFailed(key string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("Collection not stored yet, using defaults", "key", key)
	case errors.Is(err, storage.ErrMalformed):
		s.logger.Warn("Collection malformed, using defaults", "key", key, "error", err)
	default:
		s.unreadable[key] = true
		s.logger.Warn("Collection unreadable, using defaults in memory only", "key", key, "error", err)
	}
}

// persistLocked encodes the named collections and hands them to the persister.
// Keys that could not be read at startup are skipped. Callers must hold s.mu.
func (s *State) persistLocked(keys ...string) {
	if s.persister == nil {
		return
	}
	for _, key := range keys {
		if s.unreadable[key] {
			continue
		}

		var v any
		switch key {
		case storage.KeyMenu:
			v = s.menu
		case storage.KeyTables:
			v = s.tables
		case storage.KeyWaiters:
			v = s.waiters
		case storage.KeyUsers:
			v = s.users
		case storage.KeyBills:
			v = s.bills
		default:
			continue
		}

		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("Failed to encode snapshot", "key", key, "error", err)
			continue
		}
		s.persister.Enqueue(key, data)
	}
}

// billSeq extracts the numeric suffix from a bill ID like "B42".
func billSeq(id string) (uint64, bool) {
	digits, ok := strings.CutPrefix(id, "B")
	if !ok {
		return 0, false
	}
	seq, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// nextBillIDLocked returns a bill ID greater than any issued or loaded so far.
func (s *State) nextBillIDLocked() string {
	s.lastBillSeq++
	return "B" + strconv.FormatUint(s.lastBillSeq, 10)
}

// Read accessors. Each returns a copy that callers may keep or modify.

// Menu returns the menu items in insertion order.
func (s *State) Menu() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuItem(nil), s.menu...)
}

// MenuItem returns one menu item.
func (s *State) MenuItem(id string) (models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.menuIndex(id)
	if i < 0 {
		return models.MenuItem{}, ErrMenuItemNotFound
	}
	return s.menu[i], nil
}

// Tables returns all tables.
func (s *State) Tables() []models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Table(nil), s.tables...)
}

// Table returns one table.
func (s *State) Table(id string) (models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.tableIndex(id)
	if i < 0 {
		return models.Table{}, ErrTableNotFound
	}
	return s.tables[i], nil
}

// Waiters returns all waiters.
func (s *State) Waiters() []models.Waiter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Waiter(nil), s.waiters...)
}

// Users returns all user accounts, password hashes included.
func (s *State) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// Bills returns every bill, newest first.
func (s *State) Bills() []models.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Bill, len(s.bills))
	for i, bill := range s.bills {
		out[i] = bill.Clone()
	}
	return out
}

// OpenBills returns the bills that are not yet paid, newest first.
func (s *State) OpenBills() []models.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Bill
	for _, bill := range s.bills {
		if bill.Open() {
			out = append(out, bill.Clone())
		}
	}
	return out
}

// Bill returns one bill.
func (s *State) Bill(id string) (models.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.billIndex(id)
	if i < 0 {
		return models.Bill{}, ErrBillNotFound
	}
	return s.bills[i].Clone(), nil
}

func (s *State) menuIndex(id string) int {
	for i := range s.menu {
		if s.menu[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) tableIndex(id string) int {
	for i := range s.tables {
		if s.tables[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) billIndex(id string) int {
	for i := range s.bills {
		if s.bills[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) userIndex(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

// emptyStore stands in for a nil store: every key is missing.
type emptyStore struct{}

func (emptyStore) Load(context.Context, string) ([]byte, error) { return nil, storage.ErrNotFound }
func (emptyStore) Save(context.Context, string, []byte) error   { return nil }
func (emptyStore) Close() error                                 { return nil }
