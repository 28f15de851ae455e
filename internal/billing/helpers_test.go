package billing

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/hotelbilling/internal/storage"
	"github.com/mmynk/hotelbilling/internal/storage/memory"
)

// recorder is a Persister that keeps every snapshot it receives.
type recorder struct {
	mu    sync.Mutex
	keys  []string
	last  map[string][]byte
	count map[string]int
}

func newRecorder() *recorder {
	return &recorder{last: make(map[string][]byte), count: make(map[string]int)}
}

func (r *recorder) Enqueue(key string, value []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	r.last[key] = value
	r.count[key]++
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = nil
	r.count = make(map[string]int)
}

func (r *recorder) enqueued() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.keys...)
}

func decodeLast[T any](t *testing.T, r *recorder, key string) T {
	t.Helper()
	r.mu.Lock()
	data, ok := r.last[key]
	r.mu.Unlock()
	require.True(t, ok, "no snapshot for %s", key)

	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

var fixedNow = time.Date(2024, 6, 1, 19, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(extra ...Option) []Option {
	opts := []Option{
		WithLogger(quietLogger()),
		WithClock(func() time.Time { return fixedNow }),
		WithPasswordCost(bcrypt.MinCost),
	}
	return append(opts, extra...)
}

// newTestState opens a seeded state on an empty memory store.
func newTestState(t *testing.T, extra ...Option) *State {
	t.Helper()
	s, err := Open(context.Background(), memory.New(), testOptions(extra...)...)
	require.NoError(t, err)
	return s
}

// newStateOn opens a state on a store that already holds some collections.
func newStateOn(t *testing.T, seed map[string]any, extra ...Option) *State {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	for key, v := range seed {
		require.NoError(t, storage.SaveJSON(ctx, store, key, v))
	}
	s, err := Open(ctx, store, testOptions(extra...)...)
	require.NoError(t, err)
	return s
}
