// Package persist writes collection snapshots to a storage.Store in the background.
//
// Callers hand the Writer an encoded snapshot after every mutation. Pending
// snapshots are coalesced per key (the newest wins), so the queue never holds
// more than one entry per collection. A single goroutine writes them, retrying
// failed writes with linear backoff. Writes that still fail are logged and
// counted; they never reach the caller that produced the snapshot.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mmynk/hotelbilling/internal/metrics"
	"github.com/mmynk/hotelbilling/internal/storage"
)

// ErrClosed is returned by Close when the writer is already closed.
var ErrClosed = errors.New("persist: writer closed")

// Config tunes the retry policy.
type Config struct {
	// Attempts is the number of tries per snapshot (default 3).
	Attempts int
	// Backoff is the wait before the second try; later tries wait longer (default 100ms).
	Backoff time.Duration
	// WriteTimeout bounds a single Save call (default 5s).
	WriteTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Attempts <= 0 {
		c.Attempts = 3
	}
	if c.Backoff <= 0 {
		c.Backoff = 100 * time.Millisecond
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	return c
}

// Writer is an asynchronous, coalescing snapshot writer.
type Writer struct {
	store   storage.Store
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending map[string][]byte
	busy    bool
	idle    chan struct{} // closed whenever the queue is drained
	closed  bool
	failed  map[string]error // keys whose latest write was abandoned

	wake    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

// NewWriter starts a Writer on store. m may be nil.
func NewWriter(store storage.Store, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	idle := make(chan struct{})
	close(idle)

	w := &Writer{
		store:   store,
		cfg:     cfg.withDefaults(),
		logger:  logger,
		metrics: m,
		pending: make(map[string][]byte),
		failed:  make(map[string]error),
		idle:    idle,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

// Enqueue schedules value to be written under key. It never blocks on I/O.
// Snapshots enqueued after Close are dropped.
func (w *Writer) Enqueue(key string, value []byte) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Warn("Snapshot dropped, writer closed", "key", key)
		return
	}
	if !w.busy {
		w.busy = true
		w.idle = make(chan struct{})
	}
	w.pending[key] = value
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every snapshot enqueued so far has been written or given up on.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastError reports the keys whose most recent write exhausted its retries.
// A later successful write of a key clears its error.
func (w *Writer) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.failed) == 0 {
		return nil
	}
	keys := make([]string, 0, len(w.failed))
	for key := range w.failed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	errs := make([]error, len(keys))
	for i, key := range keys {
		errs[i] = fmt.Errorf("%s: %w", key, w.failed[key])
	}
	return errors.Join(errs...)
}

// Close flushes pending snapshots and stops the background goroutine.
// It does not close the underlying store.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stop)
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

// drain writes batches until the queue is empty.
func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			if w.busy {
				w.busy = false
				close(w.idle)
			}
			w.mu.Unlock()
			return
		}
		batch := w.pending
		w.pending = make(map[string][]byte)
		w.mu.Unlock()

		for key, value := range batch {
			w.write(key, value)
		}
	}
}

func (w *Writer) write(key string, value []byte) {
	var err error
	for attempt := 1; attempt <= w.cfg.Attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * w.cfg.Backoff)
		}

		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
		err = w.store.Save(ctx, key, value)
		cancel()
		if err == nil {
			w.mu.Lock()
			delete(w.failed, key)
			w.mu.Unlock()
			w.metrics.StoreWrite(key, true)
			w.logger.Debug("Snapshot written", "key", key, "bytes", len(value), "attempt", attempt)
			return
		}

		w.logger.Warn("Snapshot write failed", "key", key, "attempt", attempt, "error", err)
	}

	w.metrics.StoreWrite(key, false)
	w.logger.Error("Snapshot write abandoned, state kept in memory only", "key", key, "attempts", w.cfg.Attempts, "error", err)

	w.mu.Lock()
	w.failed[key] = err
	w.mu.Unlock()
}
