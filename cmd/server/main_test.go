package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hotelbilling/internal/config"
	"github.com/mmynk/hotelbilling/internal/metrics"
	"github.com/mmynk/hotelbilling/internal/storage"
	"github.com/mmynk/hotelbilling/internal/storage/memory"
	"github.com/mmynk/hotelbilling/internal/storage/sqlite"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store := openStore(ctx, config.StoreConfig{Driver: config.DriverMemory}, quietLogger())
		defer store.Close()
		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bills.db")
		store := openStore(ctx, config.StoreConfig{Driver: config.DriverSQLite, Path: path}, quietLogger())
		defer store.Close()
		assert.IsType(t, &sqlite.SQLiteStore{}, store)

		require.NoError(t, store.Save(ctx, storage.KeyMenu, []byte(`[]`)))
	})

	t.Run("unreachable postgres falls back to memory", func(t *testing.T) {
		cfg := config.StoreConfig{Driver: config.DriverPostgres, DSN: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"}
		store := openStore(ctx, cfg, quietLogger())
		defer store.Close()
		assert.IsType(t, &memory.Store{}, store)
	})
}

type fakeHealth struct{ err error }

func (f fakeHealth) LastError() error { return f.err }

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.BillCreated()

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMetricsRouter(reg, fakeHealth{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hotelbilling_bills_created_total 1")
	})

	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMetricsRouter(reg, fakeHealth{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMetricsRouter(reg, fakeHealth{err: errors.New("disk full")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"degraded","error":"disk full"}`, rec.Body.String())
	})
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	cmd.SetArgs([]string{"version"})
	assert.NoError(t, cmd.Execute())
}

func TestServe_ReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = serve(testContext(t), srv)
	require.Error(t, err)
	assert.NotErrorIs(t, err, http.ErrServerClosed)
}

func TestServe_ReturnsNilOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()
	assert.NoError(t, serve(ctx, srv))
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestRun_FailsWhenListenAddrTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	for _, key := range []string{"LISTEN_ADDR", "METRICS_ADDR", "STORE_DRIVER", "DB_PATH", "DATABASE_URL", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := fmt.Sprintf(`server:
  listen_addr: %q
  metrics_addr: ""
  shutdown_timeout: 2s
store:
  driver: memory
auth:
  password_cost: 4
log:
  level: error
`, ln.Addr().String())
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	cmd := rootCmd()
	cmd.SetArgs([]string{"--config", path})
	err = cmd.ExecuteContext(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serve")
}
