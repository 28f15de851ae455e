// Package main provides the hotelbilling server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/billing"
	"github.com/mmynk/hotelbilling/internal/config"
	"github.com/mmynk/hotelbilling/internal/metrics"
	"github.com/mmynk/hotelbilling/internal/middleware"
	"github.com/mmynk/hotelbilling/internal/persist"
	"github.com/mmynk/hotelbilling/internal/service"
	"github.com/mmynk/hotelbilling/pkg/logging"
)

const (
	Version = "0.1.0"
	appName = "hotelbilling"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Restaurant billing server",
		Long: `hotelbilling serves the restaurant billing API: opening bills on
tables, adding menu items, finalizing payment, and admin management of the
menu, tables, waiters and staff accounts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func run(ctx context.Context, configPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger := logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("Using the development JWT secret; set JWT_SECRET in production")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store := openStore(ctx, cfg.Store, logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	writer := persist.NewWriter(store, persist.Config{
		Attempts:     cfg.Store.WriteAttempts,
		Backoff:      cfg.Store.WriteBackoff,
		WriteTimeout: cfg.Store.WriteTimeout,
	}, logger, m)

	state, err := billing.Open(ctx, store,
		billing.WithPersister(writer),
		billing.WithMetrics(m),
		billing.WithLogger(logger),
		billing.WithPasswordCost(cfg.Auth.PasswordCost),
	)
	if err != nil {
		return fmt.Errorf("open billing state: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	handler := middleware.RequestLogger(logger, middleware.CORS(service.NewRouter(state, jwtManager, logger)))

	// h2c serves HTTP/2 without TLS for connect clients.
	apiServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var metricsServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           newMetricsRouter(reg, writer),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("Metrics server starting", "address", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("Connect server starting", "address", apiServer.Addr, "store", cfg.Store.Driver)
	serveErr := serve(ctx, apiServer)
	if serveErr != nil {
		logger.Error("Server failed", "error", serveErr)
	} else {
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown error", "error", err)
		}
	}

	// All handlers have returned; write whatever is still queued.
	flushErr := writer.Close(shutdownCtx)
	if flushErr != nil {
		logger.Error("Failed to flush pending writes", "error", flushErr)
	}
	if serveErr != nil {
		return errors.Join(fmt.Errorf("serve: %w", serveErr), flushErr)
	}
	if flushErr != nil {
		return flushErr
	}
	logger.Info("Shutdown complete")
	return nil
}

// serve runs srv until ctx is done or the server stops on its own. It returns
// nil when ctx ends first and the server's error otherwise. The caller still
// owns shutting srv down.
func serve(ctx context.Context, srv *http.Server) error {
	serveErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serveErr:
		if err == nil {
			err = errors.New("server stopped unexpectedly")
		}
		return err
	}
}
