package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campusguard/api"
	"campusguard/config"
	"campusguard/core/appbootstrap"
	"campusguard/core/notify"
	"campusguard/core/store"
	"campusguard/core/utils"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file (env-only when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := utils.NewLogger()
		fallback.Errorf("load config: %v", err)
		os.Exit(1)
	}
	logger := utils.NewLoggerForEnv(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Errorf("mongo connect aborted: %v", err)
		os.Exit(1)
	}

	deps := appbootstrap.ComposeRuntime(cfg, client, logger)

	// Non-blocking readiness check: a broken mail transport is logged but
	// never prevents serving requests.
	if mailer, ok := deps.Notifier.(*notify.Mailer); ok {
		if err := mailer.Verify(); err != nil {
			logger.Errorf("smtp verify: %v (email notifications may fail)", err)
		} else {
			logger.Printf("smtp transport ready")
		}
	}

	srv := api.NewServer(cfg, deps, logger)
	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Printf("listening on %s (env=%s)", cfg.ListenAddr, cfg.AppEnv)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("http server: %v", err)
		}
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if err := store.Disconnect(shutdownCtx, client); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
	logger.Printf("stopped")
}
