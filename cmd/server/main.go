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

	"stockdash/internal/backend"
	"stockdash/internal/config"
	"stockdash/internal/render"
)

func main() {
	// Config
	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)

	pages, err := render.NewHTML()
	if err != nil {
		logger.Error("templates", "err", err)
		os.Exit(1)
	}

	loadTimeout := time.Duration(cfg.Backend.RequestTimeoutSec) * time.Second
	h := &handler{
		backend:  backend.New(cfg.Backend, logger),
		pages:    pages,
		defaults: cfg.Dashboard,
		logger:   logger,
		timeout:  loadTimeout,
	}

	// Leaves room to render after a load that ran into its timeout.
	var writeTimeout time.Duration
	if loadTimeout > 0 {
		writeTimeout = loadTimeout + 10*time.Second
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "err", err)
	}
	logger.Info("server stopped")
}
