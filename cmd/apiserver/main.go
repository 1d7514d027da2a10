package main

// @title           retailos API
// @version         1.0
// @description     Conversational fulfillment engine: turns chat turns into priced carts and commits them against live stock.
// @BasePath        /api/v1

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retailos/pkg/config"
	"retailos/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	zl, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	app, cleanup, err := InitializeApp(cfg, zl)
	if err != nil {
		zl.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		zl.Info("Starting HTTP server", "addr", addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		zl.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		zl.Error("HTTP server error", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zl.Error("HTTP server shutdown error", "error", err)
		return
	}
	zl.Info("HTTP server stopped gracefully")
}
