package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"perftrack/internal/app/server"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
