package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repairbooking/cmd"
	apihttp "repairbooking/internal/adapters/in/http"
	"repairbooking/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := postgres.Connect(ctx, postgres.DSN(
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	))
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if err := app.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close kafka writer", "error", err)
		}
	}()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	server := apihttp.NewServer(
		app.CreateCreateBookingCommandHandler(),
		app.CreateChangeBookingStatusCommandHandler(),
		app.CreateGetBookingQueryHandler(),
		app.CreateGetBookingsQueryHandler(),
		app.Clock(),
		logger,
	)

	e, err := apihttp.NewRouter(ctx, server, logger)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		logger.InfoContext(ctx, "server starting", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
