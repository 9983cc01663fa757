package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Tomlord1122/todo-docs/internal/config"
	"github.com/Tomlord1122/todo-docs/internal/database"
	"github.com/Tomlord1122/todo-docs/internal/logging"
	"github.com/Tomlord1122/todo-docs/internal/repository"
	"github.com/Tomlord1122/todo-docs/internal/server"
	"github.com/Tomlord1122/todo-docs/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, timeout time.Duration, logger *slog.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctxTimeout, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	if err := dbService.Close(); err != nil {
		logger.Error("closing database pool", slog.String("error", err.Error()))
	}

	logger.Info("server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dbService, err := database.New(startupCtx, cfg.Database, logger)
	cancel()
	if err != nil {
		logger.Error("failed to initialise database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	todoRepo := repository.NewGormTodoRepository(dbService.GetDB())
	todoService := service.NewTodoService(todoRepo, logger)

	apiServer, err := server.NewServer(cfg, todoService, dbService, logger)
	if err != nil {
		logger.Error("failed to build server", slog.String("error", err.Error()))
		_ = dbService.Close()
		os.Exit(1)
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, cfg.Server.ShutdownTimeout, logger, done)

	logger.Info("starting server", slog.String("addr", apiServer.Addr))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-done
	logger.Info("graceful shutdown complete")
}
