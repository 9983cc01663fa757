package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Tomlord1122/todo-docs/internal/config"
	"github.com/Tomlord1122/todo-docs/internal/service"
)

// HealthChecker reports database health; database.Service satisfies it.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	todoService service.TodoService
	pages       *service.Pages
	db          HealthChecker
	views       *views
	cors        config.CORSConfig
	log         *slog.Logger
}

func newServer(todoService service.TodoService, db HealthChecker, corsCfg config.CORSConfig, logger *slog.Logger) (*Server, error) {
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	return &Server{
		todoService: todoService,
		pages:       service.NewPages(todoService),
		db:          db,
		views:       v,
		cors:        corsCfg,
		log:         logger.With("component", "server"),
	}, nil
}

// NewServer builds the http.Server for the task list.
func NewServer(cfg *config.Config, todoService service.TodoService, db HealthChecker, logger *slog.Logger) (*http.Server, error) {
	appServer, err := newServer(todoService, db, cfg.CORS, logger)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}, nil
}
