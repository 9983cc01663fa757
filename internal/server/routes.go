package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.healthHandler)

	// Server-rendered task list.
	r.Get("/", s.homeHandler)
	r.Post("/", s.createHandler)
	r.Route("/todo/{id}", func(r chi.Router) {
		r.Get("/edit/", s.editFormHandler)
		r.Post("/edit/", s.editHandler)
		r.Get("/delete/", s.deleteConfirmHandler)
		r.Post("/delete/", s.deleteHandler)
		// GET mutates state here, matching the links in the list view.
		// See DESIGN.md (toggle on GET); POST is accepted as well.
		r.Get("/toggle/", s.toggleHandler)
		r.Post("/toggle/", s.toggleHandler)
	})

	// JSON API.
	r.Route("/api/todos", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cors.Origins(),
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Link", "X-Request-Id"},
			AllowCredentials: s.cors.AllowCredentials,
			MaxAge:           s.cors.MaxAge,
		}))
		r.Post("/", s.createTodoHandler)
		r.Get("/", s.getAllTodosHandler)
		r.Get("/{id}", s.getTodoByIDHandler)
		r.Put("/{id}", s.updateTodoHandler)
		r.Delete("/{id}", s.deleteTodoHandler)
		r.Post("/{id}/toggle", s.toggleTodoHandler)
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
