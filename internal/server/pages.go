package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/todo-docs/internal/domain"
	"github.com/Tomlord1122/todo-docs/internal/service"
)

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	out, err := s.pages.Home(r.Context())
	s.respondPage(w, r, out, err)
}

func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	form, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	out, err := s.pages.Create(r.Context(), form)
	s.respondPage(w, r, out, err)
}

func (s *Server) editFormHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	out, err := s.pages.EditForm(r.Context(), id)
	s.respondPage(w, r, out, err)
}

func (s *Server) editHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	form, ok := s.parseForm(w, r)
	if !ok {
		return
	}
	out, err := s.pages.Edit(r.Context(), id, form)
	s.respondPage(w, r, out, err)
}

func (s *Server) deleteConfirmHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	out, err := s.pages.DeleteConfirm(r.Context(), id)
	s.respondPage(w, r, out, err)
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	out, err := s.pages.Delete(r.Context(), id)
	s.respondPage(w, r, out, err)
}

func (s *Server) toggleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(w, r)
	if !ok {
		return
	}
	out, err := s.pages.Toggle(r.Context(), id)
	s.respondPage(w, r, out, err)
}

func (s *Server) respondPage(w http.ResponseWriter, r *http.Request, out service.Outcome, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.ErrorContext(r.Context(), "page request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := s.views.write(w, r, out); err != nil {
		s.log.ErrorContext(r.Context(), "render failed", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (service.TodoForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return service.TodoForm{}, false
	}
	_, hasTitle := r.PostForm["title"]
	return service.TodoForm{
		Title:       r.PostForm.Get("title"),
		HasTitle:    hasTitle,
		Description: r.PostForm.Get("description"),
		DueDate:     r.PostForm.Get("due_date"),
	}, true
}

// pageID parses the {id} URL parameter. The routes only ever matched
// positive integers, so anything else is a 404 rather than a 400.
func pageID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return uint(id), true
}
