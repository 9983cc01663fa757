package server

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Tomlord1122/todo-docs/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "flash"

type views struct {
	pages map[string]*template.Template
}

func loadViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template)}
	for _, name := range []string{service.ViewHome, service.ViewEdit, service.ViewDelete} {
		tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.pages[name] = tmpl
	}
	return v, nil
}

// viewData is what the templates see.
type viewData struct {
	Todos   []service.TodoResponse
	Todo    *service.TodoResponse
	Form    *service.TodoForm
	Flashes []service.Flash
}

// write renders a service.Outcome: a template for Render, a 302 with a flash
// cookie for Redirect.
func (v *views) write(w http.ResponseWriter, r *http.Request, out service.Outcome) error {
	if out.Kind == service.Redirect {
		if out.Flash != nil {
			setFlash(w, *out.Flash)
		}
		http.Redirect(w, r, out.Location, out.Status)
		return nil
	}

	tmpl, ok := v.pages[out.View]
	if !ok {
		return fmt.Errorf("unknown view %q", out.View)
	}

	data := viewData{Todos: out.Todos, Todo: out.Todo, Form: out.Form}
	if f, ok := popFlash(w, r); ok {
		data.Flashes = append(data.Flashes, f)
	}
	if out.Flash != nil {
		data.Flashes = append(data.Flashes, *out.Flash)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", out.View, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(out.Status)
	_, _ = buf.WriteTo(w)
	return nil
}

func setFlash(w http.ResponseWriter, f service.Flash) {
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) (service.Flash, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return service.Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return service.Flash{}, false
	}
	var f service.Flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return service.Flash{}, false
	}
	return f, true
}
