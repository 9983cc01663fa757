package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Tomlord1122/todo-docs/internal/domain"
)

// View names rendered by the HTML layer.
const (
	ViewHome   = "home"
	ViewEdit   = "edit"
	ViewDelete = "delete"
)

// HomePath is where every successful mutation redirects.
const HomePath = "/"

// OutcomeKind says how the transport should answer.
type OutcomeKind int

const (
	Render OutcomeKind = iota
	Redirect
)

// FlashLevel mirrors the message levels shown in the templates.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot user message.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// TodoForm is the decoded HTML form. HasTitle distinguishes a missing title
// field from an empty one.
type TodoForm struct {
	Title       string
	HasTitle    bool
	Description string
	DueDate     string
}

// Outcome describes the response to a page request independently of any
// HTTP framework: either render View with the given data, or redirect.
type Outcome struct {
	Kind     OutcomeKind
	Status   int
	View     string
	Location string
	Flash    *Flash
	Todo     *TodoResponse
	Todos    []TodoResponse
	Form     *TodoForm
}

func redirectHome(level FlashLevel, msg string) Outcome {
	return Outcome{
		Kind:     Redirect,
		Status:   http.StatusFound,
		Location: HomePath,
		Flash:    &Flash{Level: level, Message: msg},
	}
}

func render(view string) Outcome {
	return Outcome{Kind: Render, Status: http.StatusOK, View: view}
}

// Pages implements the server-rendered task list on top of a TodoService.
// Validation failures come back as an Outcome carrying an error flash;
// domain.ErrNotFound and internal failures come back as errors.
type Pages struct {
	todos TodoService
}

// NewPages creates the page handlers' business logic.
func NewPages(todos TodoService) *Pages {
	return &Pages{todos: todos}
}

// Home lists every todo, newest first.
func (p *Pages) Home(ctx context.Context) (Outcome, error) {
	todos, err := p.todos.GetAllTodos(ctx)
	if err != nil {
		return Outcome{}, err
	}
	out := render(ViewHome)
	out.Todos = todos
	return out, nil
}

// Create persists a new todo, or re-renders the list with the error.
func (p *Pages) Create(ctx context.Context, form TodoForm) (Outcome, error) {
	_, err := p.todos.CreateTodo(ctx, CreateTodoRequest{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     form.DueDate,
	})
	if err == nil {
		return redirectHome(FlashSuccess, "TODO created successfully!"), nil
	}

	msg, ok := validationMessage(err)
	if !ok {
		return Outcome{}, err
	}
	out, err := p.Home(ctx)
	if err != nil {
		return Outcome{}, err
	}
	out.Flash = &Flash{Level: FlashError, Message: msg}
	out.Form = &form
	return out, nil
}

// EditForm renders the edit form for id.
func (p *Pages) EditForm(ctx context.Context, id uint) (Outcome, error) {
	todo, err := p.todos.GetTodoByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	out := render(ViewEdit)
	out.Todo = todo
	out.Form = formFrom(todo)
	return out, nil
}

// Edit applies the form to id. A form without a title field keeps the
// stored title; description and due date are always replaced.
func (p *Pages) Edit(ctx context.Context, id uint, form TodoForm) (Outcome, error) {
	req := UpdateTodoRequest{
		Description: &form.Description,
		DueDate:     &form.DueDate,
	}
	if form.HasTitle {
		req.Title = &form.Title
	}

	_, err := p.todos.UpdateTodo(ctx, id, req)
	if err == nil {
		return redirectHome(FlashSuccess, "TODO updated successfully!"), nil
	}

	msg, ok := validationMessage(err)
	if !ok {
		return Outcome{}, err
	}
	out, err := p.EditForm(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	out.Flash = &Flash{Level: FlashError, Message: msg}
	out.Form = &form
	return out, nil
}

// DeleteConfirm renders the confirmation page without side effects.
func (p *Pages) DeleteConfirm(ctx context.Context, id uint) (Outcome, error) {
	todo, err := p.todos.GetTodoByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	out := render(ViewDelete)
	out.Todo = todo
	return out, nil
}

// Delete removes id.
func (p *Pages) Delete(ctx context.Context, id uint) (Outcome, error) {
	if err := p.todos.DeleteTodo(ctx, id); err != nil {
		return Outcome{}, err
	}
	return redirectHome(FlashSuccess, "TODO deleted successfully!"), nil
}

// Toggle flips the completion flag of id.
func (p *Pages) Toggle(ctx context.Context, id uint) (Outcome, error) {
	todo, err := p.todos.ToggleTodo(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	state := "incomplete"
	if todo.IsCompleted {
		state = "completed"
	}
	return redirectHome(FlashSuccess, fmt.Sprintf("TODO marked as %s!", state)), nil
}

func validationMessage(err error) (string, bool) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message(), true
	}
	return "", false
}

func formFrom(todo *TodoResponse) *TodoForm {
	form := &TodoForm{
		Title:       todo.Title,
		HasTitle:    true,
		Description: todo.Description,
	}
	if todo.DueDate != nil {
		form.DueDate = *todo.DueDate
	}
	return form
}
