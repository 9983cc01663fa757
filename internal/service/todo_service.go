package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tomlord1122/todo-docs/internal/domain"
	"github.com/Tomlord1122/todo-docs/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo.
// DueDate is an ISO date ("2006-01-02") or empty.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// UpdateTodoRequest holds the data for updating an existing todo.
// Nil pointers leave the stored value untouched; an empty DueDate clears it.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	IsCompleted *bool   `json:"is_completed"`
}

// TodoResponse is the representation of a Todo returned by the service.
type TodoResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	IsCompleted bool    `json:"is_completed"`
	CreatedAt   string  `json:"created_at"`
}

// TodoService defines the operations for managing todos.
type TodoService interface {
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error)
	GetTodoByID(ctx context.Context, id uint) (*TodoResponse, error)
	// GetAllTodos returns every todo, newest first.
	GetAllTodos(ctx context.Context) ([]TodoResponse, error)
	UpdateTodo(ctx context.Context, id uint, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, id uint) error
	// ToggleTodo flips the completion flag and persists it unconditionally.
	ToggleTodo(ctx context.Context, id uint) (*TodoResponse, error)
}

type todoService struct {
	repo repository.TodoRepository
	log  *slog.Logger
}

// NewTodoService creates a TodoService backed by repo.
func NewTodoService(repo repository.TodoRepository, logger *slog.Logger) TodoService {
	return &todoService{
		repo: repo,
		log:  logger.With("component", "todo_service"),
	}
}

func (s *todoService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*TodoResponse, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		Title:       title,
		Description: req.Description,
		DueDate:     due,
		IsCompleted: false,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		s.log.ErrorContext(ctx, "create todo failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service: create todo: %w", err)
	}

	s.log.InfoContext(ctx, "todo created", slog.Uint64("id", uint64(todo.ID)))
	return toResponse(todo), nil
}

func (s *todoService) GetTodoByID(ctx context.Context, id uint) (*TodoResponse, error) {
	todo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(todo), nil
}

func (s *todoService) GetAllTodos(ctx context.Context) ([]TodoResponse, error) {
	todos, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list todos failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("service: list todos: %w", err)
	}

	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		responses = append(responses, *toResponse(&todos[i]))
	}
	return responses, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, id uint, req UpdateTodoRequest) (*TodoResponse, error) {
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply to a copy; a rejected field leaves the stored record untouched.
	updated := *existing
	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		updated.Title = title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		updated.DueDate = due
	}
	if req.IsCompleted != nil {
		updated.IsCompleted = *req.IsCompleted
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, s.wrapRepoErr(ctx, "update", id, err)
	}

	s.log.InfoContext(ctx, "todo updated", slog.Uint64("id", uint64(id)))
	return toResponse(&updated), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id uint) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrapRepoErr(ctx, "delete", id, err)
	}

	s.log.InfoContext(ctx, "todo deleted", slog.Uint64("id", uint64(id)))
	return nil
}

func (s *todoService) ToggleTodo(ctx context.Context, id uint) (*TodoResponse, error) {
	todo, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.IsCompleted = !todo.IsCompleted
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, s.wrapRepoErr(ctx, "toggle", id, err)
	}

	s.log.InfoContext(ctx, "todo toggled",
		slog.Uint64("id", uint64(id)),
		slog.Bool("is_completed", todo.IsCompleted),
	)
	return toResponse(todo), nil
}

func (s *todoService) find(ctx context.Context, id uint) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrapRepoErr(ctx, "find", id, err)
	}
	return todo, nil
}

func (s *todoService) wrapRepoErr(ctx context.Context, op string, id uint, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("todo with ID %d: %w", id, domain.ErrNotFound)
	}
	s.log.ErrorContext(ctx, op+" todo failed",
		slog.Uint64("id", uint64(id)),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("service: %s todo %d: %w", op, id, err)
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", domain.NewValidationError("title", "Title is required!")
	}
	return title, nil
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return nil, domain.NewValidationError("due_date", "Due date must be a valid date (YYYY-MM-DD)!")
	}
	return &due, nil
}

func toResponse(todo *domain.Todo) *TodoResponse {
	resp := &TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   todo.CreatedAt.Format(time.RFC3339),
	}
	if todo.DueDate != nil {
		due := todo.DueDateString()
		resp.DueDate = &due
	}
	return resp
}
