package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-docs/internal/domain"
)

// TodoRepository defines the persistence operations for todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)
	// GetAll returns every todo, newest first.
	GetAll(ctx context.Context) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM todo repository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return fmt.Errorf("repository: create todo: %w", err)
	}
	return nil
}

func (r *gormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).First(&todo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repository: find todo %d: %w", id, err)
	}
	return &todo, nil
}

func (r *gormTodoRepository) GetAll(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("repository: list todos: %w", err)
	}
	return todos, nil
}

// Update writes every column except created_at, which is immutable.
func (r *gormTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	result := r.db.WithContext(ctx).
		Model(todo).
		Select("title", "description", "due_date", "is_completed").
		Updates(todo)
	if result.Error != nil {
		return fmt.Errorf("repository: update todo %d: %w", todo.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", todo.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *gormTodoRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Todo{}, id)
	if result.Error != nil {
		return fmt.Errorf("repository: delete todo %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *gormTodoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Todo{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("repository: count todos: %w", err)
	}
	return n, nil
}
