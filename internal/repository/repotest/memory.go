// Package repotest provides an in-memory TodoRepository for tests that do not
// need a real database.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Tomlord1122/todo-docs/internal/domain"
	"github.com/Tomlord1122/todo-docs/internal/repository"
)

// Memory is a map-backed repository.TodoRepository.
type Memory struct {
	mu     sync.Mutex
	nextID uint
	todos  map[uint]domain.Todo
	now    func() time.Time

	// Err, when set, is returned by every call.
	Err error
}

var _ repository.TodoRepository = (*Memory)(nil)

// NewMemory returns an empty repository whose clock advances one second per
// created record so that ordering by created_at is deterministic.
func NewMemory() *Memory {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int
	return &Memory{
		todos: make(map[uint]domain.Todo),
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (m *Memory) Create(_ context.Context, todo *domain.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	todo.ID = m.nextID
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = m.now()
	}
	m.todos[todo.ID] = *todo
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uint) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	todo, ok := m.todos[id]
	if !ok {
		return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	return &todo, nil
}

func (m *Memory) GetAll(_ context.Context) ([]domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]domain.Todo, 0, len(m.todos))
	for _, t := range m.todos {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) Update(_ context.Context, todo *domain.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.todos[todo.ID]
	if !ok {
		return fmt.Errorf("todo %d: %w", todo.ID, domain.ErrNotFound)
	}
	updated := *todo
	updated.CreatedAt = existing.CreatedAt
	m.todos[todo.ID] = updated
	return nil
}

func (m *Memory) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.todos[id]; !ok {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	delete(m.todos, id)
	return nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.todos)), nil
}
