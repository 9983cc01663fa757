package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-docs/internal/domain"
	"github.com/Tomlord1122/todo-docs/internal/logging"
	"github.com/Tomlord1122/todo-docs/internal/repository/repotest"
)

func newTestService(t *testing.T) (TodoService, *repotest.Memory) {
	t.Helper()
	repo := repotest.NewMemory()
	return NewTodoService(repo, logging.Discard()), repo
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTodo_Success(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, 7).Format(domain.DateLayout)
	resp, err := svc.CreateTodo(ctx, CreateTodoRequest{
		Title:       "Test TODO",
		Description: "This is a test TODO",
		DueDate:     due,
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Test TODO", resp.Title)
	assert.Equal(t, "This is a test TODO", resp.Description)
	require.NotNil(t, resp.DueDate)
	assert.Equal(t, due, *resp.DueDate)
	assert.False(t, resp.IsCompleted)
	assert.NotEmpty(t, resp.CreatedAt)

	todos, err := svc.GetAllTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Test TODO", todos[0].Title)
	assert.False(t, todos[0].IsCompleted)

	n, _ := repo.Count(ctx)
	assert.EqualValues(t, 1, n)
}

func TestCreateTodo_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.CreateTodo(context.Background(), CreateTodoRequest{Title: "  New TODO  "})
	require.NoError(t, err)

	assert.Equal(t, "New TODO", resp.Title)
	assert.Equal(t, "", resp.Description)
	assert.Nil(t, resp.DueDate)
	assert.False(t, resp.IsCompleted)
}

func TestCreateTodo_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   CreateTodoRequest
		field string
	}{
		{name: "empty title", req: CreateTodoRequest{Description: "No title TODO"}, field: "title"},
		{name: "blank title", req: CreateTodoRequest{Title: "   "}, field: "title"},
		{name: "bad due date", req: CreateTodoRequest{Title: "x", DueDate: "31/12/2025"}, field: "due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			ctx := context.Background()

			_, err := svc.CreateTodo(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Errors[0].Field)

			n, _ := repo.Count(ctx)
			assert.Zero(t, n)
		})
	}
}

func TestGetAllTodos_NewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"First TODO", "Second TODO", "Third TODO"} {
		_, err := svc.CreateTodo(ctx, CreateTodoRequest{Title: title})
		require.NoError(t, err)
	}

	todos, err := svc.GetAllTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "Third TODO", todos[0].Title)
	assert.Equal(t, "Second TODO", todos[1].Title)
	assert.Equal(t, "First TODO", todos[2].Title)
}

func TestUpdateTodo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, CreateTodoRequest{Title: "Test TODO", Description: "Test description", DueDate: "2025-06-01"})
	require.NoError(t, err)

	updated, err := svc.UpdateTodo(ctx, created.ID, UpdateTodoRequest{
		Title:       strPtr("Updated TODO"),
		Description: strPtr("Updated description"),
		DueDate:     strPtr("2025-12-31"),
		IsCompleted: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated TODO", updated.Title)
	assert.Equal(t, "Updated description", updated.Description)
	assert.Equal(t, "2025-12-31", *updated.DueDate)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	cleared, err := svc.UpdateTodo(ctx, created.ID, UpdateTodoRequest{DueDate: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
	assert.Equal(t, "Updated TODO", cleared.Title)
}

func TestUpdateTodo_EmptyTitleLeavesRecordUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, CreateTodoRequest{Title: "Keep me", Description: "old"})
	require.NoError(t, err)

	_, err = svc.UpdateTodo(ctx, created.ID, UpdateTodoRequest{Title: strPtr(""), Description: strPtr("new")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	got, err := svc.GetTodoByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", got.Title)
	assert.Equal(t, "old", got.Description)
}

func TestToggleTodo_TwiceRestores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, CreateTodoRequest{Title: "Test TODO"})
	require.NoError(t, err)

	first, err := svc.ToggleTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.IsCompleted)

	second, err := svc.ToggleTodo(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, second.IsCompleted)

	got, err := svc.GetTodoByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.IsCompleted, got.IsCompleted)
}

func TestDeleteTodo(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, CreateTodoRequest{Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo(ctx, created.ID))

	_, err = svc.GetTodoByID(ctx, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetTodoByID(ctx, 99999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.UpdateTodo(ctx, 99999, UpdateTodoRequest{Title: strPtr("x")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = svc.DeleteTodo(ctx, 99999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.ToggleTodo(ctx, 99999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRepositoryFailure(t *testing.T) {
	svc, repo := newTestService(t)
	boom := errors.New("connection reset")
	repo.Err = boom

	_, err := svc.GetAllTodos(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.CreateTodo(context.Background(), CreateTodoRequest{Title: "x"})
	assert.True(t, errors.Is(err, boom))
}
