package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-docs/internal/domain"
)

func newTestPages(t *testing.T) (*Pages, TodoService) {
	t.Helper()
	svc, _ := newTestService(t)
	return NewPages(svc), svc
}

func seed(t *testing.T, svc TodoService, title string) *TodoResponse {
	t.Helper()
	resp, err := svc.CreateTodo(context.Background(), CreateTodoRequest{Title: title, Description: "Test description"})
	require.NoError(t, err)
	return resp
}

func TestPages_Home(t *testing.T) {
	pages, svc := newTestPages(t)
	seed(t, svc, "Test TODO")

	out, err := pages.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Render, out.Kind)
	assert.Equal(t, ViewHome, out.View)
	assert.Equal(t, http.StatusOK, out.Status)
	require.Len(t, out.Todos, 1)
	assert.Equal(t, "Test TODO", out.Todos[0].Title)
}

func TestPages_Create(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()

	out, err := pages.Create(ctx, TodoForm{Title: "New TODO", HasTitle: true, Description: "New description", DueDate: "2025-12-31"})
	require.NoError(t, err)
	assert.Equal(t, Redirect, out.Kind)
	assert.Equal(t, http.StatusFound, out.Status)
	assert.Equal(t, HomePath, out.Location)
	assert.Equal(t, &Flash{Level: FlashSuccess, Message: "TODO created successfully!"}, out.Flash)

	todos, err := svc.GetAllTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "New TODO", todos[0].Title)
}

func TestPages_CreateWithoutTitle(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()
	seed(t, svc, "Existing")

	form := TodoForm{Description: "No title TODO"}
	out, err := pages.Create(ctx, form)
	require.NoError(t, err)

	assert.Equal(t, Render, out.Kind)
	assert.Equal(t, ViewHome, out.View)
	assert.Equal(t, &Flash{Level: FlashError, Message: "Title is required!"}, out.Flash)
	assert.Equal(t, &form, out.Form)
	assert.Len(t, out.Todos, 1)

	todos, err := svc.GetAllTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestPages_EditForm(t *testing.T) {
	pages, svc := newTestPages(t)
	todo := seed(t, svc, "Test TODO")

	out, err := pages.EditForm(context.Background(), todo.ID)
	require.NoError(t, err)
	assert.Equal(t, ViewEdit, out.View)
	assert.Equal(t, "Test TODO", out.Todo.Title)
	assert.Equal(t, "Test TODO", out.Form.Title)
}

func TestPages_Edit(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()
	todo := seed(t, svc, "Test TODO")

	out, err := pages.Edit(ctx, todo.ID, TodoForm{Title: "Updated TODO", HasTitle: true, Description: "Updated description", DueDate: "2025-12-31"})
	require.NoError(t, err)
	assert.Equal(t, Redirect, out.Kind)
	assert.Equal(t, "TODO updated successfully!", out.Flash.Message)

	got, err := svc.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated TODO", got.Title)
	assert.Equal(t, "Updated description", got.Description)
	assert.Equal(t, "2025-12-31", *got.DueDate)
}

func TestPages_EditWithoutTitleFieldKeepsTitle(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()
	todo := seed(t, svc, "Test TODO")

	out, err := pages.Edit(ctx, todo.ID, TodoForm{Description: "only description"})
	require.NoError(t, err)
	assert.Equal(t, Redirect, out.Kind)

	got, err := svc.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test TODO", got.Title)
	assert.Equal(t, "only description", got.Description)
}

func TestPages_EditEmptyTitle(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()
	todo := seed(t, svc, "Test TODO")

	form := TodoForm{Title: "", HasTitle: true, Description: "changed"}
	out, err := pages.Edit(ctx, todo.ID, form)
	require.NoError(t, err)
	assert.Equal(t, Render, out.Kind)
	assert.Equal(t, ViewEdit, out.View)
	assert.Equal(t, FlashError, out.Flash.Level)
	assert.Equal(t, &form, out.Form)
	assert.Equal(t, "Test TODO", out.Todo.Title)

	got, err := svc.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test TODO", got.Title)
	assert.Equal(t, "Test description", got.Description)
}

func TestPages_Delete(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()
	todo := seed(t, svc, "Test TODO")

	confirm, err := pages.DeleteConfirm(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, ViewDelete, confirm.View)
	assert.Equal(t, "Test TODO", confirm.Todo.Title)

	_, err = svc.GetTodoByID(ctx, todo.ID)
	require.NoError(t, err, "confirmation must not delete")

	out, err := pages.Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "TODO deleted successfully!", out.Flash.Message)

	_, err = svc.GetTodoByID(ctx, todo.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPages_Toggle(t *testing.T) {
	pages, svc := newTestPages(t)
	ctx := context.Background()
	todo := seed(t, svc, "Test TODO")

	out, err := pages.Toggle(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "TODO marked as completed!", out.Flash.Message)

	out, err = pages.Toggle(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "TODO marked as incomplete!", out.Flash.Message)
}

func TestPages_NotFound(t *testing.T) {
	pages, _ := newTestPages(t)
	ctx := context.Background()

	calls := map[string]func() (Outcome, error){
		"edit form":      func() (Outcome, error) { return pages.EditForm(ctx, 99999) },
		"edit":           func() (Outcome, error) { return pages.Edit(ctx, 99999, TodoForm{Title: "x", HasTitle: true}) },
		"delete confirm": func() (Outcome, error) { return pages.DeleteConfirm(ctx, 99999) },
		"delete":         func() (Outcome, error) { return pages.Delete(ctx, 99999) },
		"toggle":         func() (Outcome, error) { return pages.Toggle(ctx, 99999) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			assert.True(t, errors.Is(err, domain.ErrNotFound))
		})
	}
}
