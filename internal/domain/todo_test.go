package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodo_String(t *testing.T) {
	todo := Todo{Title: "Test TODO"}
	assert.Equal(t, "Test TODO", todo.String())
}

func TestTodo_DueDateString(t *testing.T) {
	assert.Equal(t, "", Todo{}.DueDateString())

	due := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-31", Todo{DueDate: &due}.DueDateString())
}
