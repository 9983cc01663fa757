package domain

import "time"

// DateLayout is the wire format for due dates (ISO 8601 calendar date).
const DateLayout = "2006-01-02"

// Todo is the only persisted entity of the task list.
type Todo struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"not null;default:''" json:"description"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time  `gorm:"<-:create;not null" json:"created_at"`
}

func (Todo) TableName() string { return "todos" }

func (t Todo) String() string { return t.Title }

// DueDateString renders the due date in DateLayout, or "" when unset.
func (t Todo) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}
