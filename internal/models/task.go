package models

import "time"

// Task - задача пользователя.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Owner       *OwnerRef `json:"owner,omitempty"`
}

// TaskRequest - тело запроса создания задачи.
type TaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	DueDate     string `json:"dueDate" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    string `json:"category" validate:"omitempty,task_category"`
}

// TaskPatch - частичное изменение задачи.
type TaskPatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	DueDate     *string `json:"dueDate"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    *string `json:"category" validate:"omitempty,task_category"`
}

// TaskStatusRequest - смена статуса задачи.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// BulkTaskUpdate - массовое изменение задач владельца.
type BulkTaskUpdate struct {
	TaskIDs  []string `json:"taskIds" validate:"required,min=1,dive,uuid"`
	Status   *string  `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority *string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category *string  `json:"category" validate:"omitempty,task_category"`
}

// IsEmpty сообщает, что изменять нечего.
func (b BulkTaskUpdate) IsEmpty() bool {
	return b.Status == nil && b.Priority == nil && b.Category == nil
}

// BulkTaskDelete - массовое удаление задач владельца.
type BulkTaskDelete struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}
