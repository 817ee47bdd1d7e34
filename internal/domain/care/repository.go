package care

import (
	"context"
	"time"

	"dog-care-api/internal/platform/paging"
)

type TaskFilter struct {
	DogID *int64
	Page  paging.Page
}

type LogFilter struct {
	DogID  *int64
	TaskID *int64
	Page   paging.Page
}

type Repository interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id int64) (Task, error)
	ListTasks(ctx context.Context, userID int64, f TaskFilter) ([]Task, error)
	UpdateTask(ctx context.Context, t Task) error
	// DeleteTask borra también sus logs.
	DeleteTask(ctx context.Context, id int64) error
	// ListDueTasks: tareas activas del usuario con next_due_date <= until (incluye vencidas).
	ListDueTasks(ctx context.Context, userID int64, until time.Time) ([]Task, error)

	CreateLog(ctx context.Context, l *TaskLog) error
	// ListLogs ordena por done_at desc.
	ListLogs(ctx context.Context, userID int64, f LogFilter) ([]TaskLog, error)
}
