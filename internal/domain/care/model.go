package care

import "time"

// IntervalType es la política de recurrencia de una tarea.
// @Enum DAILY, WEEKLY, MONTHLY, CUSTOM_DAYS
type IntervalType string

const (
	IntervalDaily      IntervalType = "DAILY"
	IntervalWeekly     IntervalType = "WEEKLY"
	IntervalMonthly    IntervalType = "MONTHLY"
	IntervalCustomDays IntervalType = "CUSTOM_DAYS"
)

func (t IntervalType) Valid() bool {
	switch t {
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalCustomDays:
		return true
	}
	return false
}

type Task struct {
	ID    int64 `db:"id"`
	DogID int64 `db:"dog_id"`

	Title        string       `db:"title"`
	Description  string       `db:"description"`
	IntervalType IntervalType `db:"interval_type"`
	IntervalDays *int         `db:"interval_days"`
	NextDueDate  time.Time    `db:"next_due_date"`
	IsActive     bool         `db:"is_active"`
}

// TaskLog es inmutable: se crea al completar la tarea y nunca se edita.
type TaskLog struct {
	ID         int64     `db:"id"`
	CareTaskID int64     `db:"care_task_id"`
	DoneAt     time.Time `db:"done_at"`
	Notes      string    `db:"notes"`
}
