package postgres

import (
	"context"
	"time"

	"dog-care-api/internal/domain/care"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	taskColumns = []string{
		"id", "dog_id", "title", "description", "interval_type", "interval_days",
		"next_due_date", "is_active",
	}
	taskLogColumns = []string{"id", "care_task_id", "done_at", "notes"}
)

type CareRepo struct {
	db *sqlx.DB
}

func NewCareRepo(db *sqlx.DB) *CareRepo {
	return &CareRepo{db: db}
}

func (r *CareRepo) CreateTask(ctx context.Context, t *care.Task) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("care_tasks").
		Columns("dog_id", "title", "description", "interval_type", "interval_days", "next_due_date", "is_active").
		Values(t.DogID, t.Title, t.Description, t.IntervalType, t.IntervalDays, t.NextDueDate, t.IsActive),
		"care task")
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *CareRepo) GetTask(ctx context.Context, id int64) (care.Task, error) {
	var t care.Task
	err := getOne(ctx, conn(ctx, r.db), &t,
		psql.Select(taskColumns...).From("care_tasks").Where(sq.Eq{"id": id}), "care task")
	return t, err
}

func (r *CareRepo) tasks(userID int64, dogID *int64) sq.SelectBuilder {
	return psql.Select(prefixed("t", taskColumns)...).
		From("care_tasks t").
		Join("dogs d ON d.id = t.dog_id").
		Where(ownedDog("d", userID, dogID))
}

func (r *CareRepo) ListTasks(ctx context.Context, userID int64, f care.TaskFilter) ([]care.Task, error) {
	out := make([]care.Task, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(
		r.tasks(userID, f.DogID).OrderBy("t.next_due_date ASC", "t.id ASC"), f.Page))
	return out, err
}

func (r *CareRepo) ListDueTasks(ctx context.Context, userID int64, until time.Time) ([]care.Task, error) {
	out := make([]care.Task, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, r.tasks(userID, nil).
		Where(sq.Eq{"t.is_active": true}).
		Where(sq.LtOrEq{"t.next_due_date": until}).
		OrderBy("t.next_due_date ASC", "t.id ASC"))
	return out, err
}

func (r *CareRepo) UpdateTask(ctx context.Context, t care.Task) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("care_tasks").
		SetMap(map[string]any{
			"title":         t.Title,
			"description":   t.Description,
			"interval_type": t.IntervalType,
			"interval_days": t.IntervalDays,
			"next_due_date": t.NextDueDate,
			"is_active":     t.IsActive,
		}).
		Where(sq.Eq{"id": t.ID}), "care task")
}

func (r *CareRepo) DeleteTask(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("care_tasks").Where(sq.Eq{"id": id}), "care task")
}

func (r *CareRepo) CreateLog(ctx context.Context, l *care.TaskLog) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("care_task_logs").
		Columns("care_task_id", "done_at", "notes").
		Values(l.CareTaskID, l.DoneAt, l.Notes), "care task log")
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

func (r *CareRepo) ListLogs(ctx context.Context, userID int64, f care.LogFilter) ([]care.TaskLog, error) {
	b := psql.Select(prefixed("l", taskLogColumns)...).
		From("care_task_logs l").
		Join("care_tasks t ON t.id = l.care_task_id").
		Join("dogs d ON d.id = t.dog_id").
		Where(ownedDog("d", userID, f.DogID))
	if f.TaskID != nil {
		b = b.Where(sq.Eq{"t.id": *f.TaskID})
	}

	out := make([]care.TaskLog, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(b.OrderBy("l.done_at DESC", "l.id DESC"), f.Page))
	return out, err
}
