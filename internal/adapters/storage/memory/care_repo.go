package memory

import (
	"context"
	"sort"
	"time"

	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
)

type CareRepo struct {
	s *Store
}

func NewCareRepo(s *Store) *CareRepo {
	return &CareRepo{s: s}
}

func (r *CareRepo) CreateTask(ctx context.Context, t *care.Task) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[t.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	t.ID = r.s.nextID()
	r.s.t.tasks[t.ID] = *t
	return nil
}

func (r *CareRepo) GetTask(ctx context.Context, id int64) (care.Task, error) {
	defer r.s.enter(ctx)()

	t, ok := r.s.t.tasks[id]
	if !ok {
		return care.Task{}, apperr.NotFound("care task")
	}
	return t, nil
}

func (r *CareRepo) ListTasks(ctx context.Context, userID int64, f care.TaskFilter) ([]care.Task, error) {
	defer r.s.enter(ctx)()

	out := make([]care.Task, 0)
	for _, t := range r.s.t.tasks {
		if r.s.t.ownsDog(userID, t.DogID) && matchesDog(f.DogID, t.DogID) {
			out = append(out, t)
		}
	}
	sortTasksByDue(out)
	return paging.Slice(out, f.Page), nil
}

func (r *CareRepo) ListDueTasks(ctx context.Context, userID int64, until time.Time) ([]care.Task, error) {
	defer r.s.enter(ctx)()

	out := make([]care.Task, 0)
	for _, t := range r.s.t.tasks {
		if t.IsActive && !t.NextDueDate.After(until) && r.s.t.ownsDog(userID, t.DogID) {
			out = append(out, t)
		}
	}
	sortTasksByDue(out)
	return out, nil
}

func sortTasksByDue(out []care.Task) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextDueDate.Equal(out[j].NextDueDate) {
			return out[i].NextDueDate.Before(out[j].NextDueDate)
		}
		return out[i].ID < out[j].ID
	})
}

func (r *CareRepo) UpdateTask(ctx context.Context, t care.Task) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.tasks[t.ID]; !ok {
		return apperr.NotFound("care task")
	}
	r.s.t.tasks[t.ID] = t
	return nil
}

func (r *CareRepo) DeleteTask(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.tasks[id]; !ok {
		return apperr.NotFound("care task")
	}
	deleteTask(&r.s.t, id)
	return nil
}

func (r *CareRepo) CreateLog(ctx context.Context, l *care.TaskLog) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.tasks[l.CareTaskID]; !ok {
		return apperr.Validation("care task does not exist")
	}
	l.ID = r.s.nextID()
	r.s.t.taskLogs[l.ID] = *l
	return nil
}

func (r *CareRepo) ListLogs(ctx context.Context, userID int64, f care.LogFilter) ([]care.TaskLog, error) {
	defer r.s.enter(ctx)()

	out := make([]care.TaskLog, 0)
	for _, l := range r.s.t.taskLogs {
		t, ok := r.s.t.tasks[l.CareTaskID]
		if !ok || !r.s.t.ownsDog(userID, t.DogID) {
			continue
		}
		if !matchesDog(f.DogID, t.DogID) || (f.TaskID != nil && *f.TaskID != t.ID) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DoneAt.Equal(out[j].DoneAt) {
			return out[i].DoneAt.After(out[j].DoneAt)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Slice(out, f.Page), nil
}
