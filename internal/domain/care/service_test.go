package care_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingUpdate deja pasar todo salvo UpdateTask, para simular una caída
// después de escribir el log.
type failingUpdate struct {
	*memory.CareRepo
}

func (failingUpdate) UpdateTask(context.Context, care.Task) error {
	return errors.New("disk on fire")
}

type fixture struct {
	store *memory.Store
	repo  *memory.CareRepo
	owner *ownership.Resolver
	dogID int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := memory.NewStore()
	d := dogs.Dog{OwnerUserID: 1, Name: "Rex", Sex: dogs.SexUnknown}
	require.NoError(t, memory.NewDogRepo(s).Create(context.Background(), &d))
	return fixture{
		store: s,
		repo:  memory.NewCareRepo(s),
		owner: ownership.NewResolver(memory.NewChain(s)),
		dogID: d.ID,
	}
}

func (f fixture) createTask(t *testing.T, svc *care.Service, in care.CreateTaskInput) care.Task {
	t.Helper()
	in.DogID = f.dogID
	task, err := svc.CreateTask(context.Background(), 1, in)
	require.NoError(t, err)
	return task
}

func TestComplete_UpdatesDueDateAndAppendsLog(t *testing.T) {
	f := newFixture(t)
	svc := care.NewService(f.repo, f.store, f.owner)
	svc.SetClock(func() time.Time { return time.Date(2024, 1, 31, 18, 0, 0, 0, time.UTC) })

	task := f.createTask(t, svc, care.CreateTaskInput{
		Title:        "brush",
		IntervalType: care.IntervalMonthly,
		NextDueDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})

	got, log, err := svc.Complete(context.Background(), 1, task.ID, " done ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got.NextDueDate)
	assert.Equal(t, "done", log.Notes)

	logs, err := svc.ListLogs(context.Background(), 1, care.LogFilter{TaskID: &task.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, task.ID, logs[0].CareTaskID)
}

func TestComplete_IsAtomic(t *testing.T) {
	f := newFixture(t)
	ok := care.NewService(f.repo, f.store, f.owner)
	task := f.createTask(t, ok, care.CreateTaskInput{
		Title:        "meds",
		IntervalType: care.IntervalDaily,
		NextDueDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	broken := care.NewService(failingUpdate{f.repo}, f.store, f.owner)
	_, _, err := broken.Complete(context.Background(), 1, task.ID, "")
	require.Error(t, err)

	// ni log ni fecha nueva
	logs, err := ok.ListLogs(context.Background(), 1, care.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)

	tasks, err := ok.ListTasks(context.Background(), 1, care.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.NextDueDate, tasks[0].NextDueDate)
}

func TestForeignDogAndTaskAreNotFound(t *testing.T) {
	f := newFixture(t)
	svc := care.NewService(f.repo, f.store, f.owner)
	task := f.createTask(t, svc, care.CreateTaskInput{
		Title:        "walk",
		IntervalType: care.IntervalWeekly,
		NextDueDate:  time.Now(),
	})

	_, err := svc.CreateTask(context.Background(), 2, care.CreateTaskInput{
		DogID:        f.dogID,
		Title:        "steal",
		IntervalType: care.IntervalDaily,
		NextDueDate:  time.Now(),
	})
	assert.True(t, apperr.IsNotFound(err))

	_, _, err = svc.Complete(context.Background(), 2, task.ID, "")
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(svc.DeleteTask(context.Background(), 2, task.ID)))

	_, err = svc.ListTasks(context.Background(), 2, care.TaskFilter{DogID: &f.dogID})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTask_Validation(t *testing.T) {
	f := newFixture(t)
	svc := care.NewService(f.repo, f.store, f.owner)
	zero := 0

	cases := map[string]care.CreateTaskInput{
		"missing title":    {IntervalType: care.IntervalDaily, NextDueDate: time.Now()},
		"bad interval":     {Title: "x", IntervalType: "HOURLY", NextDueDate: time.Now()},
		"zero days":        {Title: "x", IntervalType: care.IntervalCustomDays, IntervalDays: &zero, NextDueDate: time.Now()},
		"missing due date": {Title: "x", IntervalType: care.IntervalDaily},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			in.DogID = f.dogID
			_, err := svc.CreateTask(context.Background(), 1, in)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}
