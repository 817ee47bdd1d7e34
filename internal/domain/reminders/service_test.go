package reminders

import (
	"context"
	"testing"
	"time"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

type world struct {
	svc    *Service
	care   *memory.CareRepo
	health *memory.HealthRepo
	dogID  int64
}

func newWorld(t *testing.T) world {
	t.Helper()
	s := memory.NewStore()
	dr := memory.NewDogRepo(s)
	d := dogs.Dog{OwnerUserID: 1, Name: "Rex", Sex: dogs.SexUnknown}
	require.NoError(t, dr.Create(context.Background(), &d))

	w := world{
		care:   memory.NewCareRepo(s),
		health: memory.NewHealthRepo(s),
		dogID:  d.ID,
	}
	w.svc = NewService(Sources{Dogs: dr, Care: w.care, Health: w.health}, s, 30)
	w.svc.now = func() time.Time { return today.Add(15 * time.Hour) }
	return w
}

func (w world) task(t *testing.T, title string, due time.Time, active bool) {
	t.Helper()
	require.NoError(t, w.care.CreateTask(context.Background(), &care.Task{
		DogID:        w.dogID,
		Title:        title,
		IntervalType: care.IntervalDaily,
		NextDueDate:  due,
		IsActive:     active,
	}))
}

func (w world) vaccine(t *testing.T, kind string, until time.Time) {
	t.Helper()
	require.NoError(t, w.health.CreateVaccination(context.Background(), &health.Vaccination{
		DogID:       w.dogID,
		Date:        until.AddDate(-1, 0, 0),
		VaccineType: kind,
		ValidUntil:  &until,
	}))
}

func TestUpcoming_TasksAndOverdue(t *testing.T) {
	w := newWorld(t)
	w.task(t, "pills", today.AddDate(0, 0, -2), true)
	w.task(t, "old habit", today.AddDate(0, 0, -1), false)
	w.task(t, "bath", today.AddDate(0, 0, 3), true)
	w.task(t, "far away", today.AddDate(0, 0, 60), true)

	got, err := w.svc.Upcoming(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Care: pills", got[0].Title)
	assert.Equal(t, "Rex", got[0].DogName)
	assert.True(t, got[0].IsOverdue)
	assert.Equal(t, "Care: bath", got[1].Title)
	assert.False(t, got[1].IsOverdue)
}

func TestUpcoming_VaccinationWindow(t *testing.T) {
	w := newWorld(t)
	w.vaccine(t, "rabies", today.AddDate(0, 0, 5))
	w.vaccine(t, "lepto", today.AddDate(0, 0, -20))
	w.vaccine(t, "ancient", today.AddDate(-2, 0, 0))
	w.vaccine(t, "later", today.AddDate(0, 0, 45))

	got, err := w.svc.Upcoming(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Vaccine Expiring: lepto", got[0].Title)
	assert.True(t, got[0].IsOverdue)
	assert.Equal(t, "Vaccine Expiring: rabies", got[1].Title)

	// con horizonte más largo entra la que vence en 45 días
	days := 60
	got, err = w.svc.Upcoming(context.Background(), 1, &days)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestUpcoming_VetVisitsOnlyFuture(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	require.NoError(t, w.health.CreateVetVisit(ctx, &health.VetVisit{DogID: w.dogID, Date: today.AddDate(0, 0, -3), Reason: "past"}))
	require.NoError(t, w.health.CreateVetVisit(ctx, &health.VetVisit{DogID: w.dogID, Date: today, Reason: "today"}))
	require.NoError(t, w.health.CreateVetVisit(ctx, &health.VetVisit{DogID: w.dogID, Date: today.AddDate(0, 0, 7), Reason: "dentist"}))

	got, err := w.svc.Upcoming(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, KindVetVisit, got[0].Type)
	assert.Equal(t, "Vet Visit: today", got[0].Title)
	assert.Equal(t, "Vet Visit: dentist", got[1].Title)
	assert.False(t, got[1].IsOverdue)
}

func TestUpcoming_OtherUsersSeeNothing(t *testing.T) {
	w := newWorld(t)
	w.task(t, "pills", today, true)

	got, err := w.svc.Upcoming(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpcoming_NegativeHorizon(t *testing.T) {
	w := newWorld(t)
	days := -1
	_, err := w.svc.Upcoming(context.Background(), 1, &days)
	assert.True(t, apperr.IsValidation(err))
}
