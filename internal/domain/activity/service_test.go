package activity

import (
	"context"
	"testing"
	"time"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/domain/walks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)

func TestList_MergesSourcesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	dr := memory.NewDogRepo(s)
	wr := memory.NewWalkRepo(s)
	tr := memory.NewTrainingRepo(s)
	hr := memory.NewHealthRepo(s)
	cr := memory.NewCareRepo(s)

	rex := dogs.Dog{OwnerUserID: 1, Name: "Rex", Sex: dogs.SexUnknown}
	require.NoError(t, dr.Create(ctx, &rex))
	luna := dogs.Dog{OwnerUserID: 1, Name: "Luna", Sex: dogs.SexUnknown}
	require.NoError(t, dr.Create(ctx, &luna))

	w := walks.Walk{UserID: 1, StartDatetime: base.Add(-1 * time.Hour), DurationMinutes: 40, Mood: walks.MoodCalm}
	require.NoError(t, wr.Create(ctx, &w))
	require.NoError(t, wr.SetDogs(ctx, w.ID, []int64{rex.ID, luna.ID}))

	goal := training.Goal{DogID: rex.ID, Title: "Sit", Status: training.GoalInProgress, Priority: 1}
	require.NoError(t, tr.CreateGoal(ctx, &goal))
	rating := 4
	require.NoError(t, tr.CreateLog(ctx, &training.Log{
		DogID:          rex.ID,
		TrainingGoalID: &goal.ID,
		Datetime:       base.Add(-2 * time.Hour),
		Rating:         &rating,
	}))

	require.NoError(t, hr.CreateVetVisit(ctx, &health.VetVisit{
		DogID:     luna.ID,
		Date:      base.AddDate(0, 0, -3),
		Reason:    "vaccines",
		Diagnosis: "healthy",
	}))

	task := care.Task{DogID: rex.ID, Title: "brush", IntervalType: care.IntervalDaily, NextDueDate: base, IsActive: true}
	require.NoError(t, cr.CreateTask(ctx, &task))
	require.NoError(t, cr.CreateLog(ctx, &care.TaskLog{CareTaskID: task.ID, DoneAt: base.AddDate(0, 0, -1)}))

	svc := NewService(Sources{Dogs: dr, Walks: wr, Training: tr, Health: hr, Care: cr}, s, 50, 200)
	items, err := svc.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, KindWalk, items[0].Type)
	assert.Equal(t, "Walk (40 min)", items[0].Title)
	assert.ElementsMatch(t, []string{"Rex", "Luna"}, items[0].DogNames)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "CALM", *items[0].Description)

	assert.Equal(t, KindTraining, items[1].Type)
	assert.Equal(t, "Training: Sit", items[1].Title)
	assert.Equal(t, "Rating: 4/5", *items[1].Description)

	assert.Equal(t, KindCare, items[2].Type)
	assert.Equal(t, "Care: brush", items[2].Title)

	assert.Equal(t, KindVet, items[3].Type)
	assert.Equal(t, "Vet: vaccines", items[3].Title)
	assert.Equal(t, []string{"Luna"}, items[3].DogNames)

	// feed ajeno vacío, límite respetado
	other, err := svc.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, other)

	two, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, KindWalk, two[0].Type)
}

func TestMerge_StableOnTies(t *testing.T) {
	items := []Item{
		{Type: KindWalk, ID: 1, Datetime: base},
		{Type: KindTraining, ID: 2, Datetime: base.Add(time.Hour)},
		{Type: KindVet, ID: 3, Datetime: base},
		{Type: KindCare, ID: 4, Datetime: base.Add(-time.Hour)},
	}
	got := Merge(items, 3)
	require.Len(t, got, 3)
	assert.Equal(t, KindTraining, got[0].Type)
	assert.Equal(t, KindWalk, got[1].Type)
	assert.Equal(t, KindVet, got[2].Type)
}
