package training_test

import (
	"context"
	"testing"
	"time"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc  *training.Service
	tags *tags.Service
	rex  int64
	luna int64
}

func newEnv(t *testing.T) env {
	t.Helper()
	s := memory.NewStore()
	dr := memory.NewDogRepo(s)
	rex := dogs.Dog{OwnerUserID: 1, Name: "Rex", Sex: dogs.SexUnknown}
	require.NoError(t, dr.Create(context.Background(), &rex))
	luna := dogs.Dog{OwnerUserID: 1, Name: "Luna", Sex: dogs.SexUnknown}
	require.NoError(t, dr.Create(context.Background(), &luna))

	owner := ownership.NewResolver(memory.NewChain(s))
	tagSvc := tags.NewService(memory.NewTagRepo(s), s, owner)
	return env{
		svc:  training.NewService(memory.NewTrainingRepo(s), s, owner, tagSvc),
		tags: tagSvc,
		rex:  rex.ID,
		luna: luna.ID,
	}
}

func TestCreateGoal_DefaultsAndValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	g, err := e.svc.CreateGoal(ctx, 1, training.GoalInput{DogID: e.rex, Title: "Heel"})
	require.NoError(t, err)
	assert.Equal(t, training.GoalPlanned, g.Status)
	assert.Equal(t, 1, g.Priority)

	_, err = e.svc.CreateGoal(ctx, 1, training.GoalInput{DogID: e.rex, Title: "x", Priority: 4})
	assert.True(t, apperr.IsValidation(err))
	_, err = e.svc.CreateGoal(ctx, 1, training.GoalInput{DogID: e.rex, Title: "x", Status: "DONE"})
	assert.True(t, apperr.IsValidation(err))
	_, err = e.svc.CreateGoal(ctx, 2, training.GoalInput{DogID: e.rex, Title: "x"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateLog_GoalMustBelongToSameDog(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	g, err := e.svc.CreateGoal(ctx, 1, training.GoalInput{DogID: e.luna, Title: "Stay"})
	require.NoError(t, err)

	_, err = e.svc.CreateLog(ctx, 1, training.LogInput{DogID: e.rex, TrainingGoalID: &g.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "another dog")

	missing := int64(999)
	_, err = e.svc.CreateLog(ctx, 1, training.LogInput{DogID: e.rex, TrainingGoalID: &missing})
	assert.True(t, apperr.IsValidation(err))

	logs, err := e.svc.ListLogs(ctx, 1, training.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestCreateLog_WithTagsAndDefaults(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tag, err := e.tags.Create(ctx, 1, "recall")
	require.NoError(t, err)
	rating := 5

	l, err := e.svc.CreateLog(ctx, 1, training.LogInput{
		DogID:     e.rex,
		Rating:    &rating,
		MediaURLs: []string{" https://v/1 ", ""},
		TagIDs:    []int64{tag.ID},
	})
	require.NoError(t, err)
	assert.False(t, l.Datetime.IsZero())
	assert.Equal(t, []string{"https://v/1"}, l.MediaURLs)

	as, err := e.tags.ListAssignments(ctx, 1, ownership.Ref{Type: ownership.EntityTrainingLog, ID: l.ID})
	require.NoError(t, err)
	assert.Len(t, as, 1)
}

func TestCreateLog_BadTagRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.CreateLog(ctx, 1, training.LogInput{
		DogID:    e.rex,
		Datetime: time.Now(),
		TagIDs:   []int64{42},
	})
	assert.True(t, apperr.IsValidation(err))

	logs, err := e.svc.ListLogs(ctx, 1, training.ListFilter{DogID: &e.rex})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestRatingBounds(t *testing.T) {
	e := newEnv(t)
	for _, r := range []int{0, 6} {
		_, err := e.svc.CreateLog(context.Background(), 1, training.LogInput{DogID: e.rex, Rating: &r})
		assert.True(t, apperr.IsValidation(err), "rating %d", r)
	}
}

func TestDeleteGoal_DetachesLogs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	g, err := e.svc.CreateGoal(ctx, 1, training.GoalInput{DogID: e.rex, Title: "Sit"})
	require.NoError(t, err)
	_, err = e.svc.CreateLog(ctx, 1, training.LogInput{DogID: e.rex, TrainingGoalID: &g.ID})
	require.NoError(t, err)

	require.NoError(t, e.svc.DeleteGoal(ctx, 1, g.ID))

	logs, err := e.svc.ListLogs(ctx, 1, training.ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].TrainingGoalID)
}
