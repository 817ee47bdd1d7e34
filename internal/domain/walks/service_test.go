package walks_test

import (
	"context"
	"testing"
	"time"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/domain/walks"
	"dog-care-api/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc   *walks.Service
	tags  *tags.Service
	repo  *memory.WalkRepo
	store *memory.Store
}

func newEnv() env {
	s := memory.NewStore()
	owner := ownership.NewResolver(memory.NewChain(s))
	tagSvc := tags.NewService(memory.NewTagRepo(s), s, owner)
	repo := memory.NewWalkRepo(s)
	return env{
		svc:   walks.NewService(repo, s, owner, tagSvc, nil),
		tags:  tagSvc,
		repo:  repo,
		store: s,
	}
}

func (e env) dog(t *testing.T, owner int64, name string) int64 {
	t.Helper()
	d := dogs.Dog{OwnerUserID: owner, Name: name, Sex: dogs.SexUnknown}
	require.NoError(t, memory.NewDogRepo(e.store).Create(context.Background(), &d))
	return d.ID
}

func TestCreate_LinksAllDogsAndTags(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.dog(t, 1, "Rex")
	b := e.dog(t, 1, "Luna")
	tag, err := e.tags.Create(ctx, 1, "park")
	require.NoError(t, err)

	w, err := e.svc.Create(ctx, 1, walks.CreateInput{
		DogIDs:          []int64{a, b, a},
		StartDatetime:   time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		TagIDs:          []int64{tag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, walks.MoodNormal, w.Mood)
	assert.ElementsMatch(t, []int64{a, b}, w.DogIDs)

	got, err := e.svc.Get(ctx, 1, w.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{a, b}, got.DogIDs)

	as, err := e.tags.ListAssignments(ctx, 1, ownership.Ref{Type: ownership.EntityWalk, ID: w.ID})
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, tag.ID, as[0].TagID)
}

func TestCreate_ForeignDogLeavesNothing(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	mine := e.dog(t, 1, "Rex")
	theirs := e.dog(t, 2, "Bobby")

	_, err := e.svc.Create(ctx, 1, walks.CreateInput{
		DogIDs:          []int64{mine, theirs},
		StartDatetime:   time.Now(),
		DurationMinutes: 20,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "not found or access denied")

	list, err := e.svc.List(ctx, 1, walks.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_BadTagRollsBackWalk(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	dog := e.dog(t, 1, "Rex")

	_, err := e.svc.Create(ctx, 1, walks.CreateInput{
		DogIDs:          []int64{dog},
		StartDatetime:   time.Now(),
		DurationMinutes: 20,
		TagIDs:          []int64{999},
	})
	assert.True(t, apperr.IsValidation(err))

	list, err := e.svc.List(ctx, 1, walks.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_Validation(t *testing.T) {
	e := newEnv()
	dog := e.dog(t, 1, "Rex")
	neg := -1.0

	cases := map[string]walks.CreateInput{
		"no dogs":      {StartDatetime: time.Now(), DurationMinutes: 10},
		"no start":     {DogIDs: []int64{dog}, DurationMinutes: 10},
		"zero minutes": {DogIDs: []int64{dog}, StartDatetime: time.Now()},
		"bad mood":     {DogIDs: []int64{dog}, StartDatetime: time.Now(), DurationMinutes: 10, Mood: "HAPPY"},
		"neg distance": {DogIDs: []int64{dog}, StartDatetime: time.Now(), DurationMinutes: 10, DistanceKm: &neg},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.svc.Create(context.Background(), 1, in)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestListAndGet_ScopedToOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	dog := e.dog(t, 1, "Rex")
	w, err := e.svc.Create(ctx, 1, walks.CreateInput{
		DogIDs:          []int64{dog},
		StartDatetime:   time.Now(),
		DurationMinutes: 15,
	})
	require.NoError(t, err)

	_, err = e.svc.Get(ctx, 2, w.ID)
	assert.True(t, apperr.IsNotFound(err))

	list, err := e.svc.List(ctx, 2, walks.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = e.svc.List(ctx, 2, walks.ListFilter{DogID: &dog})
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(e.svc.Delete(ctx, 2, w.ID)))
	require.NoError(t, e.svc.Delete(ctx, 1, w.ID))
}

func TestUpdate_ReplacesDogSet(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.dog(t, 1, "Rex")
	b := e.dog(t, 1, "Luna")
	foreign := e.dog(t, 2, "Bobby")

	w, err := e.svc.Create(ctx, 1, walks.CreateInput{
		DogIDs:          []int64{a},
		StartDatetime:   time.Now(),
		DurationMinutes: 15,
	})
	require.NoError(t, err)

	bad := []int64{b, foreign}
	_, err = e.svc.Update(ctx, 1, w.ID, walks.UpdateInput{DogIDs: &bad})
	assert.True(t, apperr.IsValidation(err))

	good := []int64{b}
	got, err := e.svc.Update(ctx, 1, w.ID, walks.UpdateInput{DogIDs: &good})
	require.NoError(t, err)
	assert.Equal(t, []int64{b}, got.DogIDs)
}
