package equipment_test

import (
	"context"
	"testing"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/equipment"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipmentLifecycle(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	d := dogs.Dog{OwnerUserID: 1, Name: "Rex", Sex: dogs.SexUnknown}
	require.NoError(t, memory.NewDogRepo(s).Create(ctx, &d))
	svc := equipment.NewService(memory.NewEquipmentRepo(s), s, ownership.NewResolver(memory.NewChain(s)))

	it, err := svc.Create(ctx, 1, equipment.CreateInput{DogID: d.ID, Type: " harness ", Name: "Red harness"})
	require.NoError(t, err)
	assert.Equal(t, equipment.TypeHarness, it.Type)
	assert.True(t, it.IsActive)

	other, err := svc.Create(ctx, 1, equipment.CreateInput{DogID: d.ID, Name: "Ball"})
	require.NoError(t, err)
	assert.Equal(t, equipment.TypeOther, other.Type)

	_, err = svc.Create(ctx, 1, equipment.CreateInput{DogID: d.ID, Type: "CAR", Name: "x"})
	assert.True(t, apperr.IsValidation(err))
	_, err = svc.Create(ctx, 1, equipment.CreateInput{DogID: d.ID, Name: " "})
	assert.True(t, apperr.IsValidation(err))
	_, err = svc.Create(ctx, 2, equipment.CreateInput{DogID: d.ID, Name: "x"})
	assert.True(t, apperr.IsNotFound(err))

	inactive := false
	upd, err := svc.Update(ctx, 1, it.ID, equipment.UpdateInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, upd.IsActive)
	assert.Equal(t, "Red harness", upd.Name)

	list, err := svc.List(ctx, 1, equipment.ListFilter{DogID: &d.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, 2, it.ID)))
	require.NoError(t, svc.Delete(ctx, 1, it.ID))
}
