package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/domain/walks"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDog(t *testing.T, s *Store, owner int64, name string) dogs.Dog {
	t.Helper()
	d := dogs.Dog{OwnerUserID: owner, Name: name, Sex: dogs.SexUnknown}
	require.NoError(t, NewDogRepo(s).Create(context.Background(), &d))
	return d
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		d := dogs.Dog{OwnerUserID: 1, Name: "Rex"}
		require.NoError(t, NewDogRepo(s).Create(ctx, &d))
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := NewDogRepo(s).ListByOwner(ctx, 1, paging.Page{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWithinTx_NestedJoinsOuter(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		d := dogs.Dog{OwnerUserID: 1, Name: "Rex"}
		if err := NewDogRepo(s).Create(ctx, &d); err != nil {
			return err
		}
		// no debe bloquearse: se une a la transacción externa
		inner := s.WithinTx(ctx, func(ctx context.Context) error {
			_, err := NewDogRepo(s).GetByID(ctx, d.ID)
			return err
		})
		require.NoError(t, inner)
		return errors.New("abort outer")
	})
	require.Error(t, err)

	list, _ := NewDogRepo(s).ListByOwner(ctx, 1, paging.Page{})
	assert.Empty(t, list)
}

func TestChain_InvoiceLinks(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	d := seedDog(t, s, 1, "Rex")

	v := health.VetVisit{DogID: d.ID, Date: time.Now(), Reason: "checkup"}
	require.NoError(t, NewHealthRepo(s).CreateVetVisit(ctx, &v))

	inv := health.Invoice{VetVisitID: &v.ID, Date: time.Now(), Amount: 10, Currency: "CHF"}
	require.NoError(t, NewHealthRepo(s).CreateInvoice(ctx, &inv))

	r := ownership.NewResolver(NewChain(s))
	ok, err := r.Owns(ctx, 1, ownership.Ref{Type: ownership.EntityInvoice, ID: inv.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Owns(ctx, 2, ownership.Ref{Type: ownership.EntityInvoice, ID: inv.ID})
	require.NoError(t, err)
	assert.False(t, ok)

	// visible en el listado filtrando por el perro de la visita
	list, err := NewHealthRepo(s).ListInvoices(ctx, 1, health.ListFilter{DogID: &d.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDogDelete_Cascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	d := seedDog(t, s, 1, "Rex")
	other := seedDog(t, s, 1, "Luna")

	cr := NewCareRepo(s)
	task := care.Task{DogID: d.ID, Title: "meds", IntervalType: care.IntervalDaily, NextDueDate: time.Now(), IsActive: true}
	require.NoError(t, cr.CreateTask(ctx, &task))
	require.NoError(t, cr.CreateLog(ctx, &care.TaskLog{CareTaskID: task.ID, DoneAt: time.Now()}))

	wr := NewWalkRepo(s)
	w := walks.Walk{UserID: 1, StartDatetime: time.Now(), DurationMinutes: 30, Mood: walks.MoodNormal}
	require.NoError(t, wr.Create(ctx, &w))
	require.NoError(t, wr.SetDogs(ctx, w.ID, []int64{d.ID, other.ID}))

	tr := NewTagRepo(s)
	tg := tags.Tag{UserID: 1, Name: "rainy"}
	require.NoError(t, tr.CreateTag(ctx, &tg))
	require.NoError(t, tr.CreateAssignment(ctx, &tags.Assignment{TagID: tg.ID, EntityType: ownership.EntityDog, EntityID: d.ID}))

	require.NoError(t, NewDogRepo(s).Delete(ctx, d.ID))

	_, err := cr.GetTask(ctx, task.ID)
	assert.True(t, apperr.IsNotFound(err))
	logs, err := cr.ListLogs(ctx, 1, care.LogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)

	got, err := wr.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{other.ID}, got.DogIDs)

	// las asignaciones no se limpian al borrar la entidad etiquetada
	as, err := tr.ListAssignments(ctx, 1, ownership.DogRef(d.ID))
	require.NoError(t, err)
	assert.Len(t, as, 1)
}

func TestTagRepo_DuplicateNameConflict(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	tr := NewTagRepo(s)

	require.NoError(t, tr.CreateTag(ctx, &tags.Tag{UserID: 1, Name: "park"}))
	err := tr.CreateTag(ctx, &tags.Tag{UserID: 1, Name: "park"})
	assert.True(t, apperr.IsConflict(err))

	// otro usuario puede usar el mismo nombre
	require.NoError(t, tr.CreateTag(ctx, &tags.Tag{UserID: 2, Name: "park"}))
}
