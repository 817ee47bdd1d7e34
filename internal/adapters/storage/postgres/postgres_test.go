package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/domain/walks"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTxManager_CommitAndNested(t *testing.T) {
	db, mock := newMock(t)
	m := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM walk_dogs WHERE walk_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewWalkRepo(db)
	err := m.WithinTx(context.Background(), func(ctx context.Context) error {
		// el anidado no abre otra transacción
		return m.WithinTx(ctx, func(ctx context.Context) error {
			return repo.SetDogs(ctx, 4, nil)
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db, mock := newMock(t)
	m := NewTxManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.WithinTx(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDogRepo_CreateAndGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDogRepo(db)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO dogs (owner_user_id,name,breed")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	d := dogs.Dog{OwnerUserID: 1, Name: "Rex", Sex: dogs.SexMale, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), &d))
	assert.Equal(t, int64(7), d.ID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_user_id, name, breed, date_of_birth, sex, weight_kg, avatar_image_url, notes, created_at, updated_at FROM dogs WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(dogColumns).
			AddRow(7, 1, "Rex", "", nil, "MALE", 12.5, "", "", now, now))

	got, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	require.NotNil(t, got.WeightKg)
	assert.Equal(t, 12.5, *got.WeightKg)
	assert.Nil(t, got.DateOfBirth)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDogRepo_MissingRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDogRepo(db)

	mock.ExpectQuery("SELECT .* FROM dogs WHERE id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(dogColumns))
	_, err := repo.GetByID(context.Background(), 9)
	assert.True(t, apperr.IsNotFound(err))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dogs WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.True(t, apperr.IsNotFound(repo.Delete(context.Background(), 9)))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepo_DuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTagRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tags (user_id,name) VALUES ($1,$2) RETURNING id")).
		WithArgs(int64(1), "vet").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.CreateTag(context.Background(), &tags.Tag{UserID: 1, Name: "vet"})
	assert.True(t, apperr.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapErr(t *testing.T) {
	assert.True(t, apperr.IsValidation(mapErr(&pgconn.PgError{Code: foreignKeyViolation}, "x")))
	assert.True(t, apperr.IsValidation(mapErr(&pgconn.PgError{Code: checkViolation, Message: "bad"}, "x")))
	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), mapErr(other, "x"))
	assert.NoError(t, mapErr(nil, "x"))
}

func TestChain_Links(t *testing.T) {
	db, mock := newMock(t)
	c := NewChain(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT owner_user_id FROM dogs WHERE id = $1 FOR SHARE")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_user_id"}).AddRow(42))
	l, err := c.Links(ctx, ownership.DogRef(3))
	require.NoError(t, err)
	require.NotNil(t, l.OwnerUserID)
	assert.Equal(t, int64(42), *l.OwnerUserID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT dog_id, vet_visit_id FROM invoices WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"dog_id", "vet_visit_id"}).AddRow(nil, 8))
	l, err = c.Links(ctx, ownership.Ref{Type: ownership.EntityInvoice, ID: 5})
	require.NoError(t, err)
	assert.Equal(t, []ownership.Ref{{Type: ownership.EntityVetVisit, ID: 8}}, l.Parents)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT dog_id FROM care_tasks WHERE id = $1")).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"dog_id"}))
	_, err = c.Links(ctx, ownership.Ref{Type: ownership.EntityCareTask, ID: 6})
	assert.True(t, apperr.IsNotFound(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalkRepo_ListLoadsDogs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewWalkRepo(db)
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT w.id, .* FROM walks w WHERE w.user_id = \\$1 ORDER BY w.start_datetime DESC, w.id DESC LIMIT 10").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(walkColumns).
			AddRow(2, 1, start, 30, "CALM", nil, "", "{https://v/1}", "", false).
			AddRow(1, 1, start.Add(-time.Hour), 10, "NORMAL", 1.5, "", "{}", "", false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT walk_id, dog_id FROM walk_dogs WHERE walk_id IN ($1,$2) ORDER BY walk_id, dog_id")).
		WithArgs(int64(2), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"walk_id", "dog_id"}).
			AddRow(1, 10).
			AddRow(2, 10).
			AddRow(2, 11))

	got, err := repo.List(context.Background(), 1, walks.ListFilter{Page: paging.Page{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int64{10, 11}, got[0].DogIDs)
	assert.Equal(t, []string{"https://v/1"}, got[0].VideoURLs)
	assert.Equal(t, []int64{10}, got[1].DogIDs)
	assert.Empty(t, got[1].VideoURLs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainingRepo_CreateLogSendsArray(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTrainingRepo(db)
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO training_logs")).
		WithArgs(int64(3), nil, nil, at, nil, "", "{}").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	l := training.Log{DogID: 3, Datetime: at}
	require.NoError(t, repo.CreateLog(context.Background(), &l))
	assert.Equal(t, int64(11), l.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
