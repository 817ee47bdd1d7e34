package postgres

import (
	"context"

	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/platform/paging"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var dogColumns = []string{
	"id", "owner_user_id",
	"name", "breed", "date_of_birth", "sex", "weight_kg",
	"avatar_image_url", "notes",
	"created_at", "updated_at",
}

var detailsColumns = []string{
	"id", "dog_id",
	"allergies", "forbidden_foods", "preferred_foods",
	"diagnosed_conditions", "care_notes",
}

type DogRepo struct {
	db *sqlx.DB
}

func NewDogRepo(db *sqlx.DB) *DogRepo {
	return &DogRepo{db: db}
}

func (r *DogRepo) Create(ctx context.Context, d *dogs.Dog) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("dogs").
		Columns("owner_user_id", "name", "breed", "date_of_birth", "sex", "weight_kg",
			"avatar_image_url", "notes", "created_at", "updated_at").
		Values(d.OwnerUserID, d.Name, d.Breed, d.DateOfBirth, d.Sex, d.WeightKg,
			d.AvatarImageURL, d.Notes, d.CreatedAt, d.UpdatedAt), "dog")
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

func (r *DogRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	var d dogs.Dog
	err := getOne(ctx, conn(ctx, r.db), &d,
		psql.Select(dogColumns...).From("dogs").Where(sq.Eq{"id": id}), "dog")
	return d, err
}

func (r *DogRepo) ListByOwner(ctx context.Context, ownerUserID int64, page paging.Page) ([]dogs.Dog, error) {
	out := make([]dogs.Dog, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(
		psql.Select(dogColumns...).From("dogs").
			Where(sq.Eq{"owner_user_id": ownerUserID}).
			OrderBy("id ASC"), page))
	return out, err
}

func (r *DogRepo) Update(ctx context.Context, d dogs.Dog) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("dogs").
		SetMap(map[string]any{
			"name":             d.Name,
			"breed":            d.Breed,
			"date_of_birth":    d.DateOfBirth,
			"sex":              d.Sex,
			"weight_kg":        d.WeightKg,
			"avatar_image_url": d.AvatarImageURL,
			"notes":            d.Notes,
			"updated_at":       d.UpdatedAt,
		}).
		Where(sq.Eq{"id": d.ID}), "dog")
}

// Delete se apoya en los ON DELETE CASCADE del esquema.
func (r *DogRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("dogs").Where(sq.Eq{"id": id}), "dog")
}

func (r *DogRepo) GetDetails(ctx context.Context, dogID int64) (dogs.ProfileDetails, error) {
	var pd dogs.ProfileDetails
	err := getOne(ctx, conn(ctx, r.db), &pd,
		psql.Select(detailsColumns...).From("dog_profile_details").Where(sq.Eq{"dog_id": dogID}),
		"dog profile details")
	return pd, err
}

// CreateDetails es idempotente: si dos requests hacen get-or-create a la vez,
// el segundo se queda con la fila del primero.
func (r *DogRepo) CreateDetails(ctx context.Context, pd *dogs.ProfileDetails) error {
	q := conn(ctx, r.db)
	query, args, err := psql.Insert("dog_profile_details").
		Columns("dog_id", "allergies", "forbidden_foods", "preferred_foods", "diagnosed_conditions", "care_notes").
		Values(pd.DogID, pd.Allergies, pd.ForbiddenFoods, pd.PreferredFoods, pd.DiagnosedConditions, pd.CareNotes).
		Suffix("ON CONFLICT (dog_id) DO UPDATE SET dog_id = EXCLUDED.dog_id RETURNING " + joinCols(detailsColumns)).
		ToSql()
	if err != nil {
		return err
	}
	return mapErr(sqlx.GetContext(ctx, q, pd, query, args...), "dog profile details")
}

func (r *DogRepo) UpdateDetails(ctx context.Context, pd dogs.ProfileDetails) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("dog_profile_details").
		SetMap(map[string]any{
			"allergies":            pd.Allergies,
			"forbidden_foods":      pd.ForbiddenFoods,
			"preferred_foods":      pd.PreferredFoods,
			"diagnosed_conditions": pd.DiagnosedConditions,
			"care_notes":           pd.CareNotes,
		}).
		Where(sq.Eq{"dog_id": pd.DogID}), "dog profile details")
}
