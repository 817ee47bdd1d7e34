package postgres

import (
	"context"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	tagColumns        = []string{"id", "user_id", "name"}
	assignmentColumns = []string{"id", "tag_id", "entity_type", "entity_id"}
)

type TagRepo struct {
	db *sqlx.DB
}

func NewTagRepo(db *sqlx.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) ListTags(ctx context.Context, userID int64) ([]tags.Tag, error) {
	out := make([]tags.Tag, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out,
		psql.Select(tagColumns...).From("tags").Where(sq.Eq{"user_id": userID}).OrderBy("name ASC"))
	return out, err
}

// CreateTag: UNIQUE (user_id, name) => Conflict vía mapErr.
func (r *TagRepo) CreateTag(ctx context.Context, t *tags.Tag) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("tags").
		Columns("user_id", "name").
		Values(t.UserID, t.Name), "tag")
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *TagRepo) GetTag(ctx context.Context, id int64) (tags.Tag, error) {
	var t tags.Tag
	err := getOne(ctx, conn(ctx, r.db), &t,
		psql.Select(tagColumns...).From("tags").Where(sq.Eq{"id": id}), "tag")
	return t, err
}

func (r *TagRepo) DeleteTag(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("tags").Where(sq.Eq{"id": id}), "tag")
}

func (r *TagRepo) OwnedTagIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	err := selectAll(ctx, conn(ctx, r.db), &out, psql.Select("id").
		From("tags").
		Where(sq.Eq{"user_id": userID, "id": ids}).
		OrderBy("id"))
	return out, err
}

func (r *TagRepo) CreateAssignment(ctx context.Context, a *tags.Assignment) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("tag_assignments").
		Columns("tag_id", "entity_type", "entity_id").
		Values(a.TagID, a.EntityType, a.EntityID), "tag assignment")
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *TagRepo) ListAssignments(ctx context.Context, userID int64, target ownership.Ref) ([]tags.Assignment, error) {
	out := make([]tags.Assignment, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, psql.Select(prefixed("a", assignmentColumns)...).
		From("tag_assignments a").
		Join("tags t ON t.id = a.tag_id").
		Where(sq.Eq{
			"t.user_id":     userID,
			"a.entity_type": target.Type,
			"a.entity_id":   target.ID,
		}).
		OrderBy("a.id ASC"))
	return out, err
}
