package memory

import (
	"context"
	"sort"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/platform/apperr"
)

type TagRepo struct {
	s *Store
}

func NewTagRepo(s *Store) *TagRepo {
	return &TagRepo{s: s}
}

func (r *TagRepo) ListTags(ctx context.Context, userID int64) ([]tags.Tag, error) {
	defer r.s.enter(ctx)()

	out := make([]tags.Tag, 0)
	for _, t := range r.s.t.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TagRepo) CreateTag(ctx context.Context, t *tags.Tag) error {
	defer r.s.enter(ctx)()

	for _, existing := range r.s.t.tags {
		if existing.UserID == t.UserID && existing.Name == t.Name {
			return apperr.Conflict("tag already exists")
		}
	}
	t.ID = r.s.nextID()
	r.s.t.tags[t.ID] = *t
	return nil
}

func (r *TagRepo) GetTag(ctx context.Context, id int64) (tags.Tag, error) {
	defer r.s.enter(ctx)()

	t, ok := r.s.t.tags[id]
	if !ok {
		return tags.Tag{}, apperr.NotFound("tag")
	}
	return t, nil
}

func (r *TagRepo) DeleteTag(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.tags[id]; !ok {
		return apperr.NotFound("tag")
	}
	delete(r.s.t.tags, id)
	for k, a := range r.s.t.assignments {
		if a.TagID == id {
			delete(r.s.t.assignments, k)
		}
	}
	return nil
}

func (r *TagRepo) OwnedTagIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	defer r.s.enter(ctx)()

	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.t.tags[id]; ok && t.UserID == userID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *TagRepo) CreateAssignment(ctx context.Context, a *tags.Assignment) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.tags[a.TagID]; !ok {
		return apperr.Validation("tag does not exist")
	}
	a.ID = r.s.nextID()
	r.s.t.assignments[a.ID] = *a
	return nil
}

func (r *TagRepo) ListAssignments(ctx context.Context, userID int64, target ownership.Ref) ([]tags.Assignment, error) {
	defer r.s.enter(ctx)()

	out := make([]tags.Assignment, 0)
	for _, a := range r.s.t.assignments {
		if a.EntityType != target.Type || a.EntityID != target.ID {
			continue
		}
		if t, ok := r.s.t.tags[a.TagID]; ok && t.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
