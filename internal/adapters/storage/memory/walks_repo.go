package memory

import (
	"context"
	"slices"
	"sort"

	"dog-care-api/internal/domain/walks"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
)

type WalkRepo struct {
	s *Store
}

func NewWalkRepo(s *Store) *WalkRepo {
	return &WalkRepo{s: s}
}

func (r *WalkRepo) Create(ctx context.Context, w *walks.Walk) error {
	defer r.s.enter(ctx)()

	w.ID = r.s.nextID()
	r.s.t.walks[w.ID] = storedWalk(*w)
	return nil
}

func (r *WalkRepo) Get(ctx context.Context, id int64) (walks.Walk, error) {
	defer r.s.enter(ctx)()

	w, ok := r.s.t.walks[id]
	if !ok {
		return walks.Walk{}, apperr.NotFound("walk")
	}
	return r.load(w), nil
}

func (r *WalkRepo) List(ctx context.Context, userID int64, f walks.ListFilter) ([]walks.Walk, error) {
	defer r.s.enter(ctx)()

	out := make([]walks.Walk, 0)
	for _, w := range r.s.t.walks {
		if w.UserID != userID {
			continue
		}
		if f.DogID != nil && !slices.Contains(r.s.t.walkDogs[w.ID], *f.DogID) {
			continue
		}
		out = append(out, r.load(w))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDatetime.Equal(out[j].StartDatetime) {
			return out[i].StartDatetime.After(out[j].StartDatetime)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Slice(out, f.Page), nil
}

func (r *WalkRepo) Update(ctx context.Context, w walks.Walk) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.walks[w.ID]; !ok {
		return apperr.NotFound("walk")
	}
	r.s.t.walks[w.ID] = storedWalk(w)
	return nil
}

func (r *WalkRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.walks[id]; !ok {
		return apperr.NotFound("walk")
	}
	delete(r.s.t.walks, id)
	delete(r.s.t.walkDogs, id)
	return nil
}

func (r *WalkRepo) SetDogs(ctx context.Context, walkID int64, dogIDs []int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.walks[walkID]; !ok {
		return apperr.NotFound("walk")
	}
	for _, id := range dogIDs {
		if _, ok := r.s.t.dogs[id]; !ok {
			return apperr.Validation("dog does not exist")
		}
	}
	r.s.t.walkDogs[walkID] = slices.Clone(dogIDs)
	return nil
}

func (r *WalkRepo) load(w walks.Walk) walks.Walk {
	w.VideoURLs = slices.Clone(w.VideoURLs)
	w.DogIDs = slices.Clone(r.s.t.walkDogs[w.ID])
	return w
}

func storedWalk(w walks.Walk) walks.Walk {
	w.VideoURLs = slices.Clone(w.VideoURLs)
	w.DogIDs = nil
	return w
}
