package memory

import (
	"context"
	"sort"

	"dog-care-api/internal/domain/equipment"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
)

type EquipmentRepo struct {
	s *Store
}

func NewEquipmentRepo(s *Store) *EquipmentRepo {
	return &EquipmentRepo{s: s}
}

func (r *EquipmentRepo) Create(ctx context.Context, it *equipment.Item) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[it.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	it.ID = r.s.nextID()
	r.s.t.equipment[it.ID] = *it
	return nil
}

func (r *EquipmentRepo) Get(ctx context.Context, id int64) (equipment.Item, error) {
	defer r.s.enter(ctx)()

	it, ok := r.s.t.equipment[id]
	if !ok {
		return equipment.Item{}, apperr.NotFound("equipment item")
	}
	return it, nil
}

func (r *EquipmentRepo) List(ctx context.Context, userID int64, f equipment.ListFilter) ([]equipment.Item, error) {
	defer r.s.enter(ctx)()

	out := make([]equipment.Item, 0)
	for _, it := range r.s.t.equipment {
		if r.s.t.ownsDog(userID, it.DogID) && matchesDog(f.DogID, it.DogID) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paging.Slice(out, f.Page), nil
}

func (r *EquipmentRepo) Update(ctx context.Context, it equipment.Item) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.equipment[it.ID]; !ok {
		return apperr.NotFound("equipment item")
	}
	r.s.t.equipment[it.ID] = it
	return nil
}

func (r *EquipmentRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.equipment[id]; !ok {
		return apperr.NotFound("equipment item")
	}
	delete(r.s.t.equipment, id)
	return nil
}
