package memory

import (
	"context"
	"sort"

	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
)

type DogRepo struct {
	s *Store
}

func NewDogRepo(s *Store) *DogRepo {
	return &DogRepo{s: s}
}

func (r *DogRepo) Create(ctx context.Context, d *dogs.Dog) error {
	defer r.s.enter(ctx)()

	d.ID = r.s.nextID()
	stored := *d
	stored.Details = nil
	r.s.t.dogs[d.ID] = stored
	return nil
}

func (r *DogRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	defer r.s.enter(ctx)()

	d, ok := r.s.t.dogs[id]
	if !ok {
		return dogs.Dog{}, apperr.NotFound("dog")
	}
	return d, nil
}

func (r *DogRepo) ListByOwner(ctx context.Context, ownerUserID int64, page paging.Page) ([]dogs.Dog, error) {
	defer r.s.enter(ctx)()

	out := make([]dogs.Dog, 0)
	for _, d := range r.s.t.dogs {
		if d.OwnerUserID == ownerUserID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paging.Slice(out, page), nil
}

func (r *DogRepo) Update(ctx context.Context, d dogs.Dog) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[d.ID]; !ok {
		return apperr.NotFound("dog")
	}
	d.Details = nil
	r.s.t.dogs[d.ID] = d
	return nil
}

// Delete replica el ON DELETE CASCADE del schema postgres.
func (r *DogRepo) Delete(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	t := &r.s.t
	if _, ok := t.dogs[id]; !ok {
		return apperr.NotFound("dog")
	}
	delete(t.dogs, id)
	delete(t.details, id)

	for vid, v := range t.vetVisits {
		if v.DogID == id {
			deleteVetVisit(t, vid)
		}
	}
	for k, v := range t.vaccinations {
		if v.DogID == id {
			delete(t.vaccinations, k)
		}
	}
	for k, inv := range t.invoices {
		if inv.DogID != nil && *inv.DogID == id {
			delete(t.invoices, k)
		}
	}
	for tid, tk := range t.tasks {
		if tk.DogID == id {
			deleteTask(t, tid)
		}
	}
	for k, l := range t.trainingLogs {
		if l.DogID == id {
			delete(t.trainingLogs, k)
		}
	}
	for k, g := range t.goals {
		if g.DogID == id {
			delete(t.goals, k)
		}
	}
	for k, i := range t.issues {
		if i.DogID == id {
			delete(t.issues, k)
		}
	}
	for k, it := range t.equipment {
		if it.DogID == id {
			delete(t.equipment, k)
		}
	}
	// el walk queda; solo se va la asociación
	for wid, ids := range t.walkDogs {
		t.walkDogs[wid] = without(ids, id)
	}
	return nil
}

func (r *DogRepo) GetDetails(ctx context.Context, dogID int64) (dogs.ProfileDetails, error) {
	defer r.s.enter(ctx)()

	pd, ok := r.s.t.details[dogID]
	if !ok {
		return dogs.ProfileDetails{}, apperr.NotFound("profile details")
	}
	return pd, nil
}

func (r *DogRepo) CreateDetails(ctx context.Context, pd *dogs.ProfileDetails) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[pd.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	if _, ok := r.s.t.details[pd.DogID]; ok {
		return apperr.Conflict("profile details already exist")
	}
	pd.ID = r.s.nextID()
	r.s.t.details[pd.DogID] = *pd
	return nil
}

func (r *DogRepo) UpdateDetails(ctx context.Context, pd dogs.ProfileDetails) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.details[pd.DogID]; !ok {
		return apperr.NotFound("profile details")
	}
	r.s.t.details[pd.DogID] = pd
	return nil
}

// helpers de cascada compartidos entre repos (se llaman con el lock tomado)

func deleteVetVisit(t *tables, id int64) {
	delete(t.vetVisits, id)
	for k, inv := range t.invoices {
		if inv.VetVisitID != nil && *inv.VetVisitID == id {
			delete(t.invoices, k)
		}
	}
}

func deleteTask(t *tables, id int64) {
	delete(t.tasks, id)
	for k, l := range t.taskLogs {
		if l.CareTaskID == id {
			delete(t.taskLogs, k)
		}
	}
}

func without(ids []int64, id int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (t *tables) ownsDog(userID, dogID int64) bool {
	d, ok := t.dogs[dogID]
	return ok && d.OwnerUserID == userID
}

func matchesDog(filter *int64, dogID int64) bool {
	return filter == nil || *filter == dogID
}
