package memory

import (
	"context"
	"sort"
	"time"

	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
)

type HealthRepo struct {
	s *Store
}

func NewHealthRepo(s *Store) *HealthRepo {
	return &HealthRepo{s: s}
}

// -------------------------
// Vet visits
// -------------------------

func (r *HealthRepo) CreateVetVisit(ctx context.Context, v *health.VetVisit) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[v.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	v.ID = r.s.nextID()
	r.s.t.vetVisits[v.ID] = *v
	return nil
}

func (r *HealthRepo) GetVetVisit(ctx context.Context, id int64) (health.VetVisit, error) {
	defer r.s.enter(ctx)()

	v, ok := r.s.t.vetVisits[id]
	if !ok {
		return health.VetVisit{}, apperr.NotFound("vet visit")
	}
	return v, nil
}

func (r *HealthRepo) ListVetVisits(ctx context.Context, userID int64, f health.ListFilter) ([]health.VetVisit, error) {
	defer r.s.enter(ctx)()

	out := r.vetVisitsWhere(userID, func(v health.VetVisit) bool { return matchesDog(f.DogID, v.DogID) })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Slice(out, f.Page), nil
}

func (r *HealthRepo) ListVetVisitsBetween(ctx context.Context, userID int64, from, until time.Time) ([]health.VetVisit, error) {
	defer r.s.enter(ctx)()

	out := r.vetVisitsWhere(userID, func(v health.VetVisit) bool {
		return !v.Date.Before(from) && !v.Date.After(until)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *HealthRepo) vetVisitsWhere(userID int64, keep func(health.VetVisit) bool) []health.VetVisit {
	out := make([]health.VetVisit, 0)
	for _, v := range r.s.t.vetVisits {
		if r.s.t.ownsDog(userID, v.DogID) && keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (r *HealthRepo) UpdateVetVisit(ctx context.Context, v health.VetVisit) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.vetVisits[v.ID]; !ok {
		return apperr.NotFound("vet visit")
	}
	r.s.t.vetVisits[v.ID] = v
	return nil
}

func (r *HealthRepo) DeleteVetVisit(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.vetVisits[id]; !ok {
		return apperr.NotFound("vet visit")
	}
	deleteVetVisit(&r.s.t, id)
	return nil
}

// -------------------------
// Vaccinations
// -------------------------

func (r *HealthRepo) CreateVaccination(ctx context.Context, v *health.Vaccination) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[v.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	v.ID = r.s.nextID()
	r.s.t.vaccinations[v.ID] = *v
	return nil
}

func (r *HealthRepo) GetVaccination(ctx context.Context, id int64) (health.Vaccination, error) {
	defer r.s.enter(ctx)()

	v, ok := r.s.t.vaccinations[id]
	if !ok {
		return health.Vaccination{}, apperr.NotFound("vaccination")
	}
	return v, nil
}

func (r *HealthRepo) ListVaccinations(ctx context.Context, userID int64, f health.ListFilter) ([]health.Vaccination, error) {
	defer r.s.enter(ctx)()

	out := r.vaccinationsWhere(userID, func(v health.Vaccination) bool { return matchesDog(f.DogID, v.DogID) })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Slice(out, f.Page), nil
}

func (r *HealthRepo) ListExpiringVaccinations(ctx context.Context, userID int64, from, until time.Time) ([]health.Vaccination, error) {
	defer r.s.enter(ctx)()

	out := r.vaccinationsWhere(userID, func(v health.Vaccination) bool {
		return v.ValidUntil != nil && !v.ValidUntil.Before(from) && !v.ValidUntil.After(until)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ValidUntil.Before(*out[j].ValidUntil) })
	return out, nil
}

func (r *HealthRepo) vaccinationsWhere(userID int64, keep func(health.Vaccination) bool) []health.Vaccination {
	out := make([]health.Vaccination, 0)
	for _, v := range r.s.t.vaccinations {
		if r.s.t.ownsDog(userID, v.DogID) && keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (r *HealthRepo) UpdateVaccination(ctx context.Context, v health.Vaccination) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.vaccinations[v.ID]; !ok {
		return apperr.NotFound("vaccination")
	}
	r.s.t.vaccinations[v.ID] = v
	return nil
}

func (r *HealthRepo) DeleteVaccination(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.vaccinations[id]; !ok {
		return apperr.NotFound("vaccination")
	}
	delete(r.s.t.vaccinations, id)
	return nil
}

// -------------------------
// Invoices
// -------------------------

func (r *HealthRepo) CreateInvoice(ctx context.Context, inv *health.Invoice) error {
	defer r.s.enter(ctx)()

	if inv.DogID != nil {
		if _, ok := r.s.t.dogs[*inv.DogID]; !ok {
			return apperr.Validation("dog does not exist")
		}
	}
	if inv.VetVisitID != nil {
		if _, ok := r.s.t.vetVisits[*inv.VetVisitID]; !ok {
			return apperr.Validation("vet visit does not exist")
		}
	}
	inv.ID = r.s.nextID()
	r.s.t.invoices[inv.ID] = *inv
	return nil
}

func (r *HealthRepo) GetInvoice(ctx context.Context, id int64) (health.Invoice, error) {
	defer r.s.enter(ctx)()

	inv, ok := r.s.t.invoices[id]
	if !ok {
		return health.Invoice{}, apperr.NotFound("invoice")
	}
	return inv, nil
}

// ListInvoices: una factura es visible si su dog directo o el dog de su
// vet visit es del usuario. El filtro por dog usa el mismo criterio.
func (r *HealthRepo) ListInvoices(ctx context.Context, userID int64, f health.ListFilter) ([]health.Invoice, error) {
	defer r.s.enter(ctx)()

	t := &r.s.t
	out := make([]health.Invoice, 0)
	for _, inv := range t.invoices {
		var dogIDs []int64
		if inv.DogID != nil {
			dogIDs = append(dogIDs, *inv.DogID)
		}
		if inv.VetVisitID != nil {
			if v, ok := t.vetVisits[*inv.VetVisitID]; ok {
				dogIDs = append(dogIDs, v.DogID)
			}
		}

		visible := false
		for _, d := range dogIDs {
			if t.ownsDog(userID, d) && matchesDog(f.DogID, d) {
				visible = true
				break
			}
		}
		if visible {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Slice(out, f.Page), nil
}

func (r *HealthRepo) UpdateInvoice(ctx context.Context, inv health.Invoice) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.invoices[inv.ID]; !ok {
		return apperr.NotFound("invoice")
	}
	r.s.t.invoices[inv.ID] = inv
	return nil
}

func (r *HealthRepo) DeleteInvoice(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.invoices[id]; !ok {
		return apperr.NotFound("invoice")
	}
	delete(r.s.t.invoices, id)
	return nil
}
