package memory

import (
	"context"
	"fmt"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
)

// Chain implementa ownership.Chain sobre las tablas en memoria.
type Chain struct {
	s *Store
}

func NewChain(s *Store) *Chain {
	return &Chain{s: s}
}

func (c *Chain) Links(ctx context.Context, ref ownership.Ref) (ownership.Links, error) {
	defer c.s.enter(ctx)()
	t := &c.s.t

	dogParent := func(dogID int64, ok bool) (ownership.Links, error) {
		if !ok {
			return ownership.Links{}, apperr.NotFound(string(ref.Type))
		}
		return ownership.Links{Parents: []ownership.Ref{ownership.DogRef(dogID)}}, nil
	}

	switch ref.Type {
	case ownership.EntityDog:
		d, ok := t.dogs[ref.ID]
		if !ok {
			return ownership.Links{}, apperr.NotFound("dog")
		}
		return ownership.Links{OwnerUserID: &d.OwnerUserID}, nil

	case ownership.EntityWalk:
		w, ok := t.walks[ref.ID]
		if !ok {
			return ownership.Links{}, apperr.NotFound("walk")
		}
		return ownership.Links{OwnerUserID: &w.UserID}, nil

	case ownership.EntityTag:
		tg, ok := t.tags[ref.ID]
		if !ok {
			return ownership.Links{}, apperr.NotFound("tag")
		}
		return ownership.Links{OwnerUserID: &tg.UserID}, nil

	case ownership.EntityInvoice:
		inv, ok := t.invoices[ref.ID]
		if !ok {
			return ownership.Links{}, apperr.NotFound("invoice")
		}
		var l ownership.Links
		if inv.DogID != nil {
			l.Parents = append(l.Parents, ownership.DogRef(*inv.DogID))
		}
		if inv.VetVisitID != nil {
			l.Parents = append(l.Parents, ownership.Ref{Type: ownership.EntityVetVisit, ID: *inv.VetVisitID})
		}
		return l, nil

	case ownership.EntityCareTaskLog:
		lg, ok := t.taskLogs[ref.ID]
		if !ok {
			return ownership.Links{}, apperr.NotFound("care task log")
		}
		return ownership.Links{Parents: []ownership.Ref{{Type: ownership.EntityCareTask, ID: lg.CareTaskID}}}, nil

	case ownership.EntityVetVisit:
		v, ok := t.vetVisits[ref.ID]
		return dogParent(v.DogID, ok)
	case ownership.EntityVaccination:
		v, ok := t.vaccinations[ref.ID]
		return dogParent(v.DogID, ok)
	case ownership.EntityCareTask:
		v, ok := t.tasks[ref.ID]
		return dogParent(v.DogID, ok)
	case ownership.EntityTrainingGoal:
		v, ok := t.goals[ref.ID]
		return dogParent(v.DogID, ok)
	case ownership.EntityBehaviorIssue:
		v, ok := t.issues[ref.ID]
		return dogParent(v.DogID, ok)
	case ownership.EntityTrainingLog:
		v, ok := t.trainingLogs[ref.ID]
		return dogParent(v.DogID, ok)
	case ownership.EntityEquipment:
		v, ok := t.equipment[ref.ID]
		return dogParent(v.DogID, ok)
	}
	return ownership.Links{}, fmt.Errorf("unknown entity type %q", ref.Type)
}
