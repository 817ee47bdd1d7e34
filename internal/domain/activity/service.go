// Package activity arma el feed reverse-chronológico del usuario mezclando
// paseos, sesiones de entrenamiento, visitas veterinarias y logs de cuidados.
package activity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/domain/walks"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
	"dog-care-api/internal/ports/tx"
)

// Sources son los repos de los que sale el feed.
type Sources struct {
	Dogs     dogs.Repository
	Walks    walks.Repository
	Training training.Repository
	Health   health.Repository
	Care     care.Repository
}

type Service struct {
	src          Sources
	tx           tx.Manager
	defaultLimit int
	maxLimit     int
}

func NewService(src Sources, txm tx.Manager, defaultLimit, maxLimit int) *Service {
	return &Service{
		src:          src,
		tx:           txm,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List trae hasta limit registros de CADA fuente, mezcla, ordena desc y recorta
// a limit. El resultado es aproximado: no es el top-N global exacto.
func (s *Service) List(ctx context.Context, userID int64, limit int) ([]Item, error) {
	limit = paging.Page{Limit: limit}.Normalize(s.defaultLimit, s.maxLimit).Limit
	page := paging.Page{Limit: limit}

	var items []Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ws, err := s.src.Walks.List(ctx, userID, walks.ListFilter{Page: page})
		if err != nil {
			return fmt.Errorf("walks: %w", err)
		}
		tls, err := s.src.Training.ListLogs(ctx, userID, training.ListFilter{Page: page})
		if err != nil {
			return fmt.Errorf("training logs: %w", err)
		}
		vvs, err := s.src.Health.ListVetVisits(ctx, userID, health.ListFilter{Page: page})
		if err != nil {
			return fmt.Errorf("vet visits: %w", err)
		}
		cls, err := s.src.Care.ListLogs(ctx, userID, care.LogFilter{Page: page})
		if err != nil {
			return fmt.Errorf("care logs: %w", err)
		}

		items = make([]Item, 0, len(ws)+len(tls)+len(vvs)+len(cls))
		for _, w := range ws {
			it, err := s.walkItem(ctx, w)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		for _, l := range tls {
			it, err := s.trainingItem(ctx, l)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		for _, v := range vvs {
			it, err := s.vetItem(ctx, v)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		for _, l := range cls {
			it, err := s.careItem(ctx, l)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return Merge(items, limit), nil
}

// Merge ordena desc por Datetime (estable: ante empate conserva el orden de
// las fuentes) y recorta a limit.
func Merge(items []Item, limit int) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Datetime.After(items[j].Datetime)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (s *Service) walkItem(ctx context.Context, w walks.Walk) (Item, error) {
	names := make([]string, 0, len(w.DogIDs))
	for _, id := range w.DogIDs {
		n, err := s.dogName(ctx, id)
		if err != nil {
			return Item{}, err
		}
		names = append(names, n)
	}
	it := Item{
		Type:     KindWalk,
		ID:       w.ID,
		Datetime: w.StartDatetime,
		Title:    fmt.Sprintf("Walk (%d min)", w.DurationMinutes),
		DogNames: names,
	}
	if w.Mood != "" {
		it.Description = strptr(string(w.Mood))
	}
	return it, nil
}

func (s *Service) trainingItem(ctx context.Context, l training.Log) (Item, error) {
	name, err := s.dogName(ctx, l.DogID)
	if err != nil {
		return Item{}, err
	}
	it := Item{
		Type:     KindTraining,
		ID:       l.ID,
		Datetime: l.Datetime,
		Title:    "Training Session",
		DogNames: []string{name},
	}
	if l.TrainingGoalID != nil {
		g, err := s.src.Training.GetGoal(ctx, *l.TrainingGoalID)
		switch {
		case err == nil:
			it.Title = "Training: " + g.Title
		case !errors.Is(err, apperr.ErrNotFound):
			return Item{}, err
		}
	}
	if l.Rating != nil {
		it.Description = strptr(fmt.Sprintf("Rating: %d/5", *l.Rating))
	}
	return it, nil
}

func (s *Service) vetItem(ctx context.Context, v health.VetVisit) (Item, error) {
	name, err := s.dogName(ctx, v.DogID)
	if err != nil {
		return Item{}, err
	}
	y, m, d := v.Date.Date()
	it := Item{
		Type:     KindVet,
		ID:       v.ID,
		Datetime: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Title:    "Vet: " + v.Reason,
		DogNames: []string{name},
	}
	if v.Diagnosis != "" {
		it.Description = strptr(v.Diagnosis)
	}
	return it, nil
}

func (s *Service) careItem(ctx context.Context, l care.TaskLog) (Item, error) {
	t, err := s.src.Care.GetTask(ctx, l.CareTaskID)
	if err != nil {
		return Item{}, err
	}
	name, err := s.dogName(ctx, t.DogID)
	if err != nil {
		return Item{}, err
	}
	return Item{
		Type:     KindCare,
		ID:       l.ID,
		Datetime: l.DoneAt,
		Title:    "Care: " + t.Title,
		DogNames: []string{name},
	}, nil
}

func (s *Service) dogName(ctx context.Context, dogID int64) (string, error) {
	d, err := s.src.Dogs.GetByID(ctx, dogID)
	if err != nil {
		return "", fmt.Errorf("dog %d: %w", dogID, err)
	}
	return d.Name, nil
}

func strptr(s string) *string { return &s }
