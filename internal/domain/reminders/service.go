// Package reminders calcula al vuelo (no hay scheduler) lo que vence en los
// próximos días: tareas de cuidado, vacunas por expirar y visitas agendadas.
package reminders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/tx"
)

// Kind
// @Enum CARE_TASK, VACCINATION, VET_VISIT
type Kind string

const (
	KindCareTask    Kind = "CARE_TASK"
	KindVaccination Kind = "VACCINATION"
	KindVetVisit    Kind = "VET_VISIT"
)

// vacunas vencidas hace más de esto ya no se recuerdan
const staleVaccinationDays = 365

type Reminder struct {
	Type      Kind
	ID        int64
	Date      time.Time
	Title     string
	DogName   string
	IsOverdue bool
}

type Sources struct {
	Dogs   dogs.Repository
	Care   care.Repository
	Health health.Repository
}

type Service struct {
	src            Sources
	tx             tx.Manager
	defaultHorizon int
	now            func() time.Time
}

func NewService(src Sources, txm tx.Manager, defaultHorizonDays int) *Service {
	return &Service{
		src:            src,
		tx:             txm,
		defaultHorizon: defaultHorizonDays,
		now:            time.Now,
	}
}

// Upcoming devuelve los recordatorios hasta hoy+horizonDays, ordenados por fecha asc.
// horizonDays nil => default de config.
func (s *Service) Upcoming(ctx context.Context, userID int64, horizonDays *int) ([]Reminder, error) {
	days := s.defaultHorizon
	if horizonDays != nil {
		days = *horizonDays
	}
	if days < 0 {
		return nil, apperr.Validation("days must be >= 0")
	}

	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, days)

	var out []Reminder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tasks, err := s.src.Care.ListDueTasks(ctx, userID, until)
		if err != nil {
			return fmt.Errorf("care tasks: %w", err)
		}
		vaxs, err := s.src.Health.ListExpiringVaccinations(ctx, userID, today.AddDate(0, 0, -staleVaccinationDays), until)
		if err != nil {
			return fmt.Errorf("vaccinations: %w", err)
		}
		visits, err := s.src.Health.ListVetVisitsBetween(ctx, userID, today, until)
		if err != nil {
			return fmt.Errorf("vet visits: %w", err)
		}

		out = make([]Reminder, 0, len(tasks)+len(vaxs)+len(visits))
		for _, t := range tasks {
			if !t.IsActive {
				continue
			}
			name, err := s.dogName(ctx, t.DogID)
			if err != nil {
				return err
			}
			out = append(out, Reminder{
				Type:      KindCareTask,
				ID:        t.ID,
				Date:      t.NextDueDate,
				Title:     "Care: " + t.Title,
				DogName:   name,
				IsOverdue: t.NextDueDate.Before(today),
			})
		}
		for _, v := range vaxs {
			if v.ValidUntil == nil {
				continue
			}
			name, err := s.dogName(ctx, v.DogID)
			if err != nil {
				return err
			}
			out = append(out, Reminder{
				Type:      KindVaccination,
				ID:        v.ID,
				Date:      *v.ValidUntil,
				Title:     "Vaccine Expiring: " + v.VaccineType,
				DogName:   name,
				IsOverdue: v.ValidUntil.Before(today),
			})
		}
		for _, v := range visits {
			name, err := s.dogName(ctx, v.DogID)
			if err != nil {
				return err
			}
			out = append(out, Reminder{
				Type:    KindVetVisit,
				ID:      v.ID,
				Date:    v.Date,
				Title:   "Vet Visit: " + v.Reason,
				DogName: name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Service) dogName(ctx context.Context, dogID int64) (string, error) {
	d, err := s.src.Dogs.GetByID(ctx, dogID)
	if err != nil {
		return "", fmt.Errorf("dog %d: %w", dogID, err)
	}
	return d.Name, nil
}
