package walks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/files"
	"dog-care-api/internal/ports/tx"
)

type Service struct {
	repo  Repository
	tx    tx.Manager
	owner *ownership.Resolver
	tags  *tags.Service
	files files.Storage
}

func NewService(repo Repository, txm tx.Manager, owner *ownership.Resolver, tagSvc *tags.Service, fs files.Storage) *Service {
	return &Service{
		repo:  repo,
		tx:    txm,
		owner: owner,
		tags:  tagSvc,
		files: fs,
	}
}

type CreateInput struct {
	DogIDs          []int64
	StartDatetime   time.Time
	DurationMinutes int
	Mood            Mood
	DistanceKm      *float64
	NotesMarkdown   string
	VideoURLs       []string
	TagIDs          []int64
}

// Create es todo-o-nada: si algún perro no es del usuario no queda ni el walk
// ni ninguna asociación, y lo mismo si falla la asignación de tags.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (Walk, error) {
	dogIDs := uniqueIDs(in.DogIDs)
	if len(dogIDs) == 0 {
		return Walk{}, apperr.Validation("dog_ids must not be empty")
	}
	if in.StartDatetime.IsZero() {
		return Walk{}, apperr.Validation("start_datetime is required")
	}
	if in.DurationMinutes <= 0 {
		return Walk{}, apperr.Validation("duration_minutes must be > 0")
	}
	mood := in.Mood
	if mood == "" {
		mood = MoodNormal
	}
	if !mood.Valid() {
		return Walk{}, apperr.Validation("mood must be CALM, NORMAL or STRESSED")
	}
	if in.DistanceKm != nil && *in.DistanceKm < 0 {
		return Walk{}, apperr.Validation("distance_km must be >= 0")
	}

	w := Walk{
		UserID:          userID,
		StartDatetime:   in.StartDatetime.UTC(),
		DurationMinutes: in.DurationMinutes,
		Mood:            mood,
		DistanceKm:      in.DistanceKm,
		NotesMarkdown:   in.NotesMarkdown,
		VideoURLs:       cleanURLs(in.VideoURLs),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogs(ctx, userID, dogIDs); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, &w); err != nil {
			return err
		}
		if err := s.repo.SetDogs(ctx, w.ID, dogIDs); err != nil {
			return err
		}
		w.DogIDs = dogIDs

		_, err := s.tags.Assign(ctx, userID, walkRef(w.ID), in.TagIDs)
		return err
	})
	if err != nil {
		return Walk{}, err
	}
	return w, nil
}

func (s *Service) List(ctx context.Context, userID int64, f ListFilter) ([]Walk, error) {
	var out []Walk
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if f.DogID != nil {
			if err := s.owner.Require(ctx, userID, ownership.DogRef(*f.DogID)); err != nil {
				return err
			}
		}
		var err error
		out, err = s.repo.List(ctx, userID, f)
		return err
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, userID, id int64) (Walk, error) {
	var w Walk
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, walkRef(id)); err != nil {
			return err
		}
		var err error
		w, err = s.repo.Get(ctx, id)
		return err
	})
	return w, err
}

type UpdateInput struct {
	StartDatetime   *time.Time
	DurationMinutes *int
	Mood            *Mood
	DistanceKm      *float64
	NotesMarkdown   *string
	VideoURLs       *[]string
	// DogIDs != nil reemplaza el conjunto (misma regla todo-o-nada que Create).
	DogIDs *[]int64
}

func (s *Service) Update(ctx context.Context, userID, id int64, in UpdateInput) (Walk, error) {
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return Walk{}, apperr.Validation("duration_minutes must be > 0")
	}
	if in.Mood != nil && !in.Mood.Valid() {
		return Walk{}, apperr.Validation("mood must be CALM, NORMAL or STRESSED")
	}
	if in.DistanceKm != nil && *in.DistanceKm < 0 {
		return Walk{}, apperr.Validation("distance_km must be >= 0")
	}
	var dogIDs []int64
	if in.DogIDs != nil {
		dogIDs = uniqueIDs(*in.DogIDs)
		if len(dogIDs) == 0 {
			return Walk{}, apperr.Validation("dog_ids must not be empty")
		}
	}

	var w Walk
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, walkRef(id)); err != nil {
			return err
		}
		var err error
		w, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if in.StartDatetime != nil {
			w.StartDatetime = in.StartDatetime.UTC()
		}
		if in.DurationMinutes != nil {
			w.DurationMinutes = *in.DurationMinutes
		}
		if in.Mood != nil {
			w.Mood = *in.Mood
		}
		if in.DistanceKm != nil {
			w.DistanceKm = in.DistanceKm
		}
		if in.NotesMarkdown != nil {
			w.NotesMarkdown = *in.NotesMarkdown
		}
		if in.VideoURLs != nil {
			w.VideoURLs = cleanURLs(*in.VideoURLs)
		}
		if err := s.repo.Update(ctx, w); err != nil {
			return err
		}

		if dogIDs != nil {
			if err := s.requireDogs(ctx, userID, dogIDs); err != nil {
				return err
			}
			if err := s.repo.SetDogs(ctx, w.ID, dogIDs); err != nil {
				return err
			}
			w.DogIDs = dogIDs
		}
		return nil
	})
	if err != nil {
		return Walk{}, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, walkRef(id)); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}

// AttachGPX guarda el track y marca has_route_data.
func (s *Service) AttachGPX(ctx context.Context, userID, id int64, data []byte) (Walk, error) {
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.owner.Require(ctx, userID, walkRef(id))
	}); err != nil {
		return Walk{}, err
	}

	url, err := s.files.Store(ctx, files.KindGPX, data, files.GPXTypes)
	if err != nil {
		return Walk{}, err
	}

	var w Walk
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, walkRef(id)); err != nil {
			return err
		}
		var err error
		w, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		w.GPXFileURL = url
		w.HasRouteData = true
		return s.repo.Update(ctx, w)
	})
	if err != nil {
		return Walk{}, err
	}
	return w, nil
}

// requireDogs: un perro ajeno o inexistente invalida el payload completo.
func (s *Service) requireDogs(ctx context.Context, userID int64, dogIDs []int64) error {
	refs := make([]ownership.Ref, 0, len(dogIDs))
	for _, id := range dogIDs {
		refs = append(refs, ownership.DogRef(id))
	}
	bad, err := s.owner.RequireAll(ctx, userID, refs)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.Validation(fmt.Sprintf("dog %d not found or access denied", bad.ID))
		}
		return err
	}
	return nil
}

func walkRef(id int64) ownership.Ref {
	return ownership.Ref{Type: ownership.EntityWalk, ID: id}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cleanURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
