package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
	"dog-care-api/internal/ports/files"
	"dog-care-api/internal/ports/tx"
)

type Service struct {
	repo  Repository
	tx    tx.Manager
	owner *ownership.Resolver
	files files.Storage
	now   func() time.Time
}

func NewService(repo Repository, txm tx.Manager, owner *ownership.Resolver, fs files.Storage) *Service {
	return &Service{
		repo:  repo,
		tx:    txm,
		owner: owner,
		files: fs,
		now:   time.Now,
	}
}

type CreateInput struct {
	Name        string
	Breed       string
	DateOfBirth *time.Time
	Sex         Sex
	WeightKg    *float64
	Notes       string
}

// Create crea el perro y su ProfileDetails vacío en la misma transacción.
func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (Dog, error) {
	if userID <= 0 {
		return Dog{}, apperr.Auth("missing user")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Dog{}, apperr.Validation("name is required")
	}
	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}
	if !sex.Valid() {
		return Dog{}, apperr.Validation("sex must be MALE, FEMALE or UNKNOWN")
	}
	if in.WeightKg != nil && *in.WeightKg < 0 {
		return Dog{}, apperr.Validation("weight_kg must be >= 0")
	}

	now := s.now()
	d := Dog{
		OwnerUserID: userID,
		Name:        name,
		Breed:       strings.TrimSpace(in.Breed),
		DateOfBirth: in.DateOfBirth,
		Sex:         sex,
		WeightKg:    in.WeightKg,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, &d); err != nil {
			return err
		}
		pd := ProfileDetails{DogID: d.ID}
		if err := s.repo.CreateDetails(ctx, &pd); err != nil {
			return err
		}
		d.Details = &pd
		return nil
	})
	if err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, userID int64, page paging.Page) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, userID, page)
}

func (s *Service) Get(ctx context.Context, userID, dogID int64) (Dog, error) {
	var d Dog
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(dogID)); err != nil {
			return err
		}
		var err error
		d, err = s.repo.GetByID(ctx, dogID)
		if err != nil {
			return err
		}
		pd, err := s.getOrCreateDetails(ctx, dogID)
		if err != nil {
			return err
		}
		d.Details = &pd
		return nil
	})
	return d, err
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Breed       *string
	DateOfBirth *time.Time
	Sex         *Sex
	WeightKg    *float64
	Notes       *string
}

func (s *Service) Update(ctx context.Context, userID, dogID int64, in UpdateInput) (Dog, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return Dog{}, apperr.Validation("name cannot be empty")
	}
	if in.Sex != nil && !in.Sex.Valid() {
		return Dog{}, apperr.Validation("sex must be MALE, FEMALE or UNKNOWN")
	}
	if in.WeightKg != nil && *in.WeightKg < 0 {
		return Dog{}, apperr.Validation("weight_kg must be >= 0")
	}

	var d Dog
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(dogID)); err != nil {
			return err
		}
		var err error
		d, err = s.repo.GetByID(ctx, dogID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			d.Name = strings.TrimSpace(*in.Name)
		}
		if in.Breed != nil {
			d.Breed = strings.TrimSpace(*in.Breed)
		}
		if in.DateOfBirth != nil {
			d.DateOfBirth = in.DateOfBirth
		}
		if in.Sex != nil {
			d.Sex = *in.Sex
		}
		if in.WeightKg != nil {
			d.WeightKg = in.WeightKg
		}
		if in.Notes != nil {
			d.Notes = strings.TrimSpace(*in.Notes)
		}
		d.UpdatedAt = s.now()

		return s.repo.Update(ctx, d)
	})
	if err != nil {
		return Dog{}, err
	}
	return d, nil
}

// Delete borra el perro en cascada (perfil, salud, cuidados, training, equipo, paseos asociados).
func (s *Service) Delete(ctx context.Context, userID, dogID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(dogID)); err != nil {
			return err
		}
		return s.repo.Delete(ctx, dogID)
	})
}

// GetDetails es get-or-create: si la fila no existe se crea en la misma transacción.
func (s *Service) GetDetails(ctx context.Context, userID, dogID int64) (ProfileDetails, error) {
	var pd ProfileDetails
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(dogID)); err != nil {
			return err
		}
		var err error
		pd, err = s.getOrCreateDetails(ctx, dogID)
		return err
	})
	return pd, err
}

type DetailsInput struct {
	Allergies           *string
	ForbiddenFoods      *string
	PreferredFoods      *string
	DiagnosedConditions *string
	CareNotes           *string
}

func (s *Service) UpdateDetails(ctx context.Context, userID, dogID int64, in DetailsInput) (ProfileDetails, error) {
	var pd ProfileDetails
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(dogID)); err != nil {
			return err
		}
		var err error
		pd, err = s.getOrCreateDetails(ctx, dogID)
		if err != nil {
			return err
		}

		set := func(dst *string, v *string) {
			if v != nil {
				*dst = strings.TrimSpace(*v)
			}
		}
		set(&pd.Allergies, in.Allergies)
		set(&pd.ForbiddenFoods, in.ForbiddenFoods)
		set(&pd.PreferredFoods, in.PreferredFoods)
		set(&pd.DiagnosedConditions, in.DiagnosedConditions)
		set(&pd.CareNotes, in.CareNotes)

		return s.repo.UpdateDetails(ctx, pd)
	})
	return pd, err
}

// AttachAvatar guarda la imagen fuera de la transacción (no retiene conexiones
// mientras se escribe el archivo) y luego persiste la URL.
func (s *Service) AttachAvatar(ctx context.Context, userID, dogID int64, data []byte) (Dog, error) {
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.owner.Require(ctx, userID, ownership.DogRef(dogID))
	}); err != nil {
		return Dog{}, err
	}

	url, err := s.files.Store(ctx, files.KindAvatar, data, files.AvatarTypes)
	if err != nil {
		return Dog{}, err
	}

	var d Dog
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(dogID)); err != nil {
			return err
		}
		var err error
		d, err = s.repo.GetByID(ctx, dogID)
		if err != nil {
			return err
		}
		d.AvatarImageURL = url
		d.UpdatedAt = s.now()
		return s.repo.Update(ctx, d)
	})
	if err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) getOrCreateDetails(ctx context.Context, dogID int64) (ProfileDetails, error) {
	pd, err := s.repo.GetDetails(ctx, dogID)
	if err == nil {
		return pd, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return ProfileDetails{}, err
	}

	pd = ProfileDetails{DogID: dogID}
	if err := s.repo.CreateDetails(ctx, &pd); err != nil {
		return ProfileDetails{}, err
	}
	return pd, nil
}
