package equipment

import (
	"context"
	"strings"
	"time"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/tx"
)

type Service struct {
	repo  Repository
	tx    tx.Manager
	owner *ownership.Resolver
}

func NewService(repo Repository, txm tx.Manager, owner *ownership.Resolver) *Service {
	return &Service{repo: repo, tx: txm, owner: owner}
}

type CreateInput struct {
	DogID        int64
	Type         Type
	Name         string
	Description  string
	PurchaseDate *time.Time
	Brand        string
	Size         string
	Notes        string
	IsActive     *bool
}

func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (Item, error) {
	it := Item{
		DogID:        in.DogID,
		Type:         Type(strings.ToUpper(strings.TrimSpace(string(in.Type)))),
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		PurchaseDate: in.PurchaseDate,
		Brand:        strings.TrimSpace(in.Brand),
		Size:         strings.TrimSpace(in.Size),
		Notes:        strings.TrimSpace(in.Notes),
		IsActive:     true,
	}
	if it.Type == "" {
		it.Type = TypeOther
	}
	if in.IsActive != nil {
		it.IsActive = *in.IsActive
	}
	if err := validate(it); err != nil {
		return Item{}, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		return s.repo.Create(ctx, &it)
	})
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) List(ctx context.Context, userID int64, f ListFilter) ([]Item, error) {
	var out []Item
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

type UpdateInput struct {
	Type         *Type
	Name         *string
	Description  *string
	PurchaseDate *time.Time
	Brand        *string
	Size         *string
	Notes        *string
	IsActive     *bool
}

func (s *Service) Update(ctx context.Context, userID, id int64, in UpdateInput) (Item, error) {
	var it Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, itemRef(id)); err != nil {
			return err
		}
		var err error
		it, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if in.Type != nil {
			it.Type = *in.Type
		}
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = strings.TrimSpace(*v)
			}
		}
		set(&it.Name, in.Name)
		set(&it.Description, in.Description)
		set(&it.Brand, in.Brand)
		set(&it.Size, in.Size)
		set(&it.Notes, in.Notes)
		if in.PurchaseDate != nil {
			it.PurchaseDate = in.PurchaseDate
		}
		if in.IsActive != nil {
			it.IsActive = *in.IsActive
		}

		if err := validate(it); err != nil {
			return err
		}
		return s.repo.Update(ctx, it)
	})
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, itemRef(id)); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}

func validate(it Item) error {
	if it.Name == "" {
		return apperr.Validation("name is required")
	}
	if !it.Type.Valid() {
		return apperr.Validation("type must be one of LEASH, HARNESS, COLLAR, TOY, BED, BOWL, OTHER")
	}
	return nil
}

func itemRef(id int64) ownership.Ref {
	return ownership.Ref{Type: ownership.EntityEquipment, ID: id}
}
