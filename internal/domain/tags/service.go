package tags

import (
	"context"
	"fmt"
	"strings"

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

func (s *Service) List(ctx context.Context, userID int64) ([]Tag, error) {
	return s.repo.ListTags(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int64, name string) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, apperr.Validation("name is required")
	}

	t := Tag{UserID: userID, Name: name}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.CreateTag(ctx, &t)
	})
	if err != nil {
		return Tag{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityTag, ID: id}); err != nil {
			return err
		}
		return s.repo.DeleteTag(ctx, id)
	})
}

// Assign etiqueta target con tagIDs. Todo-o-nada: si algún tag no existe o es
// de otro usuario no se crea ninguna fila.
// No deduplica contra asignaciones previas: reasignar el mismo tag crea otra fila.
// Si ctx ya trae una transacción se une a ella (así walks/training lo llaman
// dentro de su propio create).
func (s *Service) Assign(ctx context.Context, userID int64, target ownership.Ref, tagIDs []int64) ([]Assignment, error) {
	ids := unique(tagIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	var out []Assignment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, target); err != nil {
			return err
		}

		owned, err := s.repo.OwnedTagIDs(ctx, userID, ids)
		if err != nil {
			return err
		}
		if len(owned) != len(ids) {
			return apperr.Validation(fmt.Sprintf("invalid tag ids: %v", missing(ids, owned)))
		}

		out = make([]Assignment, 0, len(ids))
		for _, id := range ids {
			a := Assignment{TagID: id, EntityType: target.Type, EntityID: target.ID}
			if err := s.repo.CreateAssignment(ctx, &a); err != nil {
				return err
			}
			out = append(out, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAssignments solo devuelve asignaciones de tags del usuario.
func (s *Service) ListAssignments(ctx context.Context, userID int64, target ownership.Ref) ([]Assignment, error) {
	var out []Assignment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, target); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListAssignments(ctx, userID, target)
		return err
	})
	return out, err
}

// unique conserva el orden de la primera aparición.
func unique(ids []int64) []int64 {
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

func missing(want, got []int64) []int64 {
	have := make(map[int64]struct{}, len(got))
	for _, id := range got {
		have[id] = struct{}{}
	}
	var out []int64
	for _, id := range want {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
