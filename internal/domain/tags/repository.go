package tags

import (
	"context"

	"dog-care-api/internal/domain/ownership"
)

type Repository interface {
	ListTags(ctx context.Context, userID int64) ([]Tag, error)
	// CreateTag devuelve apperr.ErrConflict si el nombre ya existe para el usuario.
	CreateTag(ctx context.Context, t *Tag) error
	GetTag(ctx context.Context, id int64) (Tag, error)
	// DeleteTag borra también sus asignaciones.
	DeleteTag(ctx context.Context, id int64) error

	// OwnedTagIDs filtra ids a los que pertenecen a userID.
	OwnedTagIDs(ctx context.Context, userID int64, ids []int64) ([]int64, error)
	CreateAssignment(ctx context.Context, a *Assignment) error
	ListAssignments(ctx context.Context, userID int64, target ownership.Ref) ([]Assignment, error)
}
