package dogs

import (
	"context"

	"dog-care-api/internal/platform/paging"
)

type Repository interface {
	// Create asigna d.ID.
	Create(ctx context.Context, d *Dog) error
	GetByID(ctx context.Context, id int64) (Dog, error)
	ListByOwner(ctx context.Context, ownerUserID int64, page paging.Page) ([]Dog, error)
	Update(ctx context.Context, d Dog) error
	// Delete borra el perro y todo lo que cuelga de él.
	Delete(ctx context.Context, id int64) error

	// GetDetails devuelve apperr.ErrNotFound si la fila no existe.
	GetDetails(ctx context.Context, dogID int64) (ProfileDetails, error)
	CreateDetails(ctx context.Context, pd *ProfileDetails) error
	UpdateDetails(ctx context.Context, pd ProfileDetails) error
}
