package walks

import (
	"context"

	"dog-care-api/internal/platform/paging"
)

type ListFilter struct {
	DogID *int64
	Page  paging.Page
}

// Repository devuelve los Walk con DogIDs ya cargados.
type Repository interface {
	Create(ctx context.Context, w *Walk) error
	Get(ctx context.Context, id int64) (Walk, error)
	// List ordena por start_datetime desc.
	List(ctx context.Context, userID int64, f ListFilter) ([]Walk, error)
	Update(ctx context.Context, w Walk) error
	Delete(ctx context.Context, id int64) error

	// SetDogs reemplaza el conjunto completo de walk_dogs.
	SetDogs(ctx context.Context, walkID int64, dogIDs []int64) error
}
