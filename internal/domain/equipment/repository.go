package equipment

import (
	"context"

	"dog-care-api/internal/platform/paging"
)

type ListFilter struct {
	DogID *int64
	Page  paging.Page
}

type Repository interface {
	Create(ctx context.Context, it *Item) error
	Get(ctx context.Context, id int64) (Item, error)
	List(ctx context.Context, userID int64, f ListFilter) ([]Item, error)
	Update(ctx context.Context, it Item) error
	Delete(ctx context.Context, id int64) error
}
