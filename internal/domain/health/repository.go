package health

import (
	"context"
	"time"

	"dog-care-api/internal/platform/paging"
)

// ListFilter: DogID opcional; el filtro por usuario siempre se aplica.
type ListFilter struct {
	DogID *int64
	Page  paging.Page
}

type Repository interface {
	CreateVetVisit(ctx context.Context, v *VetVisit) error
	GetVetVisit(ctx context.Context, id int64) (VetVisit, error)
	// ListVetVisits ordena por fecha desc.
	ListVetVisits(ctx context.Context, userID int64, f ListFilter) ([]VetVisit, error)
	// ListVetVisitsBetween: visitas con from <= date <= until, sin paginar.
	ListVetVisitsBetween(ctx context.Context, userID int64, from, until time.Time) ([]VetVisit, error)
	UpdateVetVisit(ctx context.Context, v VetVisit) error
	DeleteVetVisit(ctx context.Context, id int64) error

	CreateVaccination(ctx context.Context, v *Vaccination) error
	GetVaccination(ctx context.Context, id int64) (Vaccination, error)
	ListVaccinations(ctx context.Context, userID int64, f ListFilter) ([]Vaccination, error)
	// ListExpiringVaccinations: valid_until no nulo y from <= valid_until <= until.
	ListExpiringVaccinations(ctx context.Context, userID int64, from, until time.Time) ([]Vaccination, error)
	UpdateVaccination(ctx context.Context, v Vaccination) error
	DeleteVaccination(ctx context.Context, id int64) error

	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id int64) (Invoice, error)
	// ListInvoices resuelve ownership por dog directo o vía vet visit.
	ListInvoices(ctx context.Context, userID int64, f ListFilter) ([]Invoice, error)
	UpdateInvoice(ctx context.Context, inv Invoice) error
	DeleteInvoice(ctx context.Context, id int64) error
}
