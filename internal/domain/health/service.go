package health

import (
	"context"
	"strings"
	"time"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/files"
	"dog-care-api/internal/ports/tx"
)

type Service struct {
	repo  Repository
	tx    tx.Manager
	owner *ownership.Resolver
	files files.Storage
}

func NewService(repo Repository, txm tx.Manager, owner *ownership.Resolver, fs files.Storage) *Service {
	return &Service{
		repo:  repo,
		tx:    txm,
		owner: owner,
		files: fs,
	}
}

// requireDogFilter: listar con ?dog_id= de un perro ajeno es NotFound, no lista vacía.
func (s *Service) requireDogFilter(ctx context.Context, userID int64, f ListFilter) error {
	if f.DogID == nil {
		return nil
	}
	return s.owner.Require(ctx, userID, ownership.DogRef(*f.DogID))
}

// -------------------------
// Vet visits
// -------------------------

type VetVisitInput struct {
	DogID                  int64
	Date                   time.Time
	VetName                string
	Reason                 string
	Diagnosis              string
	TreatmentAndMedication string
	NotesMarkdown          string
}

func (s *Service) CreateVetVisit(ctx context.Context, userID int64, in VetVisitInput) (VetVisit, error) {
	if in.Date.IsZero() {
		return VetVisit{}, apperr.Validation("date is required")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return VetVisit{}, apperr.Validation("reason is required")
	}

	v := VetVisit{
		DogID:                  in.DogID,
		Date:                   truncateDay(in.Date),
		VetName:                strings.TrimSpace(in.VetName),
		Reason:                 strings.TrimSpace(in.Reason),
		Diagnosis:              strings.TrimSpace(in.Diagnosis),
		TreatmentAndMedication: strings.TrimSpace(in.TreatmentAndMedication),
		NotesMarkdown:          in.NotesMarkdown,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		return s.repo.CreateVetVisit(ctx, &v)
	})
	if err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

func (s *Service) ListVetVisits(ctx context.Context, userID int64, f ListFilter) ([]VetVisit, error) {
	var out []VetVisit
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogFilter(ctx, userID, f); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListVetVisits(ctx, userID, f)
		return err
	})
	return out, err
}

type VetVisitPatch struct {
	Date                   *time.Time
	VetName                *string
	Reason                 *string
	Diagnosis              *string
	TreatmentAndMedication *string
	NotesMarkdown          *string
}

func (s *Service) UpdateVetVisit(ctx context.Context, userID, id int64, p VetVisitPatch) (VetVisit, error) {
	if p.Reason != nil && strings.TrimSpace(*p.Reason) == "" {
		return VetVisit{}, apperr.Validation("reason cannot be empty")
	}

	var v VetVisit
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityVetVisit, ID: id}); err != nil {
			return err
		}
		var err error
		v, err = s.repo.GetVetVisit(ctx, id)
		if err != nil {
			return err
		}

		if p.Date != nil {
			v.Date = truncateDay(*p.Date)
		}
		setString(&v.VetName, p.VetName)
		setString(&v.Reason, p.Reason)
		setString(&v.Diagnosis, p.Diagnosis)
		setString(&v.TreatmentAndMedication, p.TreatmentAndMedication)
		if p.NotesMarkdown != nil {
			v.NotesMarkdown = *p.NotesMarkdown
		}
		return s.repo.UpdateVetVisit(ctx, v)
	})
	if err != nil {
		return VetVisit{}, err
	}
	return v, nil
}

func (s *Service) DeleteVetVisit(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityVetVisit, ID: id}); err != nil {
			return err
		}
		return s.repo.DeleteVetVisit(ctx, id)
	})
}

// -------------------------
// Vaccinations
// -------------------------

type VaccinationInput struct {
	DogID       int64
	Date        time.Time
	VaccineType string
	ValidUntil  *time.Time
	Notes       string
}

func (s *Service) CreateVaccination(ctx context.Context, userID int64, in VaccinationInput) (Vaccination, error) {
	if in.Date.IsZero() {
		return Vaccination{}, apperr.Validation("date is required")
	}
	if strings.TrimSpace(in.VaccineType) == "" {
		return Vaccination{}, apperr.Validation("vaccine_type is required")
	}

	v := Vaccination{
		DogID:       in.DogID,
		Date:        truncateDay(in.Date),
		VaccineType: strings.TrimSpace(in.VaccineType),
		ValidUntil:  truncateDayPtr(in.ValidUntil),
		Notes:       strings.TrimSpace(in.Notes),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		return s.repo.CreateVaccination(ctx, &v)
	})
	if err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) ListVaccinations(ctx context.Context, userID int64, f ListFilter) ([]Vaccination, error) {
	var out []Vaccination
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogFilter(ctx, userID, f); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListVaccinations(ctx, userID, f)
		return err
	})
	return out, err
}

type VaccinationPatch struct {
	Date        *time.Time
	VaccineType *string
	ValidUntil  *time.Time
	Notes       *string
}

func (s *Service) UpdateVaccination(ctx context.Context, userID, id int64, p VaccinationPatch) (Vaccination, error) {
	if p.VaccineType != nil && strings.TrimSpace(*p.VaccineType) == "" {
		return Vaccination{}, apperr.Validation("vaccine_type cannot be empty")
	}

	var v Vaccination
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityVaccination, ID: id}); err != nil {
			return err
		}
		var err error
		v, err = s.repo.GetVaccination(ctx, id)
		if err != nil {
			return err
		}

		if p.Date != nil {
			v.Date = truncateDay(*p.Date)
		}
		setString(&v.VaccineType, p.VaccineType)
		if p.ValidUntil != nil {
			v.ValidUntil = truncateDayPtr(p.ValidUntil)
		}
		setString(&v.Notes, p.Notes)
		return s.repo.UpdateVaccination(ctx, v)
	})
	if err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) DeleteVaccination(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityVaccination, ID: id}); err != nil {
			return err
		}
		return s.repo.DeleteVaccination(ctx, id)
	})
}

// -------------------------
// Invoices
// -------------------------

type InvoiceInput struct {
	DogID       *int64
	VetVisitID  *int64
	Date        time.Time
	Amount      float64
	Currency    string
	Description string
}

// CreateInvoice exige al menos un vínculo; cada vínculo presente debe ser del usuario.
func (s *Service) CreateInvoice(ctx context.Context, userID int64, in InvoiceInput) (Invoice, error) {
	if in.DogID == nil && in.VetVisitID == nil {
		return Invoice{}, apperr.Validation("invoice must be linked to a dog or a vet visit")
	}
	if in.Date.IsZero() {
		return Invoice{}, apperr.Validation("date is required")
	}
	if in.Amount <= 0 {
		return Invoice{}, apperr.Validation("amount must be > 0")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	inv := Invoice{
		DogID:       in.DogID,
		VetVisitID:  in.VetVisitID,
		Date:        truncateDay(in.Date),
		Amount:      in.Amount,
		Currency:    currency,
		Description: strings.TrimSpace(in.Description),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if in.DogID != nil {
			if err := s.owner.Require(ctx, userID, ownership.DogRef(*in.DogID)); err != nil {
				return err
			}
		}
		if in.VetVisitID != nil {
			if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityVetVisit, ID: *in.VetVisitID}); err != nil {
				return err
			}
		}
		return s.repo.CreateInvoice(ctx, &inv)
	})
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *Service) ListInvoices(ctx context.Context, userID int64, f ListFilter) ([]Invoice, error) {
	var out []Invoice
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogFilter(ctx, userID, f); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListInvoices(ctx, userID, f)
		return err
	})
	return out, err
}

// InvoicePatch no permite mover la factura a otro perro/visita.
type InvoicePatch struct {
	Date        *time.Time
	Amount      *float64
	Currency    *string
	Description *string
}

func (s *Service) UpdateInvoice(ctx context.Context, userID, id int64, p InvoicePatch) (Invoice, error) {
	if p.Amount != nil && *p.Amount <= 0 {
		return Invoice{}, apperr.Validation("amount must be > 0")
	}

	var inv Invoice
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityInvoice, ID: id}); err != nil {
			return err
		}
		var err error
		inv, err = s.repo.GetInvoice(ctx, id)
		if err != nil {
			return err
		}

		if p.Date != nil {
			inv.Date = truncateDay(*p.Date)
		}
		if p.Amount != nil {
			inv.Amount = *p.Amount
		}
		if p.Currency != nil && strings.TrimSpace(*p.Currency) != "" {
			inv.Currency = strings.ToUpper(strings.TrimSpace(*p.Currency))
		}
		setString(&inv.Description, p.Description)
		return s.repo.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.Ref{Type: ownership.EntityInvoice, ID: id}); err != nil {
			return err
		}
		return s.repo.DeleteInvoice(ctx, id)
	})
}

// AttachInvoiceFile guarda el archivo fuera de la transacción y después persiste la URL.
func (s *Service) AttachInvoiceFile(ctx context.Context, userID, id int64, data []byte) (Invoice, error) {
	ref := ownership.Ref{Type: ownership.EntityInvoice, ID: id}
	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.owner.Require(ctx, userID, ref)
	}); err != nil {
		return Invoice{}, err
	}

	url, err := s.files.Store(ctx, files.KindInvoice, data, files.InvoiceTypes)
	if err != nil {
		return Invoice{}, err
	}

	var inv Invoice
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ref); err != nil {
			return err
		}
		var err error
		inv, err = s.repo.GetInvoice(ctx, id)
		if err != nil {
			return err
		}
		inv.FileURL = url
		return s.repo.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func truncateDayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := truncateDay(*t)
	return &d
}
