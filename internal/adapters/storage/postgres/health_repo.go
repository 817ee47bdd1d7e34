package postgres

import (
	"context"
	"time"

	"dog-care-api/internal/domain/health"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var (
	vetVisitColumns = []string{
		"id", "dog_id", "date", "vet_name", "reason", "diagnosis",
		"treatment_and_medication", "notes_markdown",
	}
	vaccinationColumns = []string{"id", "dog_id", "date", "vaccine_type", "valid_until", "notes"}
	invoiceColumns     = []string{
		"id", "dog_id", "vet_visit_id", "date", "amount", "currency", "description", "file_url",
	}
)

type HealthRepo struct {
	db *sqlx.DB
}

func NewHealthRepo(db *sqlx.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

// -------------------------
// Vet visits
// -------------------------

func (r *HealthRepo) CreateVetVisit(ctx context.Context, v *health.VetVisit) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("vet_visits").
		Columns("dog_id", "date", "vet_name", "reason", "diagnosis", "treatment_and_medication", "notes_markdown").
		Values(v.DogID, v.Date, v.VetName, v.Reason, v.Diagnosis, v.TreatmentAndMedication, v.NotesMarkdown),
		"vet visit")
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

func (r *HealthRepo) GetVetVisit(ctx context.Context, id int64) (health.VetVisit, error) {
	var v health.VetVisit
	err := getOne(ctx, conn(ctx, r.db), &v,
		psql.Select(vetVisitColumns...).From("vet_visits").Where(sq.Eq{"id": id}), "vet visit")
	return v, err
}

func (r *HealthRepo) vetVisits() sq.SelectBuilder {
	return psql.Select(prefixed("v", vetVisitColumns)...).
		From("vet_visits v").
		Join("dogs d ON d.id = v.dog_id")
}

func (r *HealthRepo) ListVetVisits(ctx context.Context, userID int64, f health.ListFilter) ([]health.VetVisit, error) {
	out := make([]health.VetVisit, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(r.vetVisits().
		Where(ownedDog("d", userID, f.DogID)).
		OrderBy("v.date DESC", "v.id DESC"), f.Page))
	return out, err
}

func (r *HealthRepo) ListVetVisitsBetween(ctx context.Context, userID int64, from, until time.Time) ([]health.VetVisit, error) {
	out := make([]health.VetVisit, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, r.vetVisits().
		Where(ownedDog("d", userID, nil)).
		Where(sq.GtOrEq{"v.date": from}).
		Where(sq.LtOrEq{"v.date": until}).
		OrderBy("v.date ASC", "v.id ASC"))
	return out, err
}

func (r *HealthRepo) UpdateVetVisit(ctx context.Context, v health.VetVisit) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("vet_visits").
		SetMap(map[string]any{
			"date":                     v.Date,
			"vet_name":                 v.VetName,
			"reason":                   v.Reason,
			"diagnosis":                v.Diagnosis,
			"treatment_and_medication": v.TreatmentAndMedication,
			"notes_markdown":           v.NotesMarkdown,
		}).
		Where(sq.Eq{"id": v.ID}), "vet visit")
}

func (r *HealthRepo) DeleteVetVisit(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("vet_visits").Where(sq.Eq{"id": id}), "vet visit")
}

// -------------------------
// Vaccinations
// -------------------------

func (r *HealthRepo) CreateVaccination(ctx context.Context, v *health.Vaccination) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("vaccinations").
		Columns("dog_id", "date", "vaccine_type", "valid_until", "notes").
		Values(v.DogID, v.Date, v.VaccineType, v.ValidUntil, v.Notes), "vaccination")
	if err != nil {
		return err
	}
	v.ID = id
	return nil
}

func (r *HealthRepo) GetVaccination(ctx context.Context, id int64) (health.Vaccination, error) {
	var v health.Vaccination
	err := getOne(ctx, conn(ctx, r.db), &v,
		psql.Select(vaccinationColumns...).From("vaccinations").Where(sq.Eq{"id": id}), "vaccination")
	return v, err
}

func (r *HealthRepo) vaccinations() sq.SelectBuilder {
	return psql.Select(prefixed("v", vaccinationColumns)...).
		From("vaccinations v").
		Join("dogs d ON d.id = v.dog_id")
}

func (r *HealthRepo) ListVaccinations(ctx context.Context, userID int64, f health.ListFilter) ([]health.Vaccination, error) {
	out := make([]health.Vaccination, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(r.vaccinations().
		Where(ownedDog("d", userID, f.DogID)).
		OrderBy("v.date DESC", "v.id DESC"), f.Page))
	return out, err
}

func (r *HealthRepo) ListExpiringVaccinations(ctx context.Context, userID int64, from, until time.Time) ([]health.Vaccination, error) {
	out := make([]health.Vaccination, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, r.vaccinations().
		Where(ownedDog("d", userID, nil)).
		Where(sq.NotEq{"v.valid_until": nil}).
		Where(sq.GtOrEq{"v.valid_until": from}).
		Where(sq.LtOrEq{"v.valid_until": until}).
		OrderBy("v.valid_until ASC", "v.id ASC"))
	return out, err
}

func (r *HealthRepo) UpdateVaccination(ctx context.Context, v health.Vaccination) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("vaccinations").
		SetMap(map[string]any{
			"date":         v.Date,
			"vaccine_type": v.VaccineType,
			"valid_until":  v.ValidUntil,
			"notes":        v.Notes,
		}).
		Where(sq.Eq{"id": v.ID}), "vaccination")
}

func (r *HealthRepo) DeleteVaccination(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("vaccinations").Where(sq.Eq{"id": id}), "vaccination")
}

// -------------------------
// Invoices
// -------------------------

func (r *HealthRepo) CreateInvoice(ctx context.Context, inv *health.Invoice) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("invoices").
		Columns("dog_id", "vet_visit_id", "date", "amount", "currency", "description", "file_url").
		Values(inv.DogID, inv.VetVisitID, inv.Date, inv.Amount, inv.Currency, inv.Description, inv.FileURL),
		"invoice")
	if err != nil {
		return err
	}
	inv.ID = id
	return nil
}

func (r *HealthRepo) GetInvoice(ctx context.Context, id int64) (health.Invoice, error) {
	var inv health.Invoice
	err := getOne(ctx, conn(ctx, r.db), &inv,
		psql.Select(invoiceColumns...).From("invoices").Where(sq.Eq{"id": id}), "invoice")
	return inv, err
}

// ListInvoices: visible si el perro directo o el de la visita es del usuario;
// el filtro por perro aplica sobre cualquiera de los dos caminos.
func (r *HealthRepo) ListInvoices(ctx context.Context, userID int64, f health.ListFilter) ([]health.Invoice, error) {
	out := make([]health.Invoice, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(
		psql.Select(prefixed("i", invoiceColumns)...).
			From("invoices i").
			LeftJoin("dogs d ON d.id = i.dog_id").
			LeftJoin("vet_visits v ON v.id = i.vet_visit_id").
			LeftJoin("dogs vd ON vd.id = v.dog_id").
			Where(sq.Or{ownedDog("d", userID, f.DogID), ownedDog("vd", userID, f.DogID)}).
			OrderBy("i.date DESC", "i.id DESC"), f.Page))
	return out, err
}

func (r *HealthRepo) UpdateInvoice(ctx context.Context, inv health.Invoice) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("invoices").
		SetMap(map[string]any{
			"date":        inv.Date,
			"amount":      inv.Amount,
			"currency":    inv.Currency,
			"description": inv.Description,
			"file_url":    inv.FileURL,
		}).
		Where(sq.Eq{"id": inv.ID}), "invoice")
}

func (r *HealthRepo) DeleteInvoice(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("invoices").Where(sq.Eq{"id": id}), "invoice")
}
