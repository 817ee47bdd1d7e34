package health_test

import (
	"context"
	"testing"
	"time"

	"dog-care-api/internal/adapters/storage/memory"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/files"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFiles struct {
	kind files.Kind
	url  string
	err  error
}

func (f *fakeFiles) Store(_ context.Context, kind files.Kind, _ []byte, _ []string) (string, error) {
	f.kind = kind
	return f.url, f.err
}

func setup(t *testing.T) (*health.Service, *memory.Store, *fakeFiles) {
	t.Helper()
	s := memory.NewStore()
	fs := &fakeFiles{url: "/media/invoices/x.pdf"}
	svc := health.NewService(memory.NewHealthRepo(s), s, ownership.NewResolver(memory.NewChain(s)), fs)
	return svc, s, fs
}

func addDog(t *testing.T, s *memory.Store, owner int64) int64 {
	t.Helper()
	d := dogs.Dog{OwnerUserID: owner, Name: "Rex", Sex: dogs.SexUnknown}
	require.NoError(t, memory.NewDogRepo(s).Create(context.Background(), &d))
	return d.ID
}

func TestCreateInvoice_NeedsALink(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.CreateInvoice(context.Background(), 1, health.InvoiceInput{
		Date:   time.Now(),
		Amount: 10,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "linked to a dog or a vet visit")
}

func TestCreateInvoice_ThroughVisitIsVisibleByDog(t *testing.T) {
	svc, s, _ := setup(t)
	ctx := context.Background()
	dog := addDog(t, s, 1)

	v, err := svc.CreateVetVisit(ctx, 1, health.VetVisitInput{
		DogID:  dog,
		Date:   time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC),
		Reason: "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), v.Date)

	inv, err := svc.CreateInvoice(ctx, 1, health.InvoiceInput{
		VetVisitID: &v.ID,
		Date:       time.Now(),
		Amount:     120.5,
		Currency:   " eur ",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", inv.Currency)

	list, err := svc.ListInvoices(ctx, 1, health.ListFilter{DogID: &dog})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inv.ID, list[0].ID)

	// otro usuario no la ve ni la puede tocar
	list, err = svc.ListInvoices(ctx, 2, health.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, apperr.IsNotFound(svc.DeleteInvoice(ctx, 2, inv.ID)))
}

func TestCreateInvoice_DefaultsAndForeignLinks(t *testing.T) {
	svc, s, _ := setup(t)
	ctx := context.Background()
	mine := addDog(t, s, 1)
	theirs := addDog(t, s, 2)

	inv, err := svc.CreateInvoice(ctx, 1, health.InvoiceInput{DogID: &mine, Date: time.Now(), Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, health.DefaultCurrency, inv.Currency)

	_, err = svc.CreateInvoice(ctx, 1, health.InvoiceInput{DogID: &theirs, Date: time.Now(), Amount: 1})
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.CreateInvoice(ctx, 1, health.InvoiceInput{DogID: &mine, Date: time.Now(), Amount: 0})
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteVetVisit_CascadesInvoices(t *testing.T) {
	svc, s, _ := setup(t)
	ctx := context.Background()
	dog := addDog(t, s, 1)

	v, err := svc.CreateVetVisit(ctx, 1, health.VetVisitInput{DogID: dog, Date: time.Now(), Reason: "x"})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(ctx, 1, health.InvoiceInput{VetVisitID: &v.ID, Date: time.Now(), Amount: 5})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVetVisit(ctx, 1, v.ID))

	list, err := svc.ListInvoices(ctx, 1, health.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVaccination_RequiredFields(t *testing.T) {
	svc, s, _ := setup(t)
	dog := addDog(t, s, 1)

	_, err := svc.CreateVaccination(context.Background(), 1, health.VaccinationInput{DogID: dog, Date: time.Now()})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateVaccination(context.Background(), 1, health.VaccinationInput{DogID: dog, VaccineType: "rabies"})
	assert.True(t, apperr.IsValidation(err))
}

func TestAttachInvoiceFile(t *testing.T) {
	svc, s, fs := setup(t)
	ctx := context.Background()
	dog := addDog(t, s, 1)
	inv, err := svc.CreateInvoice(ctx, 1, health.InvoiceInput{DogID: &dog, Date: time.Now(), Amount: 3})
	require.NoError(t, err)

	_, err = svc.AttachInvoiceFile(ctx, 2, inv.ID, []byte("%PDF"))
	assert.True(t, apperr.IsNotFound(err))

	got, err := svc.AttachInvoiceFile(ctx, 1, inv.ID, []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, files.KindInvoice, fs.kind)
	assert.Equal(t, "/media/invoices/x.pdf", got.FileURL)

	fs.err = apperr.Validation("invalid type")
	_, err = svc.AttachInvoiceFile(ctx, 1, inv.ID, []byte("nope"))
	assert.True(t, apperr.IsValidation(err))
}
