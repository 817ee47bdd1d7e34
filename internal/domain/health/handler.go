package health

import (
	"context"
	"net/http"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/health", func(hr chi.Router) {
		hr.Get("/vet-visits", listVetVisitsHandler(svc, env))
		hr.Post("/vet-visits", createVetVisitHandler(svc, env))
		hr.Patch("/vet-visits/{visitID}", updateVetVisitHandler(svc, env))
		hr.Delete("/vet-visits/{visitID}", deleteHandler(env, "visitID", svc.DeleteVetVisit))

		hr.Get("/vaccinations", listVaccinationsHandler(svc, env))
		hr.Post("/vaccinations", createVaccinationHandler(svc, env))
		hr.Patch("/vaccinations/{vaccinationID}", updateVaccinationHandler(svc, env))
		hr.Delete("/vaccinations/{vaccinationID}", deleteHandler(env, "vaccinationID", svc.DeleteVaccination))

		hr.Get("/invoices", listInvoicesHandler(svc, env))
		hr.Post("/invoices", createInvoiceHandler(svc, env))
		hr.Patch("/invoices/{invoiceID}", updateInvoiceHandler(svc, env))
		hr.Delete("/invoices/{invoiceID}", deleteHandler(env, "invoiceID", svc.DeleteInvoice))
		hr.Post("/invoices/{invoiceID}/file", uploadInvoiceFileHandler(svc, env))
	})
}

// -------------------------
// DTOs
// -------------------------

type vetVisitRequest struct {
	DogID                  int64       `json:"dog_id"`
	Date                   *httpx.Date `json:"date" swaggertype:"string" example:"2024-03-10"`
	VetName                string      `json:"vet_name"`
	Reason                 string      `json:"reason"`
	Diagnosis              string      `json:"diagnosis"`
	TreatmentAndMedication string      `json:"treatment_and_medication"`
	NotesMarkdown          string      `json:"notes_markdown"`
}

type vetVisitPatchRequest struct {
	Date                   *httpx.Date `json:"date" swaggertype:"string"`
	VetName                *string     `json:"vet_name"`
	Reason                 *string     `json:"reason"`
	Diagnosis              *string     `json:"diagnosis"`
	TreatmentAndMedication *string     `json:"treatment_and_medication"`
	NotesMarkdown          *string     `json:"notes_markdown"`
}

type vetVisitResponse struct {
	ID                     int64      `json:"id"`
	DogID                  int64      `json:"dog_id"`
	Date                   httpx.Date `json:"date" swaggertype:"string"`
	VetName                string     `json:"vet_name"`
	Reason                 string     `json:"reason"`
	Diagnosis              string     `json:"diagnosis"`
	TreatmentAndMedication string     `json:"treatment_and_medication"`
	NotesMarkdown          string     `json:"notes_markdown"`
}

type vaccinationRequest struct {
	DogID       int64       `json:"dog_id"`
	Date        *httpx.Date `json:"date" swaggertype:"string"`
	VaccineType string      `json:"vaccine_type"`
	ValidUntil  *httpx.Date `json:"valid_until" swaggertype:"string"`
	Notes       string      `json:"notes"`
}

type vaccinationPatchRequest struct {
	Date        *httpx.Date `json:"date" swaggertype:"string"`
	VaccineType *string     `json:"vaccine_type"`
	ValidUntil  *httpx.Date `json:"valid_until" swaggertype:"string"`
	Notes       *string     `json:"notes"`
}

type vaccinationResponse struct {
	ID          int64       `json:"id"`
	DogID       int64       `json:"dog_id"`
	Date        httpx.Date  `json:"date" swaggertype:"string"`
	VaccineType string      `json:"vaccine_type"`
	ValidUntil  *httpx.Date `json:"valid_until,omitempty" swaggertype:"string"`
	Notes       string      `json:"notes"`
}

type invoiceRequest struct {
	DogID       *int64      `json:"dog_id"`
	VetVisitID  *int64      `json:"vet_visit_id"`
	Date        *httpx.Date `json:"date" swaggertype:"string"`
	Amount      float64     `json:"amount"`
	Currency    string      `json:"currency" example:"CHF"`
	Description string      `json:"description"`
}

type invoicePatchRequest struct {
	Date        *httpx.Date `json:"date" swaggertype:"string"`
	Amount      *float64    `json:"amount"`
	Currency    *string     `json:"currency"`
	Description *string     `json:"description"`
}

type invoiceResponse struct {
	ID          int64      `json:"id"`
	DogID       *int64     `json:"dog_id,omitempty"`
	VetVisitID  *int64     `json:"vet_visit_id,omitempty"`
	Date        httpx.Date `json:"date" swaggertype:"string"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Description string     `json:"description"`
	FileURL     string     `json:"file_url,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// -------------------------
// Handlers
// -------------------------

func listFilter(w http.ResponseWriter, r *http.Request, env httpx.Env) (ListFilter, bool) {
	dogID, err := httpx.QueryID(r, "dog_id")
	if err != nil {
		httpx.WriteError(w, env.Log, err)
		return ListFilter{}, false
	}
	page, err := env.Page(r)
	if err != nil {
		httpx.WriteError(w, env.Log, err)
		return ListFilter{}, false
	}
	return ListFilter{DogID: dogID, Page: page}, true
}

func listVetVisitsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		f, ok := listFilter(w, r, env)
		if !ok {
			return
		}

		items, err := svc.ListVetVisits(r.Context(), userID, f)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]vetVisitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetVisitResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createVetVisitHandler godoc
// @Summary Registrar visita veterinaria
// @Tags health
// @Accept json
// @Produce json
// @Param payload body vetVisitRequest true "Visita"
// @Success 201 {object} vetVisitResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "dog not found"
// @Router /health/vet-visits [post]
func createVetVisitHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req vetVisitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		in := VetVisitInput{
			DogID:                  req.DogID,
			VetName:                req.VetName,
			Reason:                 req.Reason,
			Diagnosis:              req.Diagnosis,
			TreatmentAndMedication: req.TreatmentAndMedication,
			NotesMarkdown:          req.NotesMarkdown,
		}
		if req.Date != nil {
			in.Date = req.Date.Time()
		}

		v, err := svc.CreateVetVisit(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toVetVisitResponse(v))
	}
}

func updateVetVisitHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "visitID")
		if !ok {
			return
		}
		var req vetVisitPatchRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		v, err := svc.UpdateVetVisit(r.Context(), userID, id, VetVisitPatch{
			Date:                   httpx.DatePtr(req.Date),
			VetName:                req.VetName,
			Reason:                 req.Reason,
			Diagnosis:              req.Diagnosis,
			TreatmentAndMedication: req.TreatmentAndMedication,
			NotesMarkdown:          req.NotesMarkdown,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVetVisitResponse(v))
	}
}

func listVaccinationsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		f, ok := listFilter(w, r, env)
		if !ok {
			return
		}

		items, err := svc.ListVaccinations(r.Context(), userID, f)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createVaccinationHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req vaccinationRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		in := VaccinationInput{
			DogID:       req.DogID,
			VaccineType: req.VaccineType,
			ValidUntil:  httpx.DatePtr(req.ValidUntil),
			Notes:       req.Notes,
		}
		if req.Date != nil {
			in.Date = req.Date.Time()
		}

		v, err := svc.CreateVaccination(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

func updateVaccinationHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "vaccinationID")
		if !ok {
			return
		}
		var req vaccinationPatchRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		v, err := svc.UpdateVaccination(r.Context(), userID, id, VaccinationPatch{
			Date:        httpx.DatePtr(req.Date),
			VaccineType: req.VaccineType,
			ValidUntil:  httpx.DatePtr(req.ValidUntil),
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVaccinationResponse(v))
	}
}

func listInvoicesHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		f, ok := listFilter(w, r, env)
		if !ok {
			return
		}

		items, err := svc.ListInvoices(r.Context(), userID, f)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]invoiceResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvoiceResponse(inv))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createInvoiceHandler godoc
// @Summary Registrar factura
// @Description Requiere dog_id o vet_visit_id (o ambos).
// @Tags health
// @Accept json
// @Produce json
// @Param payload body invoiceRequest true "Factura"
// @Success 201 {object} invoiceResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /health/invoices [post]
func createInvoiceHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req invoiceRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		in := InvoiceInput{
			DogID:       req.DogID,
			VetVisitID:  req.VetVisitID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
		}
		if req.Date != nil {
			in.Date = req.Date.Time()
		}

		inv, err := svc.CreateInvoice(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toInvoiceResponse(inv))
	}
}

func updateInvoiceHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "invoiceID")
		if !ok {
			return
		}
		var req invoicePatchRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		inv, err := svc.UpdateInvoice(r.Context(), userID, id, InvoicePatch{
			Date:        httpx.DatePtr(req.Date),
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

// uploadInvoiceFileHandler godoc
// @Summary Adjuntar archivo a factura
// @Tags health
// @Accept multipart/form-data
// @Produce json
// @Param invoiceID path int true "ID de la factura"
// @Param file formData file true "pdf, jpeg o png"
// @Success 200 {object} invoiceResponse
// @Failure 400 {object} errorResponse "invalid type"
// @Failure 404 {object} errorResponse
// @Router /health/invoices/{invoiceID}/file [post]
func uploadInvoiceFileHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "invoiceID")
		if !ok {
			return
		}
		data, err := httpx.ReadUpload(r, env.MaxUploadBytes)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		inv, err := svc.AttachInvoiceFile(r.Context(), userID, id, data)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toInvoiceResponse(inv))
	}
}

func deleteHandler(env httpx.Env, param string, del func(ctx context.Context, userID, id int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, param)
		if !ok {
			return
		}
		if err := del(r.Context(), userID, id); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func toVetVisitResponse(v VetVisit) vetVisitResponse {
	return vetVisitResponse{
		ID:                     v.ID,
		DogID:                  v.DogID,
		Date:                   httpx.Date(v.Date),
		VetName:                v.VetName,
		Reason:                 v.Reason,
		Diagnosis:              v.Diagnosis,
		TreatmentAndMedication: v.TreatmentAndMedication,
		NotesMarkdown:          v.NotesMarkdown,
	}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:          v.ID,
		DogID:       v.DogID,
		Date:        httpx.Date(v.Date),
		VaccineType: v.VaccineType,
		ValidUntil:  httpx.FromTimePtr(v.ValidUntil),
		Notes:       v.Notes,
	}
}

func toInvoiceResponse(inv Invoice) invoiceResponse {
	return invoiceResponse{
		ID:          inv.ID,
		DogID:       inv.DogID,
		VetVisitID:  inv.VetVisitID,
		Date:        httpx.Date(inv.Date),
		Amount:      inv.Amount,
		Currency:    inv.Currency,
		Description: inv.Description,
		FileURL:     inv.FileURL,
	}
}
