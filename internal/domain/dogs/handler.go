package dogs

import (
	"net/http"
	"time"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, env))
		dr.Post("/", createDogHandler(svc, env))
		dr.Get("/{dogID}", getDogHandler(svc, env))
		dr.Patch("/{dogID}", updateDogHandler(svc, env))
		dr.Delete("/{dogID}", deleteDogHandler(svc, env))

		// Perfil extendido (get-or-create)
		dr.Get("/{dogID}/details", getDetailsHandler(svc, env))
		dr.Put("/{dogID}/details", updateDetailsHandler(svc, env))

		dr.Post("/{dogID}/avatar", uploadAvatarHandler(svc, env))
	})
}

type createDogRequest struct {
	Name        string      `json:"name"`
	Breed       string      `json:"breed"`
	DateOfBirth *httpx.Date `json:"date_of_birth" swaggertype:"string" example:"2021-04-01"`
	Sex         Sex         `json:"sex" enums:"MALE,FEMALE,UNKNOWN"`
	WeightKg    *float64    `json:"weight_kg"`
	Notes       string      `json:"notes"`
}

type updateDogRequest struct {
	Name        *string     `json:"name"`
	Breed       *string     `json:"breed"`
	DateOfBirth *httpx.Date `json:"date_of_birth" swaggertype:"string"`
	Sex         *Sex        `json:"sex"`
	WeightKg    *float64    `json:"weight_kg"`
	Notes       *string     `json:"notes"`
}

type detailsRequest struct {
	Allergies           *string `json:"allergies"`
	ForbiddenFoods      *string `json:"forbidden_foods"`
	PreferredFoods      *string `json:"preferred_foods"`
	DiagnosedConditions *string `json:"diagnosed_conditions"`
	CareNotes           *string `json:"care_notes"`
}

type detailsResponse struct {
	ID                  int64  `json:"id"`
	DogID               int64  `json:"dog_id"`
	Allergies           string `json:"allergies"`
	ForbiddenFoods      string `json:"forbidden_foods"`
	PreferredFoods      string `json:"preferred_foods"`
	DiagnosedConditions string `json:"diagnosed_conditions"`
	CareNotes           string `json:"care_notes"`
}

type dogResponse struct {
	ID             int64            `json:"id"`
	OwnerUserID    int64            `json:"owner_user_id"`
	Name           string           `json:"name"`
	Breed          string           `json:"breed"`
	DateOfBirth    *httpx.Date      `json:"date_of_birth,omitempty" swaggertype:"string"`
	Sex            Sex              `json:"sex"`
	WeightKg       *float64         `json:"weight_kg,omitempty"`
	AvatarImageURL string           `json:"avatar_image_url,omitempty"`
	Notes          string           `json:"notes"`
	Details        *detailsResponse `json:"details,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func listDogsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		page, err := env.Page(r)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		items, err := svc.List(r.Context(), userID, page)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createDogHandler godoc
// @Summary Crear perro
// @Description Crea un perro del usuario autenticado junto con su perfil extendido vacío.
// @Tags dogs
// @Accept json
// @Produce json
// @Param payload body createDogRequest true "Datos del perro"
// @Success 201 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /dogs [post]
func createDogHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		var req createDogRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		d, err := svc.Create(r.Context(), userID, CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			DateOfBirth: httpx.DatePtr(req.DateOfBirth),
			Sex:         req.Sex,
			WeightKg:    req.WeightKg,
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

func getDogHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, ok := httpx.PathID(w, r, "dogID")
		if !ok {
			return
		}

		d, err := svc.Get(r.Context(), userID, dogID)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func updateDogHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, ok := httpx.PathID(w, r, "dogID")
		if !ok {
			return
		}

		var req updateDogRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		d, err := svc.Update(r.Context(), userID, dogID, UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			DateOfBirth: httpx.DatePtr(req.DateOfBirth),
			Sex:         req.Sex,
			WeightKg:    req.WeightKg,
			Notes:       req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, ok := httpx.PathID(w, r, "dogID")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, dogID); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func getDetailsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, ok := httpx.PathID(w, r, "dogID")
		if !ok {
			return
		}

		pd, err := svc.GetDetails(r.Context(), userID, dogID)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDetailsResponse(pd))
	}
}

func updateDetailsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, ok := httpx.PathID(w, r, "dogID")
		if !ok {
			return
		}

		var req detailsRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		pd, err := svc.UpdateDetails(r.Context(), userID, dogID, DetailsInput(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDetailsResponse(pd))
	}
}

// uploadAvatarHandler godoc
// @Summary Subir avatar
// @Description Guarda una imagen jpeg/png como avatar del perro (multipart, campo "file").
// @Tags dogs
// @Accept multipart/form-data
// @Produce json
// @Param dogID path int true "ID del perro"
// @Param file formData file true "Imagen jpeg o png"
// @Success 200 {object} dogResponse
// @Failure 400 {object} errorResponse "invalid type"
// @Failure 404 {object} errorResponse
// @Router /dogs/{dogID}/avatar [post]
func uploadAvatarHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, ok := httpx.PathID(w, r, "dogID")
		if !ok {
			return
		}

		data, err := httpx.ReadUpload(r, env.MaxUploadBytes)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		d, err := svc.AttachAvatar(r.Context(), userID, dogID, data)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func toDogResponse(d Dog) dogResponse {
	out := dogResponse{
		ID:             d.ID,
		OwnerUserID:    d.OwnerUserID,
		Name:           d.Name,
		Breed:          d.Breed,
		DateOfBirth:    httpx.FromTimePtr(d.DateOfBirth),
		Sex:            d.Sex,
		WeightKg:       d.WeightKg,
		AvatarImageURL: d.AvatarImageURL,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.Details != nil {
		pd := toDetailsResponse(*d.Details)
		out.Details = &pd
	}
	return out
}

func toDetailsResponse(pd ProfileDetails) detailsResponse {
	return detailsResponse{
		ID:                  pd.ID,
		DogID:               pd.DogID,
		Allergies:           pd.Allergies,
		ForbiddenFoods:      pd.ForbiddenFoods,
		PreferredFoods:      pd.PreferredFoods,
		DiagnosedConditions: pd.DiagnosedConditions,
		CareNotes:           pd.CareNotes,
	}
}
