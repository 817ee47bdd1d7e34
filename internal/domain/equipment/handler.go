package equipment

import (
	"net/http"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/equipment", func(er chi.Router) {
		er.Get("/", listHandler(svc, env))
		er.Post("/", createHandler(svc, env))
		er.Patch("/{itemID}", updateHandler(svc, env))
		er.Delete("/{itemID}", deleteHandler(svc, env))
	})
}

type createRequest struct {
	DogID        int64       `json:"dog_id"`
	Type         Type        `json:"type" enums:"LEASH,HARNESS,COLLAR,TOY,BED,BOWL,OTHER"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	PurchaseDate *httpx.Date `json:"purchase_date" swaggertype:"string"`
	Brand        string      `json:"brand"`
	Size         string      `json:"size"`
	Notes        string      `json:"notes"`
	IsActive     *bool       `json:"is_active"`
}

type updateRequest struct {
	Type         *Type       `json:"type"`
	Name         *string     `json:"name"`
	Description  *string     `json:"description"`
	PurchaseDate *httpx.Date `json:"purchase_date" swaggertype:"string"`
	Brand        *string     `json:"brand"`
	Size         *string     `json:"size"`
	Notes        *string     `json:"notes"`
	IsActive     *bool       `json:"is_active"`
}

type itemResponse struct {
	ID           int64       `json:"id"`
	DogID        int64       `json:"dog_id"`
	Type         Type        `json:"type"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	PurchaseDate *httpx.Date `json:"purchase_date,omitempty" swaggertype:"string"`
	Brand        string      `json:"brand"`
	Size         string      `json:"size"`
	Notes        string      `json:"notes"`
	IsActive     bool        `json:"is_active"`
}

func listHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		dogID, err := httpx.QueryID(r, "dog_id")
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		page, err := env.Page(r)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		items, err := svc.List(r.Context(), userID, ListFilter{DogID: dogID, Page: page})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]itemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toItemResponse(it))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req createRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		it, err := svc.Create(r.Context(), userID, CreateInput{
			DogID:        req.DogID,
			Type:         req.Type,
			Name:         req.Name,
			Description:  req.Description,
			PurchaseDate: httpx.DatePtr(req.PurchaseDate),
			Brand:        req.Brand,
			Size:         req.Size,
			Notes:        req.Notes,
			IsActive:     req.IsActive,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toItemResponse(it))
	}
}

func updateHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "itemID")
		if !ok {
			return
		}
		var req updateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		it, err := svc.Update(r.Context(), userID, id, UpdateInput{
			Type:         req.Type,
			Name:         req.Name,
			Description:  req.Description,
			PurchaseDate: httpx.DatePtr(req.PurchaseDate),
			Brand:        req.Brand,
			Size:         req.Size,
			Notes:        req.Notes,
			IsActive:     req.IsActive,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func deleteHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "itemID")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), userID, id); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		DogID:        it.DogID,
		Type:         it.Type,
		Name:         it.Name,
		Description:  it.Description,
		PurchaseDate: httpx.FromTimePtr(it.PurchaseDate),
		Brand:        it.Brand,
		Size:         it.Size,
		Notes:        it.Notes,
		IsActive:     it.IsActive,
	}
}
