package walks

import (
	"net/http"
	"time"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/walks", func(wr chi.Router) {
		wr.Get("/", listWalksHandler(svc, env))
		wr.Post("/", createWalkHandler(svc, env))
		wr.Get("/{walkID}", getWalkHandler(svc, env))
		wr.Patch("/{walkID}", updateWalkHandler(svc, env))
		wr.Delete("/{walkID}", deleteWalkHandler(svc, env))
		wr.Post("/{walkID}/gpx", uploadGPXHandler(svc, env))
	})
}

type createWalkRequest struct {
	DogIDs          []int64   `json:"dog_ids"`
	StartDatetime   time.Time `json:"start_datetime"`
	DurationMinutes int       `json:"duration_minutes"`
	Mood            Mood      `json:"mood" enums:"CALM,NORMAL,STRESSED"`
	DistanceKm      *float64  `json:"distance_km"`
	NotesMarkdown   string    `json:"notes_markdown"`
	VideoURLs       []string  `json:"video_urls"`
	TagIDs          []int64   `json:"tag_ids"`
}

type updateWalkRequest struct {
	StartDatetime   *time.Time `json:"start_datetime"`
	DurationMinutes *int       `json:"duration_minutes"`
	Mood            *Mood      `json:"mood"`
	DistanceKm      *float64   `json:"distance_km"`
	NotesMarkdown   *string    `json:"notes_markdown"`
	VideoURLs       *[]string  `json:"video_urls"`
	DogIDs          *[]int64   `json:"dog_ids"`
}

type walkResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	DogIDs          []int64   `json:"dog_ids"`
	StartDatetime   time.Time `json:"start_datetime"`
	DurationMinutes int       `json:"duration_minutes"`
	Mood            Mood      `json:"mood"`
	DistanceKm      *float64  `json:"distance_km,omitempty"`
	NotesMarkdown   string    `json:"notes_markdown"`
	VideoURLs       []string  `json:"video_urls"`
	GPXFileURL      string    `json:"gpx_file_url,omitempty"`
	HasRouteData    bool      `json:"has_route_data"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func listWalksHandler(svc *Service, env httpx.Env) http.HandlerFunc {
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
		out := make([]walkResponse, 0, len(items))
		for _, wk := range items {
			out = append(out, toWalkResponse(wk))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createWalkHandler godoc
// @Summary Registrar paseo
// @Description Todos los dog_ids tienen que ser del usuario; si uno falla no se crea nada.
// @Tags walks
// @Accept json
// @Produce json
// @Param payload body createWalkRequest true "Paseo"
// @Success 201 {object} walkResponse
// @Failure 400 {object} errorResponse
// @Router /walks [post]
func createWalkHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req createWalkRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		wk, err := svc.Create(r.Context(), userID, CreateInput(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toWalkResponse(wk))
	}
}

func getWalkHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "walkID")
		if !ok {
			return
		}
		wk, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toWalkResponse(wk))
	}
}

func updateWalkHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "walkID")
		if !ok {
			return
		}
		var req updateWalkRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		wk, err := svc.Update(r.Context(), userID, id, UpdateInput(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toWalkResponse(wk))
	}
}

func deleteWalkHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "walkID")
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

// uploadGPXHandler godoc
// @Summary Subir track GPX
// @Tags walks
// @Accept multipart/form-data
// @Produce json
// @Param walkID path int true "ID del paseo"
// @Param file formData file true "GPX/XML"
// @Success 200 {object} walkResponse
// @Failure 400 {object} errorResponse "invalid type"
// @Failure 404 {object} errorResponse
// @Router /walks/{walkID}/gpx [post]
func uploadGPXHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "walkID")
		if !ok {
			return
		}
		data, err := httpx.ReadUpload(r, env.MaxUploadBytes)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		wk, err := svc.AttachGPX(r.Context(), userID, id, data)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toWalkResponse(wk))
	}
}

func toWalkResponse(wk Walk) walkResponse {
	dogIDs := wk.DogIDs
	if dogIDs == nil {
		dogIDs = []int64{}
	}
	urls := wk.VideoURLs
	if urls == nil {
		urls = []string{}
	}
	return walkResponse{
		ID:              wk.ID,
		UserID:          wk.UserID,
		DogIDs:          dogIDs,
		StartDatetime:   wk.StartDatetime,
		DurationMinutes: wk.DurationMinutes,
		Mood:            wk.Mood,
		DistanceKm:      wk.DistanceKm,
		NotesMarkdown:   wk.NotesMarkdown,
		VideoURLs:       urls,
		GPXFileURL:      wk.GPXFileURL,
		HasRouteData:    wk.HasRouteData,
	}
}
