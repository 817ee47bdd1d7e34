package tags

import (
	"net/http"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/tags", func(tr chi.Router) {
		tr.Get("/", listTagsHandler(svc, env))
		tr.Post("/", createTagHandler(svc, env))
		tr.Delete("/{tagID}", deleteTagHandler(svc, env))

		tr.Get("/assignments", listAssignmentsHandler(svc, env))
		tr.Post("/assignments", assignHandler(svc, env))
	})
}

type createTagRequest struct {
	Name string `json:"name"`
}

type tagResponse struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

type assignRequest struct {
	EntityType string  `json:"entity_type" example:"WALK"`
	EntityID   int64   `json:"entity_id"`
	TagIDs     []int64 `json:"tag_ids"`
}

type assignmentResponse struct {
	ID         int64                `json:"id"`
	TagID      int64                `json:"tag_id"`
	EntityType ownership.EntityType `json:"entity_type"`
	EntityID   int64                `json:"entity_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func listTagsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), userID)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]tagResponse, 0, len(items))
		for _, t := range items {
			out = append(out, tagResponse(t))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createTagHandler godoc
// @Summary Crear tag
// @Tags tags
// @Accept json
// @Produce json
// @Param payload body createTagRequest true "Tag"
// @Success 201 {object} tagResponse
// @Failure 409 {object} errorResponse "ya existe"
// @Router /tags [post]
func createTagHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req createTagRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		t, err := svc.Create(r.Context(), userID, req.Name)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, tagResponse(t))
	}
}

func deleteTagHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "tagID")
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

// assignHandler godoc
// @Summary Asignar tags a una entidad
// @Description Todo-o-nada: un tag inválido rechaza la operación completa.
// @Tags tags
// @Accept json
// @Produce json
// @Param payload body assignRequest true "Asignación"
// @Success 201 {array} assignmentResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /tags/assignments [post]
func assignHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req assignRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		et, ok := ownership.ParseEntityType(req.EntityType)
		if !ok {
			httpx.WriteError(w, env.Log, apperr.Validation("unknown entity_type"))
			return
		}

		items, err := svc.Assign(r.Context(), userID, ownership.Ref{Type: et, ID: req.EntityID}, req.TagIDs)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toAssignmentResponses(items))
	}
}

func listAssignmentsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		et, ok := ownership.ParseEntityType(r.URL.Query().Get("entity_type"))
		if !ok {
			httpx.WriteError(w, env.Log, apperr.Validation("unknown entity_type"))
			return
		}
		id, err := httpx.QueryID(r, "entity_id")
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		if id == nil {
			httpx.WriteError(w, env.Log, apperr.Validation("entity_id is required"))
			return
		}

		items, err := svc.ListAssignments(r.Context(), userID, ownership.Ref{Type: et, ID: *id})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAssignmentResponses(items))
	}
}

func toAssignmentResponses(items []Assignment) []assignmentResponse {
	out := make([]assignmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, assignmentResponse(a))
	}
	return out
}
