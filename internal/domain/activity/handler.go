package activity

import (
	"net/http"
	"time"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Get("/activity", listHandler(svc, env))
}

type itemResponse struct {
	Type        Kind      `json:"type"`
	ID          int64     `json:"id"`
	Datetime    time.Time `json:"datetime"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DogNames    []string  `json:"dog_names"`
}

// listHandler godoc
// @Summary Feed de actividad
// @Description Paseos, entrenamientos, visitas y cuidados del usuario, más recientes primero.
// @Tags activity
// @Produce json
// @Param limit query int false "Máximo de items (default 50)"
// @Success 200 {array} itemResponse
// @Router /activity [get]
func listHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		limit, err := httpx.QueryInt(r, "limit", 0)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		items, err := svc.List(r.Context(), userID, limit)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]itemResponse, 0, len(items))
		for _, it := range items {
			names := it.DogNames
			if names == nil {
				names = []string{}
			}
			out = append(out, itemResponse{
				Type:        it.Type,
				ID:          it.ID,
				Datetime:    it.Datetime,
				Title:       it.Title,
				Description: it.Description,
				DogNames:    names,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
