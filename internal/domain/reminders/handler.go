package reminders

import (
	"net/http"
	"strconv"
	"strings"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Get("/reminders/upcoming", upcomingHandler(svc, env))
}

type reminderResponse struct {
	Type      Kind       `json:"type"`
	ID        int64      `json:"id"`
	Date      httpx.Date `json:"date" swaggertype:"string"`
	Title     string     `json:"title"`
	DogName   string     `json:"dog_name"`
	IsOverdue bool       `json:"is_overdue"`
}

// upcomingHandler godoc
// @Summary Próximos recordatorios
// @Tags reminders
// @Produce json
// @Param days query int false "Horizonte en días (default 30)"
// @Success 200 {array} reminderResponse
// @Router /reminders/upcoming [get]
func upcomingHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}

		var days *int
		if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				httpx.WriteError(w, env.Log, apperr.Validation("days must be an integer"))
				return
			}
			days = &n
		}

		items, err := svc.Upcoming(r.Context(), userID, days)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]reminderResponse, 0, len(items))
		for _, it := range items {
			out = append(out, reminderResponse{
				Type:      it.Type,
				ID:        it.ID,
				Date:      httpx.Date(it.Date),
				Title:     it.Title,
				DogName:   it.DogName,
				IsOverdue: it.IsOverdue,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
