package care

import (
	"net/http"
	"strings"
	"time"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/care", func(cr chi.Router) {
		cr.Get("/tasks", listTasksHandler(svc, env))
		cr.Post("/tasks", createTaskHandler(svc, env))
		cr.Patch("/tasks/{taskID}", updateTaskHandler(svc, env))
		cr.Delete("/tasks/{taskID}", deleteTaskHandler(svc, env))
		cr.Post("/tasks/{taskID}/complete", completeTaskHandler(svc, env))

		cr.Get("/logs", listLogsHandler(svc, env))
	})
}

type createTaskRequest struct {
	DogID        int64        `json:"dog_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	IntervalType IntervalType `json:"interval_type" enums:"DAILY,WEEKLY,MONTHLY,CUSTOM_DAYS"`
	IntervalDays *int         `json:"interval_days"`
	NextDueDate  *httpx.Date  `json:"next_due_date" swaggertype:"string" example:"2024-05-01"`
	IsActive     *bool        `json:"is_active"`
}

type updateTaskRequest struct {
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	IntervalType *IntervalType `json:"interval_type"`
	IntervalDays *int          `json:"interval_days"`
	NextDueDate  *httpx.Date   `json:"next_due_date" swaggertype:"string"`
	IsActive     *bool         `json:"is_active"`
}

type completeRequest struct {
	Notes string `json:"notes"`
}

type taskResponse struct {
	ID           int64        `json:"id"`
	DogID        int64        `json:"dog_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	IntervalType IntervalType `json:"interval_type"`
	IntervalDays *int         `json:"interval_days,omitempty"`
	NextDueDate  httpx.Date   `json:"next_due_date" swaggertype:"string"`
	IsActive     bool         `json:"is_active"`
}

type logResponse struct {
	ID         int64     `json:"id"`
	CareTaskID int64     `json:"care_task_id"`
	DoneAt     time.Time `json:"done_at"`
	Notes      string    `json:"notes"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func listTasksHandler(svc *Service, env httpx.Env) http.HandlerFunc {
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

		items, err := svc.ListTasks(r.Context(), userID, TaskFilter{DogID: dogID, Page: page})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]taskResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTaskResponse(t))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createTaskHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req createTaskRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		in := CreateTaskInput{
			DogID:        req.DogID,
			Title:        req.Title,
			Description:  req.Description,
			IntervalType: IntervalType(strings.ToUpper(string(req.IntervalType))),
			IntervalDays: req.IntervalDays,
			IsActive:     req.IsActive,
		}
		if req.NextDueDate != nil {
			in.NextDueDate = req.NextDueDate.Time()
		}

		t, err := svc.CreateTask(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(t))
	}
}

func updateTaskHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "taskID")
		if !ok {
			return
		}
		var req updateTaskRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		t, err := svc.UpdateTask(r.Context(), userID, id, UpdateTaskInput{
			Title:        req.Title,
			Description:  req.Description,
			IntervalType: req.IntervalType,
			IntervalDays: req.IntervalDays,
			NextDueDate:  httpx.DatePtr(req.NextDueDate),
			IsActive:     req.IsActive,
		})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toTaskResponse(t))
	}
}

func deleteTaskHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "taskID")
		if !ok {
			return
		}
		if err := svc.DeleteTask(r.Context(), userID, id); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// completeTaskHandler godoc
// @Summary Completar tarea de cuidado
// @Description Registra un log y recalcula next_due_date desde hoy. Notas por body o ?notes=.
// @Tags care
// @Accept json
// @Produce json
// @Param taskID path int true "ID de la tarea"
// @Param notes query string false "Notas"
// @Success 200 {object} taskResponse
// @Failure 404 {object} errorResponse
// @Router /care/tasks/{taskID}/complete [post]
func completeTaskHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "taskID")
		if !ok {
			return
		}

		notes := r.URL.Query().Get("notes")
		if r.ContentLength > 0 {
			var req completeRequest
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteError(w, env.Log, err)
				return
			}
			if req.Notes != "" {
				notes = req.Notes
			}
		}

		t, _, err := svc.Complete(r.Context(), userID, id, notes)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toTaskResponse(t))
	}
}

func listLogsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
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
		taskID, err := httpx.QueryID(r, "task_id")
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		page, err := env.Page(r)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		items, err := svc.ListLogs(r.Context(), userID, LogFilter{DogID: dogID, TaskID: taskID, Page: page})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]logResponse, 0, len(items))
		for _, l := range items {
			out = append(out, logResponse{ID: l.ID, CareTaskID: l.CareTaskID, DoneAt: l.DoneAt, Notes: l.Notes})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func toTaskResponse(t Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		DogID:        t.DogID,
		Title:        t.Title,
		Description:  t.Description,
		IntervalType: t.IntervalType,
		IntervalDays: t.IntervalDays,
		NextDueDate:  httpx.Date(t.NextDueDate),
		IsActive:     t.IsActive,
	}
}
