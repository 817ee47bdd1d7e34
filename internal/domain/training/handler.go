package training

import (
	"context"
	"net/http"
	"time"

	"dog-care-api/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, env httpx.Env) {
	r.Route("/training", func(tr chi.Router) {
		tr.Get("/goals", listGoalsHandler(svc, env))
		tr.Post("/goals", createGoalHandler(svc, env))
		tr.Patch("/goals/{goalID}", updateGoalHandler(svc, env))
		tr.Delete("/goals/{goalID}", deleteHandler(env, "goalID", svc.DeleteGoal))

		tr.Get("/issues", listIssuesHandler(svc, env))
		tr.Post("/issues", createIssueHandler(svc, env))
		tr.Patch("/issues/{issueID}", updateIssueHandler(svc, env))
		tr.Delete("/issues/{issueID}", deleteHandler(env, "issueID", svc.DeleteIssue))

		tr.Get("/logs", listLogsHandler(svc, env))
		tr.Post("/logs", createLogHandler(svc, env))
		tr.Patch("/logs/{logID}", updateLogHandler(svc, env))
		tr.Delete("/logs/{logID}", deleteHandler(env, "logID", svc.DeleteLog))
	})
}

type goalRequest struct {
	DogID       int64      `json:"dog_id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      GoalStatus `json:"status" enums:"PLANNED,IN_PROGRESS,COMPLETED,PAUSED"`
	Priority    int        `json:"priority" minimum:"1" maximum:"3"`
	Description string     `json:"description"`
}

type goalPatchRequest struct {
	Title       *string     `json:"title"`
	Category    *string     `json:"category"`
	Status      *GoalStatus `json:"status"`
	Priority    *int        `json:"priority"`
	Description *string     `json:"description"`
}

type goalResponse struct {
	ID          int64      `json:"id"`
	DogID       int64      `json:"dog_id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      GoalStatus `json:"status"`
	Priority    int        `json:"priority"`
	Description string     `json:"description"`
}

type issueRequest struct {
	DogID           int64  `json:"dog_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TypicalTriggers string `json:"typical_triggers"`
	Severity        int    `json:"severity" minimum:"1" maximum:"3"`
}

type issuePatchRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	TypicalTriggers *string `json:"typical_triggers"`
	Severity        *int    `json:"severity"`
}

type issueResponse struct {
	ID              int64  `json:"id"`
	DogID           int64  `json:"dog_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	TypicalTriggers string `json:"typical_triggers"`
	Severity        int    `json:"severity"`
}

type logRequest struct {
	DogID           int64      `json:"dog_id"`
	TrainingGoalID  *int64     `json:"training_goal_id"`
	BehaviorIssueID *int64     `json:"behavior_issue_id"`
	Datetime        *time.Time `json:"datetime"`
	Rating          *int       `json:"rating" minimum:"1" maximum:"5"`
	NotesMarkdown   string     `json:"notes_markdown"`
	MediaURLs       []string   `json:"media_urls"`
	TagIDs          []int64    `json:"tag_ids"`
}

type logPatchRequest struct {
	Datetime      *time.Time `json:"datetime"`
	Rating        *int       `json:"rating"`
	NotesMarkdown *string    `json:"notes_markdown"`
	MediaURLs     *[]string  `json:"media_urls"`
}

type logResponse struct {
	ID              int64     `json:"id"`
	DogID           int64     `json:"dog_id"`
	TrainingGoalID  *int64    `json:"training_goal_id"`
	BehaviorIssueID *int64    `json:"behavior_issue_id"`
	Datetime        time.Time `json:"datetime"`
	Rating          *int      `json:"rating"`
	NotesMarkdown   string    `json:"notes_markdown"`
	MediaURLs       []string  `json:"media_urls"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

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

func listGoalsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		f, ok := listFilter(w, r, env)
		if !ok {
			return
		}
		items, err := svc.ListGoals(r.Context(), userID, f)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]goalResponse, 0, len(items))
		for _, g := range items {
			out = append(out, goalResponse(g))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createGoalHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req goalRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		g, err := svc.CreateGoal(r.Context(), userID, GoalInput(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, goalResponse(g))
	}
}

func updateGoalHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "goalID")
		if !ok {
			return
		}
		var req goalPatchRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		g, err := svc.UpdateGoal(r.Context(), userID, id, GoalPatch(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, goalResponse(g))
	}
}

func listIssuesHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		f, ok := listFilter(w, r, env)
		if !ok {
			return
		}
		items, err := svc.ListIssues(r.Context(), userID, f)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]issueResponse, 0, len(items))
		for _, i := range items {
			out = append(out, issueResponse(i))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createIssueHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req issueRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		i, err := svc.CreateIssue(r.Context(), userID, IssueInput(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, issueResponse(i))
	}
}

func updateIssueHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "issueID")
		if !ok {
			return
		}
		var req issuePatchRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		i, err := svc.UpdateIssue(r.Context(), userID, id, IssuePatch(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, issueResponse(i))
	}
}

func listLogsHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		f, ok := listFilter(w, r, env)
		if !ok {
			return
		}
		items, err := svc.ListLogs(r.Context(), userID, f)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		out := make([]logResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLogResponse(l))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createLogHandler godoc
// @Summary Registrar sesión de entrenamiento
// @Description goal/issue opcionales (mismo perro); tag_ids se asignan en la misma transacción.
// @Tags training
// @Accept json
// @Produce json
// @Param payload body logRequest true "Sesión"
// @Success 201 {object} logResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /training/logs [post]
func createLogHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		var req logRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}

		in := LogInput{
			DogID:           req.DogID,
			TrainingGoalID:  req.TrainingGoalID,
			BehaviorIssueID: req.BehaviorIssueID,
			Rating:          req.Rating,
			NotesMarkdown:   req.NotesMarkdown,
			MediaURLs:       req.MediaURLs,
			TagIDs:          req.TagIDs,
		}
		if req.Datetime != nil {
			in.Datetime = *req.Datetime
		}

		l, err := svc.CreateLog(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toLogResponse(l))
	}
}

func updateLogHandler(svc *Service, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.UserID(w, r)
		if !ok {
			return
		}
		id, ok := httpx.PathID(w, r, "logID")
		if !ok {
			return
		}
		var req logPatchRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		l, err := svc.UpdateLog(r.Context(), userID, id, LogPatch(req))
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toLogResponse(l))
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

func toLogResponse(l Log) logResponse {
	urls := l.MediaURLs
	if urls == nil {
		urls = []string{}
	}
	return logResponse{
		ID:              l.ID,
		DogID:           l.DogID,
		TrainingGoalID:  l.TrainingGoalID,
		BehaviorIssueID: l.BehaviorIssueID,
		Datetime:        l.Datetime,
		Rating:          l.Rating,
		NotesMarkdown:   l.NotesMarkdown,
		MediaURLs:       urls,
	}
}
