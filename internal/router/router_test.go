package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dog-care-api/internal/platform/config"
	"dog-care-api/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Media.Dir = t.TempDir()
	ts := httptest.NewServer(router.NewRouter(router.Options{Config: cfg}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_OwnershipScopes(t *testing.T) {
	ts := newServer(t)

	ownerID := "1"
	otherID := "2"

	// 1) Owner crea perro
	dogID := createDog(t, ts.URL, ownerID, "Milo")

	// 2) Otro usuario no lo ve (404, no 403)
	{
		st, _ := doReq(t, ts.URL, "GET", fmt.Sprintf("/api/v1/dogs/%d", dogID), otherID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign dog, got %d", st)
		}
	}

	// 3) Perfil extendido get-or-create
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/api/v1/dogs/%d/details", dogID), ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 details, got %d body=%s", st, string(body))
		}
	}

	// 4) Paseo con perro ajeno => 400 y no queda nada creado
	{
		otherDog := createDog(t, ts.URL, otherID, "Rex")
		st, body := doReq(t, ts.URL, "POST", "/api/v1/walks", ownerID, map[string]any{
			"dog_ids":          []int64{dogID, otherDog},
			"start_datetime":   time.Now().UTC().Format(time.RFC3339),
			"duration_minutes": 30,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 walk with foreign dog, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/api/v1/walks", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list walks, got %d", st)
		}
		var ws []map[string]any
		_ = json.Unmarshal(body, &ws)
		if len(ws) != 0 {
			t.Fatalf("expected no walks after failed create, got %d", len(ws))
		}
	}

	// 5) Paseo válido
	{
		st, body := doReq(t, ts.URL, "POST", "/api/v1/walks", ownerID, map[string]any{
			"dog_ids":          []int64{dogID},
			"start_datetime":   time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
			"duration_minutes": 45,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 walk, got %d body=%s", st, string(body))
		}
	}

	// 6) Tarea diaria vencida ayer => recordatorio overdue
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	taskID := createTask(t, ts.URL, ownerID, dogID, yesterday)

	reminders := upcoming(t, ts.URL, ownerID)
	if len(reminders) != 1 || reminders[0].Type != "CARE_TASK" || !reminders[0].IsOverdue {
		t.Fatalf("expected one overdue care reminder, got %+v", reminders)
	}
	if reminders[0].Title != "Care: Feed" || reminders[0].DogName != "Milo" {
		t.Fatalf("unexpected reminder %+v", reminders[0])
	}
	if len(upcoming(t, ts.URL, otherID)) != 0 {
		t.Fatalf("other user must not see owner's reminders")
	}

	// 7) Completar: next_due_date = hoy + 1
	{
		st, _ := doReq(t, ts.URL, "POST", fmt.Sprintf("/api/v1/care/tasks/%d/complete", taskID), otherID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 completing foreign task, got %d", st)
		}

		st, body := doReq(t, ts.URL, "POST", fmt.Sprintf("/api/v1/care/tasks/%d/complete?notes=ok", taskID), ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
		var task struct {
			NextDueDate string `json:"next_due_date"`
		}
		_ = json.Unmarshal(body, &task)
		want := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
		if task.NextDueDate != want {
			t.Fatalf("expected next_due_date %s, got %s", want, task.NextDueDate)
		}
	}

	// 8) Activity: paseo + log de cuidado, más reciente primero
	{
		st, body := doReq(t, ts.URL, "GET", "/api/v1/activity?limit=10", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 activity, got %d body=%s", st, string(body))
		}
		var items []struct {
			Type     string   `json:"type"`
			DogNames []string `json:"dog_names"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 2 {
			t.Fatalf("expected 2 activity items, got %d body=%s", len(items), string(body))
		}
		if items[0].Type != "CARE" || items[1].Type != "WALK" {
			t.Fatalf("unexpected order: %+v", items)
		}
		if len(items[1].DogNames) != 1 || items[1].DogNames[0] != "Milo" {
			t.Fatalf("expected walk dog names [Milo], got %v", items[1].DogNames)
		}
	}

	// 9) Borrar el perro se lleva sus tareas
	{
		st, _ := doReq(t, ts.URL, "DELETE", fmt.Sprintf("/api/v1/dogs/%d", dogID), ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete dog, got %d", st)
		}
		if len(upcoming(t, ts.URL, ownerID)) != 0 {
			t.Fatalf("expected no reminders after deleting dog")
		}
	}
}

func TestHTTP_TagsConflictAndAssign(t *testing.T) {
	ts := newServer(t)
	dogID := createDog(t, ts.URL, "1", "Milo")

	st, body := doReq(t, ts.URL, "POST", "/api/v1/tags", "1", map[string]any{"name": "calm"})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 tag, got %d body=%s", st, string(body))
	}
	var tag struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(body, &tag)

	st, _ = doReq(t, ts.URL, "POST", "/api/v1/tags", "1", map[string]any{"name": "calm"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate tag, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/api/v1/tags/assignments", "1", map[string]any{
		"entity_type": "DOG",
		"entity_id":   dogID,
		"tag_ids":     []int64{tag.ID, 999},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 with unknown tag, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", fmt.Sprintf("/api/v1/tags/assignments?entity_type=DOG&entity_id=%d", dogID), "1", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list assignments, got %d body=%s", st, string(body))
	}
	var as []map[string]any
	_ = json.Unmarshal(body, &as)
	if len(as) != 0 {
		t.Fatalf("expected no assignments after failed assign, got %d", len(as))
	}
}

func TestHTTP_RequiresUser(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/api/v1/dogs", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected health ok, got %d %q", st, string(body))
	}
}

type reminder struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	DogName   string `json:"dog_name"`
	IsOverdue bool   `json:"is_overdue"`
}

func upcoming(t *testing.T, baseURL, userID string) []reminder {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/api/v1/reminders/upcoming", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
	}
	var out []reminder
	_ = json.Unmarshal(body, &out)
	return out
}

func createDog(t *testing.T, baseURL, userID, name string) int64 {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/v1/dogs", userID, map[string]any{
		"name":  name,
		"breed": "mixed",
		"sex":   "MALE",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create dog: missing id body=%s", string(body))
	}
	return resp.ID
}

func createTask(t *testing.T, baseURL, userID string, dogID int64, due string) int64 {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/v1/care/tasks", userID, map[string]any{
		"dog_id":        dogID,
		"title":         "Feed",
		"interval_type": "DAILY",
		"next_due_date": due,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create task, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create task: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
