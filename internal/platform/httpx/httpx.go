// Package httpx junta los helpers que antes estaban duplicados en cada handler
// (writeJSON, lectura de claims, parseo de ids y paginación).
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dog-care-api/internal/middleware"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/logger"
	"dog-care-api/internal/platform/paging"

	"github.com/go-chi/chi/v5"
)

const DateLayout = "2006-01-02"

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// WriteError traduce la taxonomía de apperr a status HTTP.
// Los errores no clasificados se loguean y salen como 500 genérico.
func WriteError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorResponse{Detail: err.Error()})
	case errors.Is(err, apperr.ErrValidation):
		WriteJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		WriteJSON(w, http.StatusConflict, errorResponse{Detail: err.Error()})
	case errors.Is(err, apperr.ErrAuth):
		WriteJSON(w, http.StatusUnauthorized, errorResponse{Detail: err.Error()})
	default:
		if log != nil {
			log.Error("unhandled error", map[string]any{"error": err.Error()})
		}
		WriteJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
	}
}

// UserID devuelve el usuario autenticado o responde 401.
func UserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || claims.UserID <= 0 {
		WriteJSON(w, http.StatusUnauthorized, errorResponse{Detail: "unauthorized"})
		return 0, false
	}
	return claims.UserID, true
}

// PathID parsea un id entero de la URL; si no es válido responde 404
// (un id mal formado no puede existir).
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		WriteJSON(w, http.StatusNotFound, errorResponse{Detail: "not found"})
		return 0, false
	}
	return id, true
}

// QueryID lee un id opcional del query string (?dog_id=).
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperr.Validation(name + " must be a positive integer")
	}
	return &id, nil
}

// QueryInt lee un entero opcional; def si no viene.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(name + " must be an integer")
	}
	return n, nil
}

// QueryPage lee skip/limit (mismos nombres que la API original).
func QueryPage(r *http.Request) (paging.Page, error) {
	skip, err := QueryInt(r, "skip", 0)
	if err != nil {
		return paging.Page{}, err
	}
	limit, err := QueryInt(r, "limit", 0)
	if err != nil {
		return paging.Page{}, err
	}
	return paging.Page{Offset: skip, Limit: limit}, nil
}

// DecodeJSON decodifica el body rechazando campos desconocidos.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("empty body")
		}
		return apperr.Validation(fmt.Sprintf("invalid json: %v", err))
	}
	return nil
}

// ReadUpload lee el campo "file" de un multipart con tope de tamaño.
func ReadUpload(r *http.Request, maxBytes int64) ([]byte, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, apperr.Validation("invalid multipart form")
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.Validation("file is required")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, apperr.Validation("file too large")
	}
	if len(data) == 0 {
		return nil, apperr.Validation("file is empty")
	}
	return data, nil
}

// Date es un time.Time que se (de)serializa como YYYY-MM-DD.
type Date time.Time

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	*d = Date(t)
	return nil
}

func (d Date) Time() time.Time { return time.Time(d) }

// DatePtr convierte *Date (opcional en requests) a *time.Time.
func DatePtr(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

// FromTimePtr convierte *time.Time (dominio) a *Date (responses).
func FromTimePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Date(*t)
	return &d
}

// Env es lo que los handlers necesitan de la config (se arma en el router).
type Env struct {
	Log            logger.Logger
	DefaultLimit   int
	MaxLimit       int
	MaxUploadBytes int64
}

// Page lee skip/limit y aplica default/tope.
func (e Env) Page(r *http.Request) (paging.Page, error) {
	p, err := QueryPage(r)
	if err != nil {
		return paging.Page{}, err
	}
	return p.Normalize(e.DefaultLimit, e.MaxLimit), nil
}
