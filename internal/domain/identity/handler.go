// Package identity expone login/refresh/me. Los tokens los emite el IAM
// externo; acá solo se reenvían.
package identity

import (
	"net/http"
	"strings"

	"dog-care-api/internal/middleware"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/httpx"
	"dog-care-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth. authn puede ser nil (modo dev): login y refresh
// responden 401 y /auth/me usa X-Debug-User-ID.
func RegisterRoutes(r chi.Router, authn auth.Authenticator, env httpx.Env) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(authn, env))
		ar.Post("/refresh", refreshHandler(authn, env))
		ar.Get("/me", meHandler())
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type meResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

var errNoProvider = apperr.Auth("authentication provider not configured")

// loginHandler godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /auth/login [post]
func loginHandler(authn auth.Authenticator, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authn == nil {
			httpx.WriteError(w, env.Log, errNoProvider)
			return
		}

		var req loginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			httpx.WriteError(w, env.Log, apperr.Validation("email and password are required"))
			return
		}

		pair, err := authn.Authenticate(r.Context(), auth.Credentials{Email: req.Email, Password: req.Password})
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
	}
}

// refreshHandler godoc
// @Summary Renovar tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body refreshRequest true "Refresh token"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} errorResponse
// @Router /auth/refresh [post]
func refreshHandler(authn auth.Authenticator, env httpx.Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if authn == nil {
			httpx.WriteError(w, env.Log, errNoProvider)
			return
		}

		var req refreshRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		if strings.TrimSpace(req.RefreshToken) == "" {
			httpx.WriteError(w, env.Log, apperr.Validation("refresh_token is required"))
			return
		}

		pair, err := authn.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			httpx.WriteError(w, env.Log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {object} errorResponse
// @Router /auth/me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.UserID(w, r); !ok {
			return
		}
		c, _ := middleware.GetClaims(r.Context())
		httpx.WriteJSON(w, http.StatusOK, meResponse{ID: c.UserID, Email: c.Email, TenantID: c.TenantID})
	}
}

func toTokenResponse(p auth.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
}
