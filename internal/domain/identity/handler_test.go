package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dog-care-api/internal/middleware"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/httpx"
	"dog-care-api/internal/platform/logger"
	"dog-care-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthn struct {
	lastCreds auth.Credentials
}

func (f *fakeAuthn) Authenticate(_ context.Context, c auth.Credentials) (auth.TokenPair, error) {
	f.lastCreds = c
	if c.Password != "secret" {
		return auth.TokenPair{}, apperr.Auth("invalid credentials")
	}
	return auth.TokenPair{AccessToken: "a1", RefreshToken: "r1", TokenType: "bearer"}, nil
}

func (f *fakeAuthn) Refresh(_ context.Context, token string) (auth.TokenPair, error) {
	if token != "r1" {
		return auth.TokenPair{}, apperr.Auth("invalid refresh token")
	}
	return auth.TokenPair{AccessToken: "a2", RefreshToken: "r2", TokenType: "bearer"}, nil
}

func newRouter(authn auth.Authenticator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, authn, httpx.Env{Log: logger.Nop()})
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestLoginAndRefresh(t *testing.T) {
	fa := &fakeAuthn{}
	h := newRouter(fa)

	rr := do(t, h, http.MethodPost, "/auth/login", `{"email":" a@b.c ","password":"secret"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var tok tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tok))
	assert.Equal(t, "a1", tok.AccessToken)
	assert.Equal(t, "a@b.c", fa.lastCreds.Email)

	rr = do(t, h, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodPost, "/auth/login", `{"email":"","password":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/auth/refresh", `{"refresh_token":"r1"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tok))
	assert.Equal(t, "r2", tok.RefreshToken)
}

func TestLogin_NoProvider(t *testing.T) {
	rr := do(t, newRouter(nil), http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe(t *testing.T) {
	h := newRouter(nil)

	rr := do(t, h, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, h, http.MethodGet, "/auth/me", "", map[string]string{middleware.DebugUserHeader: "7"})
	require.Equal(t, http.StatusOK, rr.Code)
	var me meResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, int64(7), me.ID)
}
