package odin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/config"
	"dog-care-api/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOdin(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "acc", "refresh_token": "ref"})
	})
	mux.HandleFunc("POST /v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("POST /v1/tokens/verify", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_, _ = w.Write([]byte(`{"user_id":"17","email":" a@b.c "}`))
		case "Bearer numeric":
			_, _ = w.Write([]byte(`{"user_id":18}`))
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.Odin{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestAuthenticate(t *testing.T) {
	c := fakeOdin(t)
	ctx := context.Background()

	pair, err := c.Authenticate(ctx, auth.Credentials{Email: "a@b.c", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, auth.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer"}, pair)

	_, err = c.Authenticate(ctx, auth.Credentials{Email: "a@b.c", Password: "nope"})
	assert.True(t, apperr.IsAuth(err))

	_, err = c.Authenticate(ctx, auth.Credentials{Email: "a@b.c"})
	assert.True(t, apperr.IsValidation(err))
}

func TestRefresh_UpstreamFailureIsNotAuth(t *testing.T) {
	c := fakeOdin(t)
	_, err := c.Refresh(context.Background(), "ref")
	require.Error(t, err)
	assert.False(t, apperr.IsAuth(err))
}

func TestVerify(t *testing.T) {
	c := fakeOdin(t)
	ctx := context.Background()

	claims, err := c.Verify(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(17), claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)

	claims, err = c.Verify(ctx, "numeric")
	require.NoError(t, err)
	assert.Equal(t, int64(18), claims.UserID)

	_, err = c.Verify(ctx, "bad")
	assert.True(t, apperr.IsAuth(err))

	_, err = c.Verify(ctx, " ")
	assert.True(t, apperr.IsAuth(err))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.Odin{})
	assert.Error(t, err)
}
