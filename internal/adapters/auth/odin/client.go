// Package odin es el adapter del IAM externo: login, refresh y verificación
// de tokens. Los tokens son opacos para nosotros.
package odin

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/config"
	"dog-care-api/internal/platform/httpclient"
	"dog-care-api/internal/ports/auth"
)

const (
	loginPath   = "/v1/auth/login"
	refreshPath = "/v1/auth/refresh"
	verifyPath  = "/v1/tokens/verify"
)

// Client implementa auth.Authenticator y auth.AuthVerifier.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg config.Odin) (*Client, error) {
	headers := map[string]string{}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		h := strings.TrimSpace(cfg.APIKeyHeader)
		if h == "" {
			h = "X-Api-Key"
		}
		headers[h] = key
	}

	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout, headers)
	if err != nil {
		return nil, fmt.Errorf("odin: %w", err)
	}
	return &Client{http: hc}, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (t tokenResponse) pair() (auth.TokenPair, error) {
	if strings.TrimSpace(t.AccessToken) == "" {
		return auth.TokenPair{}, fmt.Errorf("odin: response missing access_token")
	}
	tt := t.TokenType
	if tt == "" {
		tt = "bearer"
	}
	return auth.TokenPair{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken, TokenType: tt}, nil
}

func (c *Client) Authenticate(ctx context.Context, creds auth.Credentials) (auth.TokenPair, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return auth.TokenPair{}, apperr.Validation("email and password are required")
	}

	var out tokenResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   map[string]string{"email": strings.TrimSpace(creds.Email), "password": creds.Password},
	}, &out)
	if err != nil {
		return auth.TokenPair{}, upstream(err, "invalid credentials")
	}
	return out.pair()
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return auth.TokenPair{}, apperr.Validation("refresh_token is required")
	}

	var out tokenResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   refreshPath,
		Body:   map[string]string{"refresh_token": refreshToken},
	}, &out)
	if err != nil {
		return auth.TokenPair{}, upstream(err, "invalid refresh token")
	}
	return out.pair()
}

// upstream: 400/401/403 del IAM son errores de auth del cliente; el resto se
// propaga como falla interna.
func upstream(err error, msg string) error {
	if httpclient.HasStatus(err, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden) {
		return apperr.Auth(msg)
	}
	return fmt.Errorf("odin: %w", err)
}
