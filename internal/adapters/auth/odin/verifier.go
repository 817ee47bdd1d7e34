package odin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/httpclient"
	"dog-care-api/internal/ports/auth"
)

// user_id puede venir como número o como string numérico.
type verifyResponse struct {
	UserID   json.Number `json:"user_id"`
	Email    string      `json:"email"`
	TenantID string      `json:"tenant_id"`
}

// Verify resuelve el usuario dueño del token (resolveCurrentUser).
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, apperr.Auth("missing token")
	}

	var out verifyResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    verifyPath,
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Body:    map[string]string{"token": token},
	}, &out)
	if err != nil {
		return auth.Claims{}, upstream(err, "invalid token")
	}

	uid, err := out.UserID.Int64()
	if err != nil || uid <= 0 {
		return auth.Claims{}, fmt.Errorf("odin: invalid user_id %q", out.UserID)
	}
	return auth.Claims{
		UserID:   uid,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}
