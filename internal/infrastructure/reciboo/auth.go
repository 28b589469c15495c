package reciboo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
)

const signinPath = "/auth/signin"

var _ auth.Authenticator = (*Client)(nil)

// SignIn POST /auth/signin. No adjunta token.
func (c *Client) SignIn(ctx context.Context, creds entity.Credentials) (*entity.AuthenticatedUser, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("reciboo: serializar credenciales: %w", err)
	}
	raw, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        signinPath,
		body:        bytes.NewReader(body),
		contentType: "application/json",
		anonymous:   true,
	})
	if err != nil {
		return nil, err
	}
	user, err := schema.ParseAuthenticatedUser(raw)
	if err != nil {
		return nil, invalid(signinPath, err)
	}
	return user, nil
}
