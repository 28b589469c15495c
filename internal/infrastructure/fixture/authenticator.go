package fixture

import (
	"context"
	"strings"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// Credenciales de demostración.
const (
	DemoEmail    = "admin@test.com"
	DemoPassword = "password"
)

// Authenticator acepta únicamente las credenciales de demostración.
type Authenticator struct{}

var _ auth.Authenticator = Authenticator{}

func (Authenticator) SignIn(ctx context.Context, creds entity.Credentials) (*entity.AuthenticatedUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(creds.Email, DemoEmail) || creds.Password != DemoPassword {
		return nil, domain.ErrUnauthorized
	}
	isProvider := false
	return &entity.AuthenticatedUser{
		ID:          1,
		Username:    "admin",
		Name:        "Administrador Demo",
		Email:       DemoEmail,
		Permissions: []string{"FACTURAR", "CONSULTAR"},
		Modules:     []entity.Module{{ID: 1, Description: "Facturas", Code: "FAC"}},
		Profiles:    []entity.Profile{{ID: 1, Description: "Administrador", Status: "ACTIVO", Code: "ADM"}},
		IsProvider:  &isProvider,
		Status:      "ACTIVO",
		AccessToken: "demo-token",
		TokenType:   "Bearer",
	}, nil
}
