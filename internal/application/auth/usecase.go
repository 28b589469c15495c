package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
)

// AuthUseCase casos de uso de autenticación: login y logout.
type AuthUseCase struct {
	auth    Authenticator
	session *Session
	log     zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(a Authenticator, session *Session, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{auth: a, session: session, log: log}
}

// Session sesión administrada por el caso de uso.
func (uc *AuthUseCase) Session() *Session { return uc.session }

// Login valida las credenciales, autentica contra el backend y establece la sesión.
// Las credenciales inválidas devuelven *schema.Error sin llamar al backend.
func (uc *AuthUseCase) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthenticatedUser, error) {
	creds, err := schema.ValidateCredentials(creds)
	if err != nil {
		return nil, err
	}
	user, err := uc.auth.SignIn(ctx, creds)
	if err != nil {
		uc.log.Warn().Err(err).Str("email", creds.Email).Msg("inicio de sesión rechazado")
		return nil, err
	}
	if err := uc.session.SetAuth(user.AccessToken, *user); err != nil {
		return nil, fmt.Errorf("auth: establecer sesión: %w", err)
	}
	return user, nil
}

// Logout cierra la sesión.
func (uc *AuthUseCase) Logout() error {
	return uc.session.Logout()
}
