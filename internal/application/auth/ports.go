package auth

import (
	"context"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// Claves del almacenamiento local.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage almacén clave/valor persistente (archivo o memoria).
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Authenticator intercambia credenciales por un usuario autenticado (backend o fixture).
type Authenticator interface {
	SignIn(ctx context.Context, creds entity.Credentials) (*entity.AuthenticatedUser, error)
}
