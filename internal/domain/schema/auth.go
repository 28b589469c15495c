package schema

import (
	"strings"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

type credentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var credentialsMessages = map[string]string{
	"email.required":    "El email es obligatorio",
	"email.email":       "El email no es válido",
	"password.required": "La contraseña es obligatoria",
}

// ValidateCredentials valida email y contraseña antes de llamar al backend.
// El email se recorta; la contraseña se envía tal cual.
func ValidateCredentials(c entity.Credentials) (entity.Credentials, error) {
	c.Email = strings.TrimSpace(c.Email)
	in := credentialsInput{Email: c.Email, Password: c.Password}
	if err := Struct("credentials", in, credentialsMessages); err != nil {
		return c, err
	}
	return c, nil
}
