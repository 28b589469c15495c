package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciboo-portal/internal/application/dto"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// LocalUser clave en c.Locals con el usuario autenticado.
const LocalUser = "user"

// Rutas de redirección de los guards.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// SessionReader lo que los guards necesitan de la sesión.
type SessionReader interface {
	IsAuthenticated() bool
	User() *entity.AuthenticatedUser
}

// RequireAuth deja pasar solo con sesión. Sin sesión, las rutas /api responden 401
// y las páginas redirigen a /login.
func RequireAuth(s SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.IsAuthenticated() {
			if isAPI(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "inicia sesión para continuar"})
			}
			return c.Redirect(LoginPath, fiber.StatusFound)
		}
		c.Locals(LocalUser, s.User())
		return c.Next()
	}
}

// RequireGuest solo para visitantes sin sesión (/login, /register); con sesión redirige a /.
func RequireGuest(s SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.IsAuthenticated() {
			return c.Redirect(HomePath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario cargado por RequireAuth.
func GetUser(c *fiber.Ctx) *entity.AuthenticatedUser {
	u, _ := c.Locals(LocalUser).(*entity.AuthenticatedUser)
	return u
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
