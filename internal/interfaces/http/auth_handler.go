package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/application/dto"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// AuthHandler maneja login, logout y consulta de sesión.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	logout func() error
}

// NewAuthHandler construye el handler de auth. logout nil usa el logout del caso de uso.
func NewAuthHandler(uc *auth.AuthUseCase, logout func() error) *AuthHandler {
	if logout == nil {
		logout = uc.Logout
	}
	return &AuthHandler{uc: uc, logout: logout}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.Login(c.UserContext(), entity.Credentials{Email: in.Email, Password: in.Password}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.session())
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.OKResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.logout(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// Session godoc
// @Summary      Estado de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.session())
}

func (h *AuthHandler) session() dto.SessionResponse {
	s := h.uc.Session()
	out := dto.SessionResponse{Authenticated: s.IsAuthenticated()}
	if u := s.User(); u != nil {
		pub := u.Public()
		out.User = &pub
	}
	if info, err := s.TokenInfo(); err == nil && info != nil {
		out.Token = &dto.TokenInfoResponse{
			Subject:   info.Subject,
			Issuer:    info.Issuer,
			IssuedAt:  info.IssuedAt,
			ExpiresAt: info.ExpiresAt,
			Expired:   info.Expired(time.Now()),
		}
	}
	return out
}
