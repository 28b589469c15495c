package dto

import (
	"time"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenInfoResponse claims del token (sin verificar firma; solo informativos).
type TokenInfoResponse struct {
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// SessionResponse estado de la sesión local.
type SessionResponse struct {
	Authenticated bool                      `json:"authenticated"`
	User          *entity.AuthenticatedUser `json:"user,omitempty"`
	Token         *TokenInfoResponse        `json:"token,omitempty"`
}
