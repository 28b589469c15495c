package auth

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/jwt"
)

// Session mantiene el usuario autenticado y su token, replicados en Storage.
// Es seguro para uso concurrente.
type Session struct {
	mu    sync.RWMutex
	store Storage
	log   zerolog.Logger
	user  *entity.AuthenticatedUser
	token string
}

// NewSession crea una sesión vacía. Llamar LoadFromStorage para restaurar una previa.
func NewSession(store Storage, log zerolog.Logger) *Session {
	return &Session{store: store, log: log}
}

// SetAuth guarda token y usuario en memoria y en el almacenamiento.
// Si falla la persistencia la sesión en memoria queda igualmente establecida.
func (s *Session) SetAuth(token string, user entity.AuthenticatedUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("auth: serializar usuario: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	if err := s.store.Set(KeyToken, token); err != nil {
		return fmt.Errorf("auth: persistir token: %w", err)
	}
	if err := s.store.Set(KeyUser, string(raw)); err != nil {
		return fmt.Errorf("auth: persistir usuario: %w", err)
	}
	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("sesión iniciada")
	return nil
}

// Logout limpia usuario y token en memoria y en el almacenamiento.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("auth: limpiar almacenamiento: %w", err)
	}
	s.log.Info().Msg("sesión cerrada")
	return nil
}

// LoadFromStorage restaura la sesión desde el almacenamiento.
// Sin usuario guardado no hace nada. Un usuario ilegible deja la sesión sin autenticar y devuelve error.
func (s *Session) LoadFromStorage() error {
	raw, ok, err := s.store.Get(KeyUser)
	if err != nil {
		return fmt.Errorf("auth: leer usuario: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}
	var user entity.AuthenticatedUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("usuario almacenado ilegible, se ignora")
		return fmt.Errorf("auth: usuario almacenado ilegible: %w", err)
	}
	token, _, err := s.store.Get(KeyToken)
	if err != nil {
		return fmt.Errorf("auth: leer token: %w", err)
	}
	if token == "" {
		token = user.AccessToken
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
	s.log.Debug().Int64("user_id", user.ID).Msg("sesión restaurada")
	return nil
}

// IsAuthenticated verdadero si hay usuario cargado.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User copia del usuario actual, o nil.
func (s *Session) User() *entity.AuthenticatedUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token token Bearer a adjuntar en las peticiones. Si no hay token explícito usa el del usuario.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token != "" {
		return s.token
	}
	if s.user != nil {
		return s.user.AccessToken
	}
	return ""
}

// TokenInfo claims informativos del token actual.
func (s *Session) TokenInfo() (*jwt.TokenInfo, error) {
	tok := s.Token()
	if tok == "" {
		return nil, domain.ErrUnauthorized
	}
	return jwt.Inspect(tok)
}
