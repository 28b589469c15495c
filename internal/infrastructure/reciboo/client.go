package reciboo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/reciboo-portal/internal/domain"
)

// maxResponseBytes límite de lectura de respuestas del backend.
const maxResponseBytes = 8 << 20

// TokenSource entrega el token Bearer vigente ("" = sin sesión).
type TokenSource interface {
	Token() string
}

// Config parámetros del cliente.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	SubmitPath string
}

// Client adaptador del API REST de Reciboo.
// Usa net/http de la librería estándar de Go, como los demás adaptadores HTTP del proyecto.
type Client struct {
	baseURL    string
	submitPath string
	tokens     TokenSource
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente. tokens puede ser nil (sin Authorization).
func NewClient(cfg Config, tokens TokenSource, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	submitPath := cfg.SubmitPath
	if submitPath == "" {
		submitPath = "/factura/orden-compra"
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		submitPath: submitPath,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// APIError respuesta no exitosa del backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("reciboo: HTTP %d", e.Status)
	}
	return fmt.Sprintf("reciboo: HTTP %d: %s", e.Status, e.Message)
}

// Unwrap clasifica el error: 401/403 como ErrUnauthorized, 404 como ErrNotFound y el resto como ErrUpstream.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrUpstream
	}
}

type errorEnvelope struct {
	Status           string  `json:"status"`
	ErrorDescription *string `json:"errorDescription"`
	Message          string  `json:"message"`
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	anonymous   bool // no adjunta Authorization
}

// do ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("reciboo: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if !r.anonymous && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("reciboo: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("reciboo: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reciboo: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("request_id", reqID).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("reciboo: respuesta")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return raw, nil
}

func errorMessage(raw []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.ErrorDescription != nil && *env.ErrorDescription != "" {
			return *env.ErrorDescription
		}
		if env.Message != "" {
			return env.Message
		}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// invalid envuelve un error de esquema para que cumpla errors.Is(err, domain.ErrInvalidResponse)
// sin perder el *schema.Error original.
func invalid(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrInvalidResponse, path, err)
}
