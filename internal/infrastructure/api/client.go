// Package api contiene los clientes REST del backend del comedor.
//
// Todos los servicios comparten un único *Client cuyo transporte inyecta el
// token vigente en el momento del envío (nunca uno capturado al construir el
// cliente) y reacciona a 401/403 cerrando la sesión que emitió la petición.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain"
)

const (
	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 1 << 20
)

// Credentials fuente del token; la implementa *session.Context.
type Credentials interface {
	Credentials() (token string, gen uint64, ok bool)
	ExpireGeneration(gen uint64) bool
}

// Error fallo de una operación de la API con el mensaje a mostrar.
// Err permite errors.Is contra los sentinels de domain.
type Error struct {
	Op      string
	Status  int // 0 si no hubo respuesta
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Client cliente HTTP compartido por todos los servicios.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	session       Credentials
	log           zerolog.Logger
	onAuthFailure func()
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient usa un *http.Client propio (timeouts, TLS). Su Transport se envuelve.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger inyecta el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithOnAuthFailure callback ejecutado cuando un 401/403 cerró la sesión
// (el shell lo usa para navegar a /login).
func WithOnAuthFailure(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// New construye el cliente. baseURL incluye el prefijo /api.
func New(baseURL string, session Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{}
	if c.httpClient != nil {
		copied := *c.httpClient
		hc = &copied
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &authTransport{base: base, client: c}
	c.httpClient = hc
	return c
}

// authTransport intercepta cada petición: cabecera Authorization leída al enviar,
// X-Request-ID, y cierre de sesión ante 401/403 de la misma generación.
type authTransport struct {
	base   http.RoundTripper
	client *Client
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get(headerRequestID) == "" {
		out.Header.Set(headerRequestID, uuid.NewString())
	}

	token, gen, authorized := t.client.session.Credentials()
	if authorized {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if authorized && isAuthFailure(resp.StatusCode) {
		t.client.handleAuthFailure(gen, out, resp.StatusCode)
	}
	return resp, nil
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func (c *Client) handleAuthFailure(gen uint64, req *http.Request, status int) {
	logged := c.log.Warn().
		Int("status", status).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", req.Header.Get(headerRequestID)).
		Uint64("generation", gen)
	if !c.session.ExpireGeneration(gen) {
		logged.Msg("rechazo de autorización de una sesión anterior")
		return
	}
	logged.Msg("sesión cerrada por rechazo de autorización")
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
}

// doJSON ejecuta method path con in como cuerpo JSON (nil = sin cuerpo) y decodifica en out (nil = descartar).
// fallback es el mensaje a mostrar si el servidor no envía uno.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: crear HTTP request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req, fallback)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{Op: path, Status: resp.StatusCode, Message: fallback, Err: errors.Join(domain.ErrNetwork, err)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: deserializar %s: %w", path, err)
	}
	return nil
}

// send ejecuta la petición y convierte cualquier respuesta no-2xx en *Error.
// Con éxito el llamador debe cerrar resp.Body.
func (c *Client) send(req *http.Request, fallback string) (*http.Response, error) {
	op := req.URL.Path
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, &Error{Op: op, Message: fallback, Err: ctxErr}
		}
		c.log.Debug().Err(err).Str("path", op).Msg("api: llamada HTTP fallida")
		return nil, &Error{Op: op, Message: fallback, Err: errors.Join(domain.ErrNetwork, err)}
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	msg := dto.ErrorMessage(raw)
	if msg == "" {
		msg = fallback
	}
	return nil, &Error{Op: op, Status: resp.StatusCode, Message: msg, Err: statusError(resp.StatusCode)}
}

func statusError(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	default:
		return fmt.Errorf("HTTP %d", status)
	}
}
