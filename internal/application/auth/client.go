// Package auth implementa el intercambio de credenciales contra /auth/authenticate
// y el auto-registro público.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

const (
	authenticatePath = "/auth/authenticate"
	registerTempPath = "/TempUser/saveTempUser"

	// Mensaje cuando la petición falla antes de obtener respuesta.
	genericAuthMessage = "Error de autenticación"

	maxBodyBytes = 64 * 1024
)

// AuthError fallo de login con el motivo a mostrar al usuario.
// Siempre envuelve domain.ErrAuthentication; si no hubo respuesta también domain.ErrNetwork.
type AuthError struct {
	Status  int // 0 si no hubo respuesta
	Message string
	cause   error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() []error {
	if e.cause != nil {
		return []error{domain.ErrAuthentication, e.cause}
	}
	return []error{domain.ErrAuthentication}
}

// Client cliente de autenticación. No usa el transporte autorizado:
// el login nunca lleva token ni dispara el cierre de sesión por 401/403.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente. baseURL incluye el prefijo /api.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, log: log}
}

// Authenticate envía {user, password} y construye el usuario de sesión.
// El rol se deriva de las authorities (ver entity.RoleFromAuthorities). No reintenta.
func (c *Client) Authenticate(ctx context.Context, identifier, password string) (entity.UserRecord, error) {
	body, err := json.Marshal(dto.AuthenticateRequest{User: identifier, Password: password})
	if err != nil {
		return entity.UserRecord{}, fmt.Errorf("auth: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authenticatePath, bytes.NewReader(body))
	if err != nil {
		return entity.UserRecord{}, fmt.Errorf("auth: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("auth: llamada HTTP fallida")
		return entity.UserRecord{}, &AuthError{Message: genericAuthMessage, cause: errors.Join(domain.ErrNetwork, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return entity.UserRecord{}, &AuthError{Status: resp.StatusCode, Message: genericAuthMessage, cause: errors.Join(domain.ErrNetwork, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := dto.ErrorMessage(raw)
		if msg == "" {
			msg = fmt.Sprintf("%s (HTTP %d)", genericAuthMessage, resp.StatusCode)
		}
		return entity.UserRecord{}, &AuthError{Status: resp.StatusCode, Message: msg}
	}

	var out dto.AuthenticateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return entity.UserRecord{}, &AuthError{Status: resp.StatusCode, Message: genericAuthMessage, cause: fmt.Errorf("auth: deserializar respuesta: %w", err)}
	}
	if out.Token == "" {
		return entity.UserRecord{}, &AuthError{Status: resp.StatusCode, Message: genericAuthMessage, cause: errors.New("auth: respuesta sin token")}
	}

	return entity.UserRecord{
		Email: identifier,
		ID:    out.ID,
		Role:  entity.RoleFromAuthorities(out.Authorities),
		Token: out.Token,
	}, nil
}

// Register envía un auto-registro a la cola de aprobación. Es público: no requiere sesión.
func (c *Client) Register(ctx context.Context, user entity.TempUser) (*entity.TempUser, error) {
	body, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("auth: serializar registro: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+registerTempPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("auth: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error al registrar el usuario: %w", errors.Join(domain.ErrNetwork, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("auth: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := dto.ErrorMessage(raw)
		if msg == "" {
			msg = "Error al registrar el usuario"
		}
		if resp.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("%s: %w", msg, domain.ErrConflict)
		}
		return nil, fmt.Errorf("%s: %w", msg, domain.ErrInvalidInput)
	}

	var out entity.TempUser
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("auth: deserializar registro: %w", err)
	}
	return &out, nil
}
