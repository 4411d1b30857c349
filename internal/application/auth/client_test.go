package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comedor/internal/application/auth"
	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

func newServer(t *testing.T, handler http.HandlerFunc) *auth.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return auth.NewClient(srv.URL+"/api", srv.Client(), zerolog.Nop())
}

func TestAuthenticate_Admin(t *testing.T) {
	var got dto.AuthenticateRequest
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/authenticate", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "el login no lleva token")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"token":"tok123","authorities":["Administrador"],"id":7}`))
	})

	user, err := client.Authenticate(context.Background(), "admin@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, dto.AuthenticateRequest{User: "admin@x.com", Password: "secret"}, got)
	assert.Equal(t, entity.UserRecord{Email: "admin@x.com", ID: 7, Role: entity.RoleAdmin, Token: "tok123"}, user)
}

func TestAuthenticate_MapeoDeRoles(t *testing.T) {
	cases := map[string]entity.Role{
		`["Cajero"]`:              entity.RoleCashier,
		`["Usuario"]`:             entity.RoleUser,
		`[]`:                      entity.RoleUser,
		`["Otro","Administrador"]`: entity.RoleAdmin,
	}
	for authorities, want := range cases {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"token":"t","authorities":` + authorities + `,"id":1}`))
		})
		user, err := client.Authenticate(context.Background(), "u", "p")
		require.NoError(t, err, authorities)
		assert.Equal(t, want, user.Role, authorities)
	}
}

func TestAuthenticate_MensajeDelServidor(t *testing.T) {
	cases := map[string]string{
		`{"code":"UNAUTHORIZED","message":"credenciales inválidas"}`: "credenciales inválidas",
		`Usuario inactivo`: "Usuario inactivo",
		`"Contraseña incorrecta"`: "Contraseña incorrecta",
	}
	for body, want := range cases {
		client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(body))
		})
		_, err := client.Authenticate(context.Background(), "u", "p")
		require.Error(t, err)

		var authErr *auth.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, want, authErr.Message)
		assert.Equal(t, http.StatusUnauthorized, authErr.Status)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
		assert.NotErrorIs(t, err, domain.ErrNetwork)
	}
}

func TestAuthenticate_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := auth.NewClient(url+"/api", nil, zerolog.Nop())
	_, err := client.Authenticate(context.Background(), "u", "p")
	require.Error(t, err)
	assert.Equal(t, "Error de autenticación", err.Error())
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestAuthenticate_RespuestaSinToken(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"authorities":["Administrador"],"id":7}`))
	})
	_, err := client.Authenticate(context.Background(), "u", "p")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestRegister(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/TempUser/saveTempUser", r.URL.Path)
		var in entity.TempUser
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = 11
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})
	out, err := client.Register(context.Background(), entity.TempUser{FullName: "Ana", Mail: "ana@x.com", Role: "Usuario"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), out.ID)
	assert.Equal(t, "Ana", out.FullName)
}

func TestRegister_Duplicado(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"el correo ya está registrado"}`))
	})
	_, err := client.Register(context.Background(), entity.TempUser{Mail: "ana@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "el correo ya está registrado")
}
