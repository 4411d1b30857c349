package http_test

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comedor/internal/application/auth"
	"github.com/jhoicas/comedor/internal/application/navigation"
	"github.com/jhoicas/comedor/internal/application/session"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/infrastructure/api"
)

// serve levanta el backend en un puerto libre y devuelve la URL base con /api.
func serve(t *testing.T) string {
	t.Helper()
	app := newBackend(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String() + "/api"
}

type clientStack struct {
	storage  *session.FileStorage
	session  *session.Context
	services *api.Services
	guard    *navigation.Guard
	expired  atomic.Int32
}

func newClientStack(t *testing.T, baseURL, sessionFile string) *clientStack {
	t.Helper()
	cs := &clientStack{storage: session.NewFileStorage(sessionFile), guard: navigation.NewGuard()}
	store := session.NewStore(cs.storage, zerolog.Nop())
	cs.session = session.NewContext(store, auth.NewClient(baseURL, nil, zerolog.Nop()), zerolog.Nop())
	cs.session.Init()
	client := api.New(baseURL, cs.session, api.WithOnAuthFailure(func() { cs.expired.Add(1) }))
	cs.services = api.NewServices(client)
	return cs
}

func TestE2E_LoginAdmin(t *testing.T) {
	baseURL := serve(t)
	file := filepath.Join(t.TempDir(), "session.json")
	cs := newClientStack(t, baseURL, file)

	assert.Equal(t, "/login", cs.guard.Resolve("/users", cs.session).Redirect)

	require.NoError(t, cs.session.Login(context.Background(), "admin@x.com", "secret"))

	user, ok := cs.session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, "admin@x.com", user.Email)
	assert.Equal(t, "Bearer "+user.Token, cs.session.AuthorizationHeader().Get("Authorization"))

	stored, ok, err := cs.storage.Get(session.KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, user.Token, stored)

	d := cs.guard.Resolve("/users", cs.session)
	assert.Equal(t, navigation.ViewUsers, d.View)

	dishes, err := cs.services.Dishes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, dishes, 2)

	// Otro proceso con el mismo archivo retoma la sesión
	other := newClientStack(t, baseURL, file)
	assert.True(t, other.session.IsAuthenticated())
	customers, err := other.services.Customers.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestE2E_CredencialesInvalidas(t *testing.T) {
	cs := newClientStack(t, serve(t), filepath.Join(t.TempDir(), "session.json"))

	err := cs.session.Login(context.Background(), "admin@x.com", "mala")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthentication))
	assert.Equal(t, "Credenciales inválidas", err.Error())
	assert.False(t, cs.session.IsAuthenticated())
}

func TestE2E_TokenRechazado_CierraSesion(t *testing.T) {
	baseURL := serve(t)
	file := filepath.Join(t.TempDir(), "session.json")

	// Sesión persistida con un token que el backend no reconoce
	session.NewStore(session.NewFileStorage(file), zerolog.Nop()).Save(entity.UserRecord{
		Email: "ana@x.com", ID: 9, Role: entity.RoleUser, Token: "tok-viejo",
	})

	cs := newClientStack(t, baseURL, file)
	require.True(t, cs.session.IsAuthenticated())

	_, err := cs.services.Dishes.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.False(t, cs.session.IsAuthenticated())
	assert.Equal(t, int32(1), cs.expired.Load())
	assert.Equal(t, "/login", cs.guard.Resolve("/menu", cs.session).Redirect)

	_, ok, err := cs.storage.Get(session.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok, "no queda token en el almacenamiento")
}

func TestE2E_UsuarioSinPermiso_RechazoCierraSesion(t *testing.T) {
	cs := newClientStack(t, serve(t), filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, cs.session.Login(context.Background(), "ana@x.com", "secret"))

	assert.Equal(t, "/menu", cs.guard.Resolve("/users", cs.session).Redirect)

	// El backend responde 403 por rol: la sesión se cierra igual que ante un token inválido
	_, err := cs.services.Customers.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, cs.session.IsAuthenticated())
}

func TestE2E_AprobarRegistroPendiente(t *testing.T) {
	baseURL := serve(t)
	ctx := context.Background()

	anon := newClientStack(t, baseURL, filepath.Join(t.TempDir(), "anon.json"))
	_, err := auth.NewClient(baseURL, nil, zerolog.Nop()).Register(ctx, entity.TempUser{
		FullName: "Marta", Mail: "marta@x.com", Password: "clave", NumberIdentification: "77",
	})
	require.NoError(t, err)
	assert.False(t, anon.session.IsAuthenticated())

	admin := newClientStack(t, baseURL, filepath.Join(t.TempDir(), "admin.json"))
	require.NoError(t, admin.session.Login(ctx, "admin@x.com", "secret"))

	pending, err := admin.services.TempUsers.List(ctx)
	require.NoError(t, err)
	var marta entity.TempUser
	for _, p := range pending {
		if p.Mail == "marta@x.com" {
			marta = p
		}
	}
	require.NotZero(t, marta.ID)
	require.NoError(t, admin.services.TempUsers.Approve(ctx, marta))

	pending, err = admin.services.TempUsers.List(ctx)
	require.NoError(t, err)
	for _, p := range pending {
		assert.NotEqual(t, "marta@x.com", p.Mail)
	}

	require.NoError(t, anon.session.Login(ctx, "marta@x.com", "clave"))
	role, _ := anon.session.Role()
	assert.Equal(t, entity.RoleUser, role)
}
