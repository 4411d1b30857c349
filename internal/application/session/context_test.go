package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comedor/internal/application/session"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

// fakeAuth acepta cualquier identificador registrado en users.
type fakeAuth struct {
	mu    sync.Mutex
	users map[string]entity.UserRecord
	calls int
}

func (f *fakeAuth) Authenticate(_ context.Context, identifier, password string) (entity.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[identifier]
	if !ok || password != "secret" {
		return entity.UserRecord{}, errors.Join(domain.ErrAuthentication, errors.New("credenciales inválidas"))
	}
	return u, nil
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{users: map[string]entity.UserRecord{
		"admin@x.com": adminRecord,
		"ana@x.com":   {Email: "ana@x.com", ID: 9, Role: entity.RoleUser, Token: "tok-ana"},
	}}
}

func newContext(storage session.Storage) *session.Context {
	return session.NewContext(session.NewStore(storage, zerolog.Nop()), newFakeAuth(), zerolog.Nop())
}

func TestContext_SinSesion(t *testing.T) {
	sc := newContext(session.NewMemoryStorage())
	sc.Init()

	assert.False(t, sc.IsAuthenticated())
	_, ok := sc.Role()
	assert.False(t, ok)
	_, ok = sc.CurrentUser()
	assert.False(t, ok)

	h := sc.AuthorizationHeader()
	require.NotNil(t, h)
	assert.Empty(t, h.Get("Authorization"))
	_, present := h["Authorization"]
	assert.False(t, present, "sin sesión no debe existir la clave Authorization")
}

func TestContext_RehidratacionIdempotente(t *testing.T) {
	mem := session.NewMemoryStorage()
	session.NewStore(mem, zerolog.Nop()).Save(adminRecord)

	first := newContext(mem)
	first.Init()
	second := newContext(mem)
	second.Init()
	second.Init()

	for _, sc := range []*session.Context{first, second} {
		assert.True(t, sc.IsAuthenticated())
		role, ok := sc.Role()
		require.True(t, ok)
		assert.Equal(t, entity.RoleAdmin, role)
		user, ok := sc.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, adminRecord, user)
	}
}

func TestContext_EstadoCorrupto_FailClosed(t *testing.T) {
	mem := session.NewMemoryStorage()
	require.NoError(t, mem.Set(session.KeyToken, "tok123"))
	require.NoError(t, mem.Set(session.KeyUser, "not-json"))

	sc := newContext(mem)
	sc.Init()

	assert.False(t, sc.IsAuthenticated())
	assert.Equal(t, 0, mem.Len())
}

func TestContext_RolPersistidoInvalido_SinSesion(t *testing.T) {
	mem := session.NewMemoryStorage()
	require.NoError(t, mem.Set(session.KeyToken, "t"))
	require.NoError(t, mem.Set(session.KeyUser, `{"email":"a@x.com","id":1,"token":"t"}`))

	sc := newContext(mem)
	sc.Init()

	assert.False(t, sc.IsAuthenticated())
	_, ok := sc.Role()
	assert.False(t, ok)
	assert.Empty(t, sc.AuthorizationHeader().Get("Authorization"), "no se envía el token")
	assert.Equal(t, uint64(0), sc.Generation())
	assert.Equal(t, 0, mem.Len())
}

func TestContext_LoginLogout_SinResiduos(t *testing.T) {
	mem := session.NewMemoryStorage()
	sc := newContext(mem)
	sc.Init()

	require.NoError(t, sc.Login(context.Background(), "admin@x.com", "secret"))
	assert.True(t, sc.IsAuthenticated())
	role, _ := sc.Role()
	assert.Equal(t, entity.RoleAdmin, role)
	token, _, _ := mem.Get(session.KeyToken)
	assert.Equal(t, "tok123", token)

	sc.Logout()
	assert.False(t, sc.IsAuthenticated())
	assert.Equal(t, 0, mem.Len())

	sc.Logout() // idempotente
	assert.False(t, sc.IsAuthenticated())
}

func TestContext_LoginFallido_NoCambiaEstado(t *testing.T) {
	mem := session.NewMemoryStorage()
	sc := newContext(mem)
	sc.Init()

	err := sc.Login(context.Background(), "admin@x.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.False(t, sc.IsAuthenticated())
	assert.Equal(t, 0, mem.Len())

	require.NoError(t, sc.Login(context.Background(), "ana@x.com", "secret"))
	require.Error(t, sc.Login(context.Background(), "admin@x.com", "wrong"))
	user, ok := sc.CurrentUser()
	require.True(t, ok, "un login fallido no borra la sesión vigente")
	assert.Equal(t, int64(9), user.ID)
}

func TestContext_AuthorizationHeader_UltimoToken(t *testing.T) {
	sc := newContext(session.NewMemoryStorage())
	sc.Init()

	require.NoError(t, sc.Login(context.Background(), "ana@x.com", "secret"))
	assert.Equal(t, "Bearer tok-ana", sc.AuthorizationHeader().Get("Authorization"))

	require.NoError(t, sc.Login(context.Background(), "admin@x.com", "secret"))
	h := sc.AuthorizationHeader()
	assert.Equal(t, "Bearer tok123", h.Get("Authorization"))
	assert.Len(t, h, 1)
}

func TestContext_ExpireGeneration(t *testing.T) {
	mem := session.NewMemoryStorage()
	sc := newContext(mem)
	sc.Init()

	require.NoError(t, sc.Login(context.Background(), "ana@x.com", "secret"))
	_, staleGen, _ := sc.Credentials()

	require.NoError(t, sc.Login(context.Background(), "admin@x.com", "secret"))
	assert.False(t, sc.ExpireGeneration(staleGen), "un 403 de la sesión anterior se ignora")
	assert.True(t, sc.IsAuthenticated())

	_, gen, _ := sc.Credentials()
	assert.True(t, sc.ExpireGeneration(gen))
	assert.False(t, sc.IsAuthenticated())
	assert.Equal(t, 0, mem.Len())

	assert.False(t, sc.ExpireGeneration(gen), "sin sesión no hay nada que expirar")
}

func TestContext_AccesoConcurrente(t *testing.T) {
	sc := newContext(session.NewMemoryStorage())
	sc.Init()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = sc.Login(context.Background(), "admin@x.com", "secret")
		}()
		go func() {
			defer wg.Done()
			_ = sc.AuthorizationHeader()
			sc.Logout()
		}()
	}
	wg.Wait()

	// Tras la carrera el estado es coherente: o hay sesión completa o ninguna.
	if user, ok := sc.CurrentUser(); ok {
		assert.Equal(t, "Bearer "+user.Token, sc.AuthorizationHeader().Get("Authorization"))
	} else {
		assert.Empty(t, sc.AuthorizationHeader())
	}
}
