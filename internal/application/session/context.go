// Package session mantiene la sesión del cliente: token, usuario cacheado y rol.
//
// Context es la única autoridad del proceso sobre "¿hay sesión y con qué rol?"
// y "¿cómo se autoriza una petición saliente?". Se construye una vez en main y
// se inyecta en el cliente HTTP, la guarda de rutas y los comandos.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// Authenticator intercambia credenciales por un usuario de sesión.
// Lo implementa *auth.Client.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, password string) (entity.UserRecord, error)
}

// Context estado de sesión compartido por todas las peticiones en vuelo.
// Seguro para uso concurrente.
type Context struct {
	store *Store
	auth  Authenticator
	log   zerolog.Logger

	mu         sync.RWMutex
	user       *entity.UserRecord
	generation uint64
}

// NewContext construye el contexto sin sesión. Llamar Init antes de la primera navegación.
func NewContext(store *Store, auth Authenticator, log zerolog.Logger) *Context {
	return &Context{store: store, auth: auth, log: log}
}

// Init rehidrata la sesión desde el store.
func (c *Context) Init() {
	user, ok := c.store.Load()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !ok {
		c.user = nil
		return
	}
	c.user = &user
	c.generation++
	c.log.Debug().Int64("user_id", user.ID).Str("role", user.Role.String()).Msg("sesión restaurada")
}

// Login autentica y, si tiene éxito, reemplaza la sesión actual.
// Ante un error el estado no cambia.
func (c *Context) Login(ctx context.Context, identifier, password string) error {
	user, err := c.auth.Authenticate(ctx, identifier, password)
	if err != nil {
		c.log.Info().Err(err).Str("user", identifier).Msg("login rechazado")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Save(user)
	c.user = &user
	c.generation++
	c.log.Info().Int64("user_id", user.ID).Str("role", user.Role.String()).Uint64("generation", c.generation).Msg("sesión iniciada")
	return nil
}

// Logout borra la sesión persistida y en memoria. Idempotente.
func (c *Context) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Context) clearLocked() {
	c.store.Clear()
	if c.user != nil {
		c.log.Info().Int64("user_id", c.user.ID).Msg("sesión cerrada")
	}
	c.user = nil
}

// ExpireGeneration aplica el efecto de un 401/403: cierra la sesión solo si
// la petición rechazada salió con la generación vigente. Una respuesta tardía
// de una sesión anterior no puede borrar un login más reciente.
// Devuelve true si la sesión se cerró.
func (c *Context) ExpireGeneration(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil || gen != c.generation {
		c.log.Debug().Uint64("request_generation", gen).Uint64("generation", c.generation).Msg("rechazo de autorización obsoleto, se ignora")
		return false
	}
	c.log.Warn().Uint64("generation", gen).Msg("token rechazado por el servidor, se cierra la sesión")
	c.clearLocked()
	return true
}

// IsAuthenticated true si hay token y usuario válidos.
func (c *Context) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

// Role rol de la sesión; ok=false sin sesión.
func (c *Context) Role() (entity.Role, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return "", false
	}
	return c.user.Role, true
}

// CurrentUser copia del usuario de la sesión; ok=false sin sesión.
func (c *Context) CurrentUser() (entity.UserRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return entity.UserRecord{}, false
	}
	return *c.user, true
}

// Generation contador de sesiones establecidas.
func (c *Context) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Credentials token y generación leídos juntos, para etiquetar una petición al enviarla.
func (c *Context) Credentials() (token string, gen uint64, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return "", c.generation, false
	}
	return c.user.Token, c.generation, true
}

// AuthorizationHeader devuelve el fragmento de cabeceras a fusionar en una petición.
// Sin sesión devuelve un Header vacío (nunca nil), así el llamador puede fusionarlo sin condiciones.
func (c *Context) AuthorizationHeader() http.Header {
	h := http.Header{}
	if token, _, ok := c.Credentials(); ok {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
