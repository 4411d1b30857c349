package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// Store persiste la sesión (token + usuario) y la reconstruye al arrancar.
// Ninguna operación devuelve error: los fallos del almacenamiento se registran
// y la sesión sigue viva solo en memoria.
type Store struct {
	storage  Storage
	log      zerolog.Logger
	degraded atomic.Bool
}

// NewStore construye el store sobre un Storage.
func NewStore(storage Storage, log zerolog.Logger) *Store {
	return &Store{storage: storage, log: log}
}

// Load lee token y usuario. ok=false si falta alguno o si el contenido es inválido;
// en el segundo caso ambas claves se eliminan.
func (s *Store) Load() (entity.UserRecord, bool) {
	token, hasToken, err := s.storage.Get(KeyToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("sesión persistida ilegible, se descarta")
		s.Clear()
		return entity.UserRecord{}, false
	}
	rawUser, hasUser, err := s.storage.Get(KeyUser)
	if err != nil {
		s.log.Warn().Err(err).Msg("sesión persistida ilegible, se descarta")
		s.Clear()
		return entity.UserRecord{}, false
	}

	hasToken = hasToken && token != ""
	hasUser = hasUser && rawUser != ""
	switch {
	case !hasToken && !hasUser:
		s.log.Debug().Msg("no hay sesión persistida")
		return entity.UserRecord{}, false
	case hasToken != hasUser:
		s.log.Warn().Bool("token", hasToken).Bool("user", hasUser).Msg("sesión persistida incompleta, se descarta")
		s.Clear()
		return entity.UserRecord{}, false
	}

	user, err := decodeUser(rawUser)
	if err != nil {
		s.log.Warn().Err(err).Msg("usuario persistido corrupto, se descarta la sesión")
		s.Clear()
		return entity.UserRecord{}, false
	}
	if user.Token != token {
		s.log.Warn().Msg("token persistido no coincide con el usuario, se descarta la sesión")
		s.Clear()
		return entity.UserRecord{}, false
	}
	return user, true
}

// persistedUser forma en disco de la clave user. Role se lee como texto para
// no pasar por Role.UnmarshalText, que degrada valores desconocidos a user.
type persistedUser struct {
	Email string `json:"email"`
	ID    int64  `json:"id"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// decodeUser exige id y un rol del vocabulario interno.
func decodeUser(raw string) (entity.UserRecord, error) {
	var p persistedUser
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return entity.UserRecord{}, err
	}
	if p.ID == 0 {
		return entity.UserRecord{}, errors.New("usuario sin id")
	}
	role, ok := entity.ParseRole(p.Role)
	if !ok {
		return entity.UserRecord{}, fmt.Errorf("rol desconocido %q", p.Role)
	}
	return entity.UserRecord{Email: p.Email, ID: p.ID, Role: role, Token: p.Token}, nil
}

// Save escribe primero el usuario y después el token: un corte entre ambas
// escrituras deja una sesión incompleta que Load descarta.
func (s *Store) Save(user entity.UserRecord) {
	raw, err := json.Marshal(user)
	if err == nil {
		err = s.storage.Set(KeyUser, string(raw))
	}
	if err == nil {
		err = s.storage.Set(KeyToken, user.Token)
	}
	if err != nil {
		s.degraded.Store(true)
		s.log.Warn().Err(err).Msg("no se pudo persistir la sesión; se mantiene solo en memoria")
		s.Clear()
		return
	}
	s.degraded.Store(false)
}

// Clear elimina ambas claves. Idempotente.
func (s *Store) Clear() {
	for _, key := range []string{KeyToken, KeyUser} {
		if err := s.storage.Delete(key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("no se pudo eliminar la clave de sesión")
		}
	}
}

// Degraded indica si la última escritura falló (sesión solo en memoria).
func (s *Store) Degraded() bool {
	return s.degraded.Load()
}
