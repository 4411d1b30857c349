package entity

import "slices"

// Role rol interno del cliente. El backend maneja un vocabulario más rico
// (authorities) que se reduce a estos tres valores.
type Role string

// Roles válidos.
const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleUser    Role = "user"
)

// Marcadores de authority que emite el backend en /auth/authenticate.
const (
	AuthorityAdmin   = "Administrador"
	AuthorityCashier = "Cajero"
	AuthorityUser    = "Usuario"
)

// RoleFromAuthorities mapea la lista de authorities al rol interno.
// Primera coincidencia exacta (sensible a mayúsculas): Administrador, luego Cajero.
// Cualquier otra lista, incluida la vacía, resuelve al rol de menor privilegio.
func RoleFromAuthorities(authorities []string) Role {
	switch {
	case slices.Contains(authorities, AuthorityAdmin):
		return RoleAdmin
	case slices.Contains(authorities, AuthorityCashier):
		return RoleCashier
	default:
		return RoleUser
	}
}

// ParseRole valida un rol recibido (p. ej. desde la sesión persistida).
// Valores desconocidos resuelven a RoleUser con ok=false.
func ParseRole(s string) (r Role, ok bool) {
	switch Role(s) {
	case RoleAdmin, RoleCashier, RoleUser:
		return Role(s), true
	default:
		return RoleUser, false
	}
}

// IsStaff indica si el rol puede gestionar menú y órdenes.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleCashier
}

// Authority devuelve el marcador del backend para el rol.
func (r Role) Authority() string {
	switch r {
	case RoleAdmin:
		return AuthorityAdmin
	case RoleCashier:
		return AuthorityCashier
	default:
		return AuthorityUser
	}
}

// UnmarshalText acepta solo el vocabulario interno; lo demás cae a user.
func (r *Role) UnmarshalText(b []byte) error {
	*r, _ = ParseRole(string(b))
	return nil
}

func (r Role) String() string { return string(r) }

// RoleFromAuthority convierte el campo role de un usuario del backend
// ("Administrador", "Cajero", "Usuario") al rol interno.
func RoleFromAuthority(s string) Role {
	return RoleFromAuthorities([]string{s})
}
