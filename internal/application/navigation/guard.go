// Package navigation decide, para cada navegación, qué vista mostrar según la sesión.
package navigation

import (
	"path"
	"strings"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

// View vista que el shell debe renderizar.
type View string

const (
	ViewLogin         View = "login"
	ViewRegister      View = "register"
	ViewResetPassword View = "reset-password"
	ViewActivate      View = "activate"
	ViewDashboard     View = "dashboard"
	ViewMenu          View = "menu"
	ViewDishEditor    View = "dish-editor"
	ViewOrders        View = "orders"
	ViewUserOrders    View = "user-orders"
	ViewProfile       View = "profile"
	ViewUsers         View = "users"
	ViewPendingUsers  View = "pending-users"
	ViewSettings      View = "settings"
	ViewCompanies     View = "companies"
	ViewHeadquarters  View = "headquarters"
	ViewOrdersReport  View = "orders-report"
)

// Rutas conocidas.
const (
	PathRoot          = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathResetPassword = "/reset-password"
	PathActivate      = "/activate"
	PathDashboard     = "/dashboard"
	PathMenu          = "/menu"
	PathMenuNew       = "/menu/new"
	PathMenuEdit      = "/menu/edit/"
	PathOrders        = "/orders"
	PathProfile       = "/profile"
	PathUsers         = "/users"
	PathPendingUsers  = "/pending-users"
	PathSettings      = "/settings"
	PathCompanies     = "/companies"
	PathHeadquarters  = "/headquarters"
	PathOrdersReport  = "/reports/orders"
)

// Session lo que la guarda necesita saber de la sesión; lo implementa *session.Context.
type Session interface {
	IsAuthenticated() bool
	Role() (entity.Role, bool)
}

// Decision resultado de una navegación: o se muestra View en Path, o se redirige.
type Decision struct {
	Path     string // ruta normalizada solicitada
	View     View   // vacío si Redirect != ""
	Redirect string
	Params   map[string]string
}

// IsRedirect indica si la navegación termina en otra ruta.
func (d Decision) IsRedirect() bool { return d.Redirect != "" }

type access int

const (
	accessAny   access = iota // cualquier usuario autenticado
	accessStaff               // admin o cashier
	accessAdmin
)

type route struct {
	path   string
	prefix bool // path es prefijo y el resto es el parámetro id
	view   View
	access access
}

var publicRoutes = map[string]View{
	PathLogin:         ViewLogin,
	PathRegister:      ViewRegister,
	PathResetPassword: ViewResetPassword,
	PathActivate:      ViewActivate,
}

var protectedRoutes = []route{
	{path: PathDashboard, view: ViewDashboard, access: accessStaff},
	{path: PathMenu, view: ViewMenu, access: accessAny},
	{path: PathMenuNew, view: ViewDishEditor, access: accessStaff},
	{path: PathMenuEdit, prefix: true, view: ViewDishEditor, access: accessStaff},
	{path: PathOrders, view: ViewOrders, access: accessAny},
	{path: PathProfile, view: ViewProfile, access: accessAny},
	{path: PathUsers, view: ViewUsers, access: accessAdmin},
	{path: PathPendingUsers, view: ViewPendingUsers, access: accessAdmin},
	{path: PathSettings, view: ViewSettings, access: accessAdmin},
	{path: PathCompanies, view: ViewCompanies, access: accessAdmin},
	{path: PathHeadquarters, view: ViewHeadquarters, access: accessAdmin},
	{path: PathOrdersReport, view: ViewOrdersReport, access: accessStaff},
}

// Guard aplica la política de rutas. Sin estado; seguro para uso concurrente.
type Guard struct{}

// NewGuard construye la guarda.
func NewGuard() *Guard { return &Guard{} }

// Home ruta inicial de cada rol: tablero para el personal, menú para usuarios.
func Home(role entity.Role) string {
	if role.IsStaff() {
		return PathDashboard
	}
	return PathMenu
}

// Resolve decide la vista para rawPath. Nunca falla: lo que no se reconoce redirige.
func (g *Guard) Resolve(rawPath string, s Session) Decision {
	p := normalize(rawPath)

	role, authenticated := principal(s)

	if view, ok := publicRoutes[p]; ok {
		if authenticated && (p == PathLogin || p == PathRegister) {
			return Decision{Path: p, Redirect: Home(role)}
		}
		return Decision{Path: p, View: view}
	}

	if !authenticated {
		return Decision{Path: p, Redirect: PathLogin}
	}

	if p == PathRoot {
		return Decision{Path: p, Redirect: Home(role)}
	}

	r, params, ok := match(p)
	if !ok {
		return Decision{Path: p, Redirect: Home(role)}
	}
	if !allowed(r.access, role) {
		return Decision{Path: p, Redirect: Home(role)}
	}

	view := r.view
	if view == ViewOrders && !role.IsStaff() {
		view = ViewUserOrders
	}
	return Decision{Path: p, View: view, Params: params}
}

// principal lee la sesión; un rol ilegible se trata como sesión ausente.
func principal(s Session) (entity.Role, bool) {
	if s == nil || !s.IsAuthenticated() {
		return "", false
	}
	role, ok := s.Role()
	if !ok {
		return "", false
	}
	if _, valid := entity.ParseRole(string(role)); !valid {
		return "", false
	}
	return role, true
}

func allowed(a access, role entity.Role) bool {
	switch a {
	case accessAdmin:
		return role == entity.RoleAdmin
	case accessStaff:
		return role.IsStaff()
	default:
		return true
	}
}

func match(p string) (route, map[string]string, bool) {
	for _, r := range protectedRoutes {
		if !r.prefix {
			if p == r.path {
				return r, nil, true
			}
			continue
		}
		id, ok := strings.CutPrefix(p, r.path)
		if ok && id != "" && !strings.Contains(id, "/") {
			return r, map[string]string{"id": id}, true
		}
	}
	return route{}, nil, false
}

// normalize limpia la ruta: sin query, sin barra final, siempre absoluta.
func normalize(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PathRoot
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return path.Clean(raw)
}
