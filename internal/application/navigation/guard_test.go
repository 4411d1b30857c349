package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/comedor/internal/application/navigation"
	"github.com/jhoicas/comedor/internal/domain/entity"
)

type fakeSession struct {
	authenticated bool
	role          entity.Role
	roleOK        bool
}

func (f fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f fakeSession) Role() (entity.Role, bool) { return f.role, f.roleOK }
func as(role entity.Role) fakeSession { return fakeSession{true, role, true} }
func anonymous() fakeSession { return fakeSession{} }

func TestGuard_Resolve(t *testing.T) {
	g := navigation.NewGuard()

	tests := []struct {
		name     string
		path     string
		session  navigation.Session
		view     navigation.View
		redirect string
	}{
		{"anónimo en login", "/login", anonymous(), navigation.ViewLogin, ""},
		{"anónimo en register", "/register", anonymous(), navigation.ViewRegister, ""},
		{"anónimo en activate", "/activate?token=abc", anonymous(), navigation.ViewActivate, ""},
		{"anónimo en menú", "/menu", anonymous(), "", "/login"},
		{"anónimo en raíz", "/", anonymous(), "", "/login"},
		{"anónimo en ruta desconocida", "/no-existe", anonymous(), "", "/login"},
		{"sesión nil", "/orders", nil, "", "/login"},

		{"admin en login va al tablero", "/login", as(entity.RoleAdmin), "", "/dashboard"},
		{"usuario en register va al menú", "/register", as(entity.RoleUser), "", "/menu"},
		{"usuario puede ver reset-password", "/reset-password", as(entity.RoleUser), navigation.ViewResetPassword, ""},
		{"raíz admin", "/", as(entity.RoleAdmin), "", "/dashboard"},
		{"raíz cajero", "/", as(entity.RoleCashier), "", "/dashboard"},
		{"raíz usuario", "/", as(entity.RoleUser), "", "/menu"},

		{"admin en usuarios", "/users", as(entity.RoleAdmin), navigation.ViewUsers, ""},
		{"cajero en usuarios", "/users", as(entity.RoleCashier), "", "/dashboard"},
		{"usuario en usuarios", "/users", as(entity.RoleUser), "", "/menu"},
		{"cajero en pendientes", "/pending-users", as(entity.RoleCashier), "", "/dashboard"},
		{"admin en ajustes", "/settings/", as(entity.RoleAdmin), navigation.ViewSettings, ""},

		{"cajero en tablero", "/dashboard", as(entity.RoleCashier), navigation.ViewDashboard, ""},
		{"usuario en tablero", "/dashboard", as(entity.RoleUser), "", "/menu"},
		{"cajero crea plato", "/menu/new", as(entity.RoleCashier), navigation.ViewDishEditor, ""},
		{"usuario crea plato", "/menu/new", as(entity.RoleUser), "", "/menu"},
		{"editar sin id", "/menu/edit/", as(entity.RoleAdmin), "", "/dashboard"},
		{"usuario en reporte", "/reports/orders", as(entity.RoleUser), "", "/menu"},

		{"usuario ve el menú", "/menu", as(entity.RoleUser), navigation.ViewMenu, ""},
		{"usuario ve sus órdenes", "/orders", as(entity.RoleUser), navigation.ViewUserOrders, ""},
		{"cajero ve todas las órdenes", "/orders", as(entity.RoleCashier), navigation.ViewOrders, ""},
		{"perfil", "profile", as(entity.RoleUser), navigation.ViewProfile, ""},
		{"ruta desconocida autenticado", "/nada", as(entity.RoleUser), "", "/menu"},

		{"rol ilegible", "/menu", fakeSession{authenticated: true}, "", "/login"},
		{"rol fuera del vocabulario", "/menu", fakeSession{true, "superuser", true}, "", "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.Resolve(tt.path, tt.session)
			assert.Equal(t, tt.redirect, d.Redirect)
			assert.Equal(t, tt.view, d.View)
			assert.Equal(t, tt.redirect != "", d.IsRedirect())
		})
	}
}

func TestGuard_EditarPlato_ExtraeID(t *testing.T) {
	d := navigation.NewGuard().Resolve("/menu/edit/42", as(entity.RoleAdmin))
	assert.Equal(t, navigation.ViewDishEditor, d.View)
	assert.Equal(t, "42", d.Params["id"])

	d = navigation.NewGuard().Resolve("/menu/edit/42/extra", as(entity.RoleAdmin))
	assert.Equal(t, "/dashboard", d.Redirect)
}

func TestGuard_NuncaEntraEnPanico(t *testing.T) {
	g := navigation.NewGuard()
	for _, p := range []string{"", " ", "//", "/../..", "?", "#x", "/menu/edit/%00", "\x00"} {
		assert.NotPanics(t, func() { g.Resolve(p, as(entity.RoleUser)) }, p)
		assert.NotPanics(t, func() { g.Resolve(p, nil) }, p)
	}
}

func TestHome(t *testing.T) {
	assert.Equal(t, "/dashboard", navigation.Home(entity.RoleAdmin))
	assert.Equal(t, "/dashboard", navigation.Home(entity.RoleCashier))
	assert.Equal(t, "/menu", navigation.Home(entity.RoleUser))
}
