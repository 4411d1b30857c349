package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/comedor/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func seeded(t *testing.T) *memory.DB {
	t.Helper()
	seed, err := memory.DefaultSeed()
	require.NoError(t, err)
	db := memory.NewDB()
	require.NoError(t, seed.Apply(context.Background(), db, bcrypt.MinCost))
	return db
}

func newAuth(db *memory.DB) *usecase.AuthUseCase {
	return usecase.NewAuthUseCase(db.Users, usecase.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_Admin(t *testing.T) {
	uc := newAuth(seeded(t))
	out, err := uc.Authenticate(context.Background(), dto.AuthenticateRequest{User: "admin@x.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, []string{"Administrador"}, out.Authorities)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, []string{"Administrador"}, claims.Authorities)
}

func TestAuthenticate_Errores(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	uc := newAuth(db)

	_, err := uc.Authenticate(ctx, dto.AuthenticateRequest{User: "admin@x.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(ctx, dto.AuthenticateRequest{User: "nadie@x.com", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(ctx, dto.AuthenticateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inactive := entity.StateInactive
	_, err = usecase.NewUserUseCase(db.Users, uc).Update(ctx, 9, dto.UserUpdateRequest{State: &inactive})
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, dto.AuthenticateRequest{User: "ana@x.com", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser_YLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(seeded(t))

	user, err := uc.RegisterUser(ctx, entity.UserRegistration{
		FullName: "Luis", NumberIdentification: "123", Mail: "luis@x.com", Password: "clave",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AuthorityUser, user.Role)
	assert.Equal(t, entity.StateActive, user.State)
	assert.Equal(t, int64(123), user.NumberIdentification)

	out, err := uc.Authenticate(ctx, dto.AuthenticateRequest{User: "luis@x.com", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Usuario"}, out.Authorities)

	_, err = uc.RegisterUser(ctx, entity.UserRegistration{Mail: "luis@x.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func newOrders(t *testing.T, db *memory.DB, at string) *usecase.OrderUseCase {
	t.Helper()
	uc := usecase.NewOrderUseCase(db.Orders, db.Dishes, db.Users, db.Headquarters, db.Settings)
	now, err := time.Parse("2006-01-02 15:04", "2026-10-16 "+at)
	require.NoError(t, err)
	usecase.SetClock(uc, func() time.Time { return now })
	return uc
}

var ana = usecase.Caller{UserID: 9, Role: entity.RoleUser}

func anaOrder(dishID int64) entity.NewOrder {
	return entity.NewOrder{User: entity.IDRef{ID: 9}, Dish: entity.IDRef{ID: dishID}, Headquarter: entity.IDRef{ID: 1}}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	uc := newOrders(t, db, "09:15")

	order, err := uc.Create(ctx, ana, anaOrder(1))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, order.State)
	assert.Equal(t, "Ana Pérez", order.User.FullName)
	assert.Equal(t, "Sede Norte", order.Headquarter.Name)
	assert.Equal(t, "2026-10-16T09:15:00", order.FechaPedido)

	dish, err := db.Dishes.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 39, dish.Amount)
	assert.Equal(t, 1, dish.OrdersToday)
}

func TestCreateOrder_DespuesDeLaHoraDeCorte(t *testing.T) {
	uc := newOrders(t, seeded(t), "10:00")
	_, err := uc.Create(context.Background(), ana, anaOrder(1))
	assert.ErrorIs(t, err, usecase.ErrOrderingClosed)
}

func TestCreateOrder_ANombreDeOtro(t *testing.T) {
	uc := newOrders(t, seeded(t), "08:00")
	in := anaOrder(1)
	in.User.ID = 7
	_, err := uc.Create(context.Background(), ana, in)
	assert.ErrorIs(t, err, usecase.ErrOrderForbidden)

	cajero := usecase.Caller{UserID: 8, Role: entity.RoleCashier}
	_, err = uc.Create(context.Background(), cajero, anaOrder(1))
	assert.NoError(t, err, "el personal puede registrar pedidos de otros")
}

func TestCreateOrder_AgotaElPlato(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	_, err := usecase.NewDishUseCase(db.Dishes).Update(ctx, 2, entity.Dish{
		Name: "Sopa", Price: entity.NewPrice(decimal.NewFromInt(5)), Amount: 1, MaxDailyAmount: 1,
	})
	require.NoError(t, err)

	uc := newOrders(t, db, "08:00")
	first, err := uc.Create(ctx, ana, anaOrder(2))
	require.NoError(t, err)
	_, err = uc.Create(ctx, ana, anaOrder(2))
	assert.ErrorIs(t, err, usecase.ErrDishUnavailable)

	// Cancelar devuelve la unidad
	_, err = uc.UpdateState(ctx, first.ID, "CANCELADO")
	require.NoError(t, err)
	dish, err := db.Dishes.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.DishAvailable, dish.State)
	assert.Equal(t, 1, dish.Amount)
}

func TestUpdateState(t *testing.T) {
	ctx := context.Background()
	uc := newOrders(t, seeded(t), "08:00")
	order, err := uc.Create(ctx, ana, anaOrder(1))
	require.NoError(t, err)

	_, err = uc.UpdateState(ctx, order.ID, "Despachado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.UpdateState(ctx, order.ID, "entregado")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, got.State)

	_, err = uc.UpdateState(ctx, order.ID, entity.OrderCancelled)
	assert.ErrorIs(t, err, usecase.ErrOrderFinalized)

	_, err = uc.UpdateState(ctx, 999, entity.OrderDelivered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByUser_SoloPropias(t *testing.T) {
	uc := newOrders(t, seeded(t), "08:00")
	_, err := uc.ListByUser(context.Background(), ana, 7)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListByUser(context.Background(), ana, 9)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros pendientes y ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestTempUser_Register(t *testing.T) {
	ctx := context.Background()
	db := seeded(t)
	uc := usecase.NewTempUserUseCase(db.TempUsers, db.Users)

	got, err := uc.Register(ctx, entity.TempUser{FullName: "Marta", Mail: "marta@x.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, usecase.TempUserPending, got.State)
	assert.Equal(t, entity.AuthorityUser, got.Role)

	_, err = uc.Register(ctx, entity.TempUser{FullName: "Otra", Mail: "admin@x.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict, "correo ya registrado")

	_, err = uc.Register(ctx, entity.TempUser{FullName: "Marta", Mail: "MARTA@x.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict, "correo ya pendiente")
}

func TestSettings_CutoffTime(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSettingsUseCase(memory.NewDB().Settings)

	assert.ErrorIs(t, uc.SetCutoffTime(ctx, "25:00"), domain.ErrInvalidInput)
	require.NoError(t, uc.SetCutoffTime(ctx, "9:30"))
	got, err := uc.CutoffTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:30", got)
}
