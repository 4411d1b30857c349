package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/comedor/internal/interfaces/http"
)

// newBackend backend completo sobre el seed embebido, sin hora de corte
// para que los tests no dependan de la hora.
func newBackend(t *testing.T) *fiber.App {
	t.Helper()
	seed, err := memory.DefaultSeed()
	require.NoError(t, err)
	db := memory.NewDB()
	require.NoError(t, seed.Apply(context.Background(), db, bcrypt.MinCost))
	require.NoError(t, db.Settings.SetCutoffTime(context.Background(), ""))

	deps := apphttp.NewMemoryDeps(db, usecase.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	deps.AuthUC.WithBcryptCost(bcrypt.MinCost)
	app := apphttp.NewApp("comedor-test", zerolog.Nop())
	apphttp.Router(app, deps)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func login(t *testing.T, app *fiber.App, mail string) dto.AuthenticateResponse {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/auth/authenticate", "", dto.AuthenticateRequest{User: mail, Password: "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.AuthenticateResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestAuthenticate(t *testing.T) {
	app := newBackend(t)
	out := login(t, app, "admin@x.com")
	assert.Equal(t, int64(7), out.ID)
	assert.Equal(t, []string{"Administrador"}, out.Authorities)
	assert.NotEmpty(t, out.Token)

	resp, raw := call(t, app, http.MethodPost, "/api/auth/authenticate", "", dto.AuthenticateRequest{User: "admin@x.com", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Credenciales inválidas", dto.ErrorMessage(raw))
}

func TestRutasProtegidas_SinToken403(t *testing.T) {
	app := newBackend(t)
	for _, path := range []string{"/api/Dish/getDish", "/api/Order/getOrder", "/api/User/getUser", "/api/ConfigHr/getConfigHr"} {
		resp, _ := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
}

func TestPedidos_PorRol(t *testing.T) {
	app := newBackend(t)
	ana := login(t, app, "ana@x.com")
	cajero := login(t, app, "cajero@x.com")

	resp, raw := call(t, app, http.MethodPost, "/api/Order/saveOrder", ana.Token, entity.NewOrder{
		User: entity.IDRef{ID: 9}, Dish: entity.IDRef{ID: 1}, Headquarter: entity.IDRef{ID: 1}, State: entity.OrderPending,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var order entity.Order
	require.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, entity.OrderPending, order.State)
	assert.Equal(t, "12.50", order.Dish.Price.StringFixed(2))

	resp, _ = call(t, app, http.MethodGet, "/api/Order/getOrder", ana.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un usuario no ve todas las órdenes")

	resp, _ = call(t, app, http.MethodGet, "/api/Order/findOrder/9", ana.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPatch, "/api/Order/updateOrderState/1/state?state=Entregado", ana.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPatch, "/api/Order/updateOrderState/1/state?state=Entregado", cajero.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, entity.OrderDelivered, order.State)

	resp, raw = call(t, app, http.MethodPatch, "/api/Order/updateOrderState/1/state?state=Cancelado", cajero.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "la orden ya fue entregada o cancelada", dto.ErrorMessage(raw))
}

func TestAutoRegistro_Publico(t *testing.T) {
	app := newBackend(t)
	nuevo := entity.TempUser{FullName: "Marta", Mail: "marta@x.com", Password: "x", NumberIdentification: "55"}

	resp, raw := call(t, app, http.MethodPost, "/api/TempUser/saveTempUser", "", nuevo)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.NotContains(t, string(raw), `"password"`)

	resp, _ = call(t, app, http.MethodPost, "/api/TempUser/saveTempUser", "", nuevo)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/TempUser/getTempUser", "", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "la lista de pendientes no es pública")
}

func TestHoraDeCorte_SoloAdmin(t *testing.T) {
	app := newBackend(t)
	ana := login(t, app, "ana@x.com")
	admin := login(t, app, "admin@x.com")

	resp, _ := call(t, app, http.MethodPut, "/api/ConfigHr/actConfigHr?newTime=08:00", ana.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPut, "/api/ConfigHr/actConfigHr?newTime=8am", admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPut, "/api/ConfigHr/actConfigHr?newTime=08:00", admin.Token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := call(t, app, http.MethodGet, "/api/ConfigHr/getConfigHr", ana.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"cutoffTime":"08:00"}`, string(raw))
}

func TestAvatar_SubirYDescargar(t *testing.T) {
	app := newBackend(t)
	ana := login(t, app, "ana@x.com")

	upload := func(userID string) *http.Response {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("avatar", "foto.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("\x89PNG\r\n\x1a\nDATA"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/UserAvatar/"+userID+"/avatar", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+ana.Token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload("7")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo el propio avatar")

	resp = upload("9")
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := call(t, app, http.MethodGet, "/api/UserAvatar/9/avatar", ana.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}
