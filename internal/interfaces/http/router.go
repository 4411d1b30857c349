// Package http expone el backend de desarrollo del comedor sobre Fiber.
// Reproduce el contrato REST que consume el cliente (rutas, cuerpos y 403 ante token inválido).
package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
	"github.com/jhoicas/comedor/internal/infrastructure/memory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *usecase.AuthUseCase
	UserUC     *usecase.UserUseCase
	DishUC     *usecase.DishUseCase
	OrderUC    *usecase.OrderUseCase
	CompanyUC  *usecase.CompanyUseCase
	SettingsUC *usecase.SettingsUseCase
	TempUserUC *usecase.TempUserUseCase
	Avatars    repository.AvatarRepository
	JWTSecret  string
}

// NewMemoryDeps arma los casos de uso sobre la base en memoria.
func NewMemoryDeps(db *memory.DB, jwtCfg usecase.JWTConfig) RouterDeps {
	authUC := usecase.NewAuthUseCase(db.Users, jwtCfg)
	return RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(db.Users, authUC),
		DishUC:     usecase.NewDishUseCase(db.Dishes),
		OrderUC:    usecase.NewOrderUseCase(db.Orders, db.Dishes, db.Users, db.Headquarters, db.Settings),
		CompanyUC:  usecase.NewCompanyUseCase(db.Companies, db.Headquarters),
		SettingsUC: usecase.NewSettingsUseCase(db.Settings),
		TempUserUC: usecase.NewTempUserUseCase(db.TempUsers, db.Users),
		Avatars:    db.Avatars,
		JWTSecret:  jwtCfg.Secret,
	}
}

// NewApp crea la aplicación Fiber con recover, CORS y log de peticiones.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		BodyLimit:             4 << 20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// RequestLogger registra método, ruta, status, duración y X-Request-ID.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", c.Get("X-Request-ID")).
			Msg("petición")
		return err
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.TempUserUC)
	dishHandler := NewDishHandler(deps.DishUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	userHandler := NewUserHandler(deps.UserUC, deps.Avatars)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.TempUserUC)

	// Público
	api.Post("/auth/authenticate", authHandler.Authenticate)
	api.Post("/TempUser/saveTempUser", authHandler.SaveTempUser)

	// Rutas protegidas (requieren Bearer Token)
	authn := AuthMiddleware(deps.JWTSecret)
	staff := RequireStaff()
	admin := RequireRole(entity.RoleAdmin)

	api.Post("/auth/registerUser", authn, admin, authHandler.RegisterUser)

	dishes := api.Group("/Dish", authn)
	dishes.Get("/getDish", dishHandler.List)
	dishes.Post("/saveDish", staff, dishHandler.Create)
	dishes.Put("/uptDish/:id", staff, dishHandler.Update)

	orders := api.Group("/Order", authn)
	orders.Get("/getOrder", staff, orderHandler.List)
	orders.Get("/findOrder/:id", orderHandler.ListByUser)
	orders.Post("/saveOrder", orderHandler.Create)
	orders.Patch("/updateOrderState/:id/state", staff, orderHandler.UpdateState)

	users := api.Group("/User", authn)
	users.Get("/getUser", staff, userHandler.List)
	users.Post("/saveUser", admin, userHandler.Create)
	users.Put("/updateUser/:id", admin, userHandler.Update)

	avatars := api.Group("/UserAvatar", authn)
	avatars.Get("/:id/avatar", userHandler.Avatar)
	avatars.Post("/:id/avatar", userHandler.UploadAvatar)

	companies := api.Group("/Company", authn)
	companies.Get("/getCompany", companyHandler.ListCompanies)
	companies.Post("/saveCompany", admin, companyHandler.CreateCompany)
	companies.Put("/updateCompany/:id", admin, companyHandler.UpdateCompany)
	companies.Delete("/deleteCompany/:id", admin, companyHandler.DeleteCompany)

	headquarters := api.Group("/Headquarter", authn)
	headquarters.Get("/getHeadquarter", companyHandler.ListHeadquarters)
	headquarters.Post("/saveHeadquarter", admin, companyHandler.CreateHeadquarter)
	headquarters.Put("/updateHeadquarter/:id", admin, companyHandler.UpdateHeadquarter)
	headquarters.Delete("/deleteHeadquarter/:id", admin, companyHandler.DeleteHeadquarter)

	config := api.Group("/ConfigHr", authn)
	config.Get("/getConfigHr", settingsHandler.CutoffTime)
	config.Put("/actConfigHr", admin, settingsHandler.UpdateCutoffTime)

	// /TempUser/saveTempUser es público: sin middleware de grupo
	api.Get("/TempUser/getTempUser", authn, admin, settingsHandler.ListTempUsers)
	api.Delete("/TempUser/deleteTempUser/:id", authn, admin, settingsHandler.DeleteTempUser)
}
