// mockapi levanta un backend de desarrollo en memoria con los mismos
// endpoints que consume el cliente del comedor.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/comedor/internal/application/usecase"
	"github.com/jhoicas/comedor/internal/infrastructure/memory"
	httpRouter "github.com/jhoicas/comedor/internal/interfaces/http"
	"github.com/jhoicas/comedor/pkg/config"
	"github.com/jhoicas/comedor/pkg/logger"
)

// Secreto usado cuando JWT_SECRET no está definido. Solo para desarrollo.
const devJWTSecret = "comedor-dev-secret"

func main() {
	flags := pflag.NewFlagSet("mockapi", pflag.ExitOnError)
	config.RegisterFlags(flags)
	seedFile := flags.String("seed", "", "archivo YAML con los datos iniciales")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if *seedFile != "" {
		cfg.Mock.SeedFile = *seedFile
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando backend de desarrollo")

	seed, err := loadSeed(cfg.Mock.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Mock.SeedFile).Msg("cargar seed")
	}
	db := memory.NewDB()
	if err := seed.Apply(context.Background(), db, 0); err != nil {
		log.Fatal().Err(err).Msg("aplicar seed")
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, se usa el secreto de desarrollo")
		secret = devJWTSecret
	}
	deps := httpRouter.NewMemoryDeps(db, usecase.JWTConfig{
		Secret:     secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(cfg.App.Name, log.Zerolog())
	httpRouter.Router(app, deps)

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("backend detenido")
}

func loadSeed(path string) (*memory.Seed, error) {
	if path == "" {
		return memory.DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return memory.ParseSeed(f)
}
