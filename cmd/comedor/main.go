// comedor es el cliente de línea de comandos del comedor: inicia sesión,
// consulta el menú, registra pedidos y expone las vistas del personal.
//
// Cada comando equivale a una navegación: antes de ejecutarse pasa por la
// guarda de rutas con la sesión actual, igual que lo haría la SPA.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jhoicas/comedor/internal/application/auth"
	"github.com/jhoicas/comedor/internal/application/navigation"
	"github.com/jhoicas/comedor/internal/application/session"
	"github.com/jhoicas/comedor/internal/infrastructure/api"
	"github.com/jhoicas/comedor/pkg/config"
	"github.com/jhoicas/comedor/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("comedor", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	config.RegisterFlags(flags)
	flags.Usage = func() { usage(flags) }
	if err := flags.Parse(args); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) == 0 {
		usage(flags)
		return errors.New("falta el comando")
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		usage(flags)
		return fmt.Errorf("comando desconocido %q", rest[0])
	}

	app := newApp(cfg, out)
	app.log.Debug().Str("command", rest[0]).Str("api", cfg.API.BaseURL).Msg("ejecutando comando")
	return cmd.run(ctx, app, rest[1:])
}

// app dependencias compartidas por los comandos.
type app struct {
	out      io.Writer
	log      *logger.Logger
	session  *session.Context
	store    *session.Store
	storage  session.Storage
	auth     *auth.Client
	services *api.Services
	guard    *navigation.Guard
}

func newApp(cfg *config.Config, out io.Writer) *app {
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	zl := log.Zerolog()

	var storage session.Storage
	if cfg.Session.Ephemeral {
		storage = session.NewMemoryStorage()
	} else {
		storage = session.NewFileStorage(cfg.Session.File)
	}
	store := session.NewStore(storage, zl)

	httpClient := &http.Client{Timeout: cfg.API.Timeout}
	authClient := auth.NewClient(cfg.API.BaseURL, httpClient, zl)
	sc := session.NewContext(store, authClient, zl)
	sc.Init()

	a := &app{
		out:     out,
		log:     log,
		session: sc,
		store:   store,
		storage: storage,
		auth:    authClient,
		guard:   navigation.NewGuard(),
	}
	client := api.New(cfg.API.BaseURL, sc,
		api.WithHTTPClient(httpClient),
		api.WithLogger(zl),
		api.WithOnAuthFailure(func() {
			fmt.Fprintf(os.Stderr, "La sesión expiró o fue rechazada. Vuelve a iniciar sesión (%s).\n", navigation.PathLogin)
		}),
	)
	a.services = api.NewServices(client)
	return a
}

// navigate resuelve path con la guarda y falla si la sesión no llega a want.
func (a *app) navigate(path string, want navigation.View) (navigation.Decision, error) {
	d := a.guard.Resolve(path, a.session)
	if d.IsRedirect() {
		if d.Redirect == navigation.PathLogin {
			return d, fmt.Errorf("%s requiere sesión: ejecuta 'comedor login'", path)
		}
		return d, fmt.Errorf("%s no está disponible para tu rol (redirige a %s)", path, d.Redirect)
	}
	if want != "" && d.View != want {
		return d, fmt.Errorf("%s no está disponible para tu rol", path)
	}
	return d, nil
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

func usage(flags *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "uso: comedor [flags] <comando> [argumentos]")
	fmt.Fprintln(os.Stderr, "\ncomandos:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-13s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(os.Stderr, "\nflags:")
	fmt.Fprint(os.Stderr, strings.TrimRight(flags.FlagUsages(), "\n")+"\n")
}
