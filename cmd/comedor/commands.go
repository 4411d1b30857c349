package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/comedor/internal/application/analytics"
	"github.com/jhoicas/comedor/internal/application/navigation"
	"github.com/jhoicas/comedor/internal/application/session"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/infrastructure/pdf"
	pkgjwt "github.com/jhoicas/comedor/pkg/jwt"
)

var commands = map[string]command{
	"login":        {"inicia sesión: login <correo> [--password]", cmdLogin},
	"logout":       {"cierra la sesión local", cmdLogout},
	"whoami":       {"muestra el usuario de la sesión", cmdWhoami},
	"register":     {"solicita una cuenta (queda pendiente de aprobación)", cmdRegister},
	"menu":         {"lista los platos del día", cmdMenu},
	"dish":         {"crea o edita platos: dish create|update <id>", cmdDish},
	"orders":       {"lista pedidos (los propios si no eres personal)", cmdOrders},
	"order":        {"pide un plato o cambia el estado: order create <plato>|state <id> <estado>", cmdOrder},
	"users":        {"lista los usuarios registrados", cmdUsers},
	"user":         {"activa o desactiva un usuario: user state <id> <Activo|Inactivo>", cmdUser},
	"avatar":       {"foto de perfil: avatar upload <archivo>|get <usuario> --out <archivo>", cmdAvatar},
	"companies":    {"lista las empresas", cmdCompanies},
	"headquarters": {"lista las sedes", cmdHeadquarters},
	"cutoff":       {"consulta o cambia la hora de corte: cutoff [HH:MM]", cmdCutoff},
	"pending":      {"registros pendientes: pending [approve|reject <id>]", cmdPending},
	"dashboard":    {"indicadores del comedor", cmdDashboard},
	"report":       {"genera el reporte PDF de órdenes: report --out <archivo>", cmdReport},
}

func newFlags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

func table(out io.Writer, header string, rows func(w io.Writer)) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	password := fs.String("password", os.Getenv("COMEDOR_PASSWORD"), "contraseña (por defecto se lee de stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("uso: comedor login <correo>")
	}
	if *password == "" {
		fmt.Fprint(os.Stderr, "Contraseña: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	if err := a.session.Login(ctx, fs.Arg(0), *password); err != nil {
		return err
	}
	user, _ := a.session.CurrentUser()
	fmt.Fprintf(a.out, "Sesión iniciada como %s (%s). Inicio: %s\n", user.Email, user.Role, navigation.Home(user.Role))
	return nil
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	a.session.Logout()
	fmt.Fprintln(a.out, "Sesión cerrada.")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	user, ok := a.session.CurrentUser()
	if !ok {
		return errors.New("no hay sesión activa")
	}
	fmt.Fprintf(a.out, "usuario: %s\nid:      %d\nrol:     %s (%s)\n", user.Email, user.ID, user.Role, user.Role.Authority())
	if exp, ok := pkgjwt.Expiry(user.Token); ok {
		fmt.Fprintf(a.out, "expira:  %s\n", exp.Local().Format(time.DateTime))
	}
	where := "solo en memoria"
	if fs, ok := a.storage.(*session.FileStorage); ok {
		where = fs.Path()
	}
	fmt.Fprintf(a.out, "sesión:  %s (generación %d)\n", where, a.session.Generation())
	if a.store.Degraded() {
		fmt.Fprintln(os.Stderr, "aviso: la sesión no se pudo persistir, se perderá al salir")
	}
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	if _, err := a.navigate(navigation.PathRegister, navigation.ViewRegister); err != nil {
		return errors.New("ya hay una sesión activa: cierra sesión para registrar otra cuenta")
	}
	fs := newFlags("register")
	var u entity.TempUser
	fs.StringVar(&u.FullName, "name", "", "nombre completo")
	fs.StringVar(&u.Mail, "mail", "", "correo")
	fs.StringVar(&u.Password, "password", "", "contraseña")
	fs.StringVar(&u.NumberIdentification, "document", "", "número de identificación")
	fs.StringVar(&u.NumberPhone, "phone", "", "teléfono")
	fs.Int64Var(&u.Company.ID, "company", 0, "id de la empresa")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if u.FullName == "" || u.Mail == "" || u.Password == "" {
		return errors.New("--name, --mail y --password son obligatorios")
	}
	if _, err := a.auth.Register(ctx, u); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registro enviado. Un administrador debe aprobarlo antes de iniciar sesión.")
	return nil
}

func cmdMenu(ctx context.Context, a *app, _ []string) error {
	if _, err := a.navigate(navigation.PathMenu, navigation.ViewMenu); err != nil {
		return err
	}
	dishes, err := a.services.Dishes.List(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "ID\tPLATO\tPRECIO\tDISPONIBLES\tESTADO", func(w io.Writer) {
		for _, d := range dishes {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", d.ID, d.Name, d.Price.StringFixed(2), d.Amount, d.State)
		}
	})
}

func cmdDish(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: comedor dish create|update <id> [flags]")
	}
	fs := newFlags("dish")
	name := fs.String("name", "", "nombre")
	description := fs.String("description", "", "descripción")
	price := fs.String("price", "", "precio, ej. 12.50")
	amount := fs.Int("amount", -1, "unidades disponibles")
	state := fs.String("state", "", "estado (Disponible, Agotado)")

	switch args[0] {
	case "create":
		if _, err := a.navigate(navigation.PathMenuNew, navigation.ViewDishEditor); err != nil {
			return err
		}
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		p, err := entity.ParsePrice(*price)
		if err != nil {
			return err
		}
		dish := entity.Dish{Name: *name, Description: *description, Price: p, State: *state, Amount: max(*amount, 0)}
		created, err := a.services.Dishes.Create(ctx, dish)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Plato %d creado.\n", created.ID)
		return nil
	case "update":
		if len(args) < 2 {
			return errors.New("uso: comedor dish update <id> [flags]")
		}
		d, err := a.navigate(navigation.PathMenuEdit+args[1], navigation.ViewDishEditor)
		if err != nil {
			return err
		}
		id, err := parseID(d.Params["id"])
		if err != nil {
			return err
		}
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		dish, err := findDish(ctx, a, id)
		if err != nil {
			return err
		}
		if fs.Changed("name") {
			dish.Name = *name
		}
		if fs.Changed("description") {
			dish.Description = *description
		}
		if fs.Changed("price") {
			if dish.Price, err = entity.ParsePrice(*price); err != nil {
				return err
			}
		}
		if fs.Changed("amount") {
			dish.Amount = *amount
		}
		if fs.Changed("state") {
			dish.State = *state
		}
		if _, err := a.services.Dishes.Update(ctx, id, dish); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Plato %d actualizado.\n", id)
		return nil
	default:
		return fmt.Errorf("subcomando desconocido %q", args[0])
	}
}

func findDish(ctx context.Context, a *app, id int64) (entity.Dish, error) {
	dishes, err := a.services.Dishes.List(ctx)
	if err != nil {
		return entity.Dish{}, err
	}
	for _, d := range dishes {
		if d.ID == id {
			return d, nil
		}
	}
	return entity.Dish{}, fmt.Errorf("no existe el plato %d", id)
}

// listOrders devuelve todas las órdenes para el personal y las propias para el resto.
func listOrders(ctx context.Context, a *app, d navigation.Decision) ([]entity.Order, error) {
	if d.View == navigation.ViewUserOrders {
		user, _ := a.session.CurrentUser()
		return a.services.Orders.ListByUser(ctx, user.ID)
	}
	return a.services.Orders.List(ctx)
}

func cmdOrders(ctx context.Context, a *app, args []string) error {
	fs := newFlags("orders")
	state := fs.String("state", "", "filtra por estado (Pendiente, Entregado, Cancelado)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := a.navigate(navigation.PathOrders, "")
	if err != nil {
		return err
	}
	orders, err := listOrders(ctx, a, d)
	if err != nil {
		return err
	}
	if *state != "" {
		want, ok := entity.ParseOrderStatus(*state)
		if !ok {
			return fmt.Errorf("estado desconocido %q", *state)
		}
		orders = filterOrders(orders, want)
	}
	return table(a.out, "ID\tFECHA\tUSUARIO\tPLATO\tSEDE\tESTADO", func(w io.Writer) {
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.FechaPedido, o.User.FullName, o.Dish.Name, o.Headquarter.Name, o.State)
		}
	})
}

func filterOrders(orders []entity.Order, state entity.OrderStatus) []entity.Order {
	out := orders[:0:0]
	for _, o := range orders {
		if o.State == state {
			out = append(out, o)
		}
	}
	return out
}

func cmdOrder(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: comedor order create <plato> | state <id> <estado>")
	}
	switch args[0] {
	case "create":
		if _, err := a.navigate(navigation.PathMenu, navigation.ViewMenu); err != nil {
			return err
		}
		fs := newFlags("order")
		hq := fs.Int64("headquarter", 0, "id de la sede de entrega")
		obs := fs.String("observation", "", "observación para cocina")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: comedor order create <plato> --headquarter <id>")
		}
		dishID, err := parseID(fs.Arg(0))
		if err != nil {
			return err
		}
		user, _ := a.session.CurrentUser()
		created, err := a.services.Orders.Create(ctx, entity.NewOrder{
			User:        entity.IDRef{ID: user.ID},
			Dish:        entity.IDRef{ID: dishID},
			Headquarter: entity.IDRef{ID: *hq},
			State:       entity.OrderPending,
			Observation: *obs,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Pedido %d registrado (%s).\n", created.ID, created.State)
		return nil
	case "state":
		if len(args) != 3 {
			return errors.New("uso: comedor order state <id> <estado>")
		}
		if _, err := a.navigate(navigation.PathOrders, navigation.ViewOrders); err != nil {
			return err
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		state, ok := entity.ParseOrderStatus(args[2])
		if !ok {
			return fmt.Errorf("estado desconocido %q", args[2])
		}
		updated, err := a.services.Orders.UpdateState(ctx, id, state)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Pedido %d: %s\n", updated.ID, updated.State)
		return nil
	default:
		return fmt.Errorf("subcomando desconocido %q", args[0])
	}
}

func cmdUsers(ctx context.Context, a *app, _ []string) error {
	if _, err := a.navigate(navigation.PathUsers, navigation.ViewUsers); err != nil {
		return err
	}
	users, err := a.services.Customers.List(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "ID\tNOMBRE\tCORREO\tROL\tESTADO", func(w io.Writer) {
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Mail, u.Role, u.State)
		}
	})
}

func cmdUser(ctx context.Context, a *app, args []string) error {
	if len(args) != 3 || args[0] != "state" {
		return errors.New("uso: comedor user state <id> <Activo|Inactivo>")
	}
	if _, err := a.navigate(navigation.PathUsers, navigation.ViewUsers); err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	state := entity.EntityState(args[2])
	if state != entity.StateActive && state != entity.StateInactive {
		return fmt.Errorf("estado desconocido %q", args[2])
	}
	if _, err := a.services.Customers.UpdateState(ctx, id, state); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Usuario %d: %s\n", id, state)
	return nil
}

func cmdAvatar(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: comedor avatar upload <archivo> | get <usuario> --out <archivo>")
	}
	if _, err := a.navigate(navigation.PathProfile, navigation.ViewProfile); err != nil {
		return err
	}
	me, _ := a.session.CurrentUser()
	fs := newFlags("avatar")
	userID := fs.Int64("user", me.ID, "usuario (solo administradores pueden cambiar otro)")
	outFile := fs.String("out", "", "archivo destino")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "upload":
		if fs.NArg() != 1 {
			return errors.New("uso: comedor avatar upload <archivo>")
		}
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		if err := a.services.Avatars.Upload(ctx, *userID, filepath.Base(f.Name()), f); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Foto de perfil actualizada.")
		return nil
	case "get":
		if fs.NArg() == 1 {
			id, err := parseID(fs.Arg(0))
			if err != nil {
				return err
			}
			*userID = id
		}
		if *outFile == "" {
			return errors.New("--out es obligatorio")
		}
		blob, err := a.services.Avatars.Fetch(ctx, *userID)
		if err != nil {
			return err
		}
		defer blob.Close()
		f, err := os.Create(*outFile)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, blob.Body); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Guardado %s (%s).\n", *outFile, blob.ContentType)
		return nil
	default:
		return fmt.Errorf("subcomando desconocido %q", args[0])
	}
}

func cmdCompanies(ctx context.Context, a *app, _ []string) error {
	if _, err := a.navigate(navigation.PathCompanies, navigation.ViewCompanies); err != nil {
		return err
	}
	companies, err := a.services.Companies.List(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "ID\tEMPRESA\tESTADO", func(w io.Writer) {
		for _, c := range companies {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.State)
		}
	})
}

func cmdHeadquarters(ctx context.Context, a *app, _ []string) error {
	if _, err := a.navigate(navigation.PathHeadquarters, navigation.ViewHeadquarters); err != nil {
		return err
	}
	hqs, err := a.services.Headquarters.List(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "ID\tSEDE\tESTADO", func(w io.Writer) {
		for _, h := range hqs {
			fmt.Fprintf(w, "%d\t%s\t%s\n", h.ID, h.Name, h.State)
		}
	})
}

func cmdCutoff(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		// El menú muestra la hora de corte a cualquier usuario con sesión
		if _, err := a.navigate(navigation.PathMenu, navigation.ViewMenu); err != nil {
			return err
		}
		cutoff, err := a.services.Settings.CutoffTime(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Hora de corte: %s\n", cutoff)
		return nil
	}
	if _, err := a.navigate(navigation.PathSettings, navigation.ViewSettings); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", args[0]); err != nil {
		return fmt.Errorf("hora inválida %q, formato HH:MM", args[0])
	}
	if err := a.services.Settings.UpdateCutoffTime(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Hora de corte actualizada a %s.\n", args[0])
	return nil
}

func cmdPending(ctx context.Context, a *app, args []string) error {
	if _, err := a.navigate(navigation.PathPendingUsers, navigation.ViewPendingUsers); err != nil {
		return err
	}
	if len(args) == 0 {
		pending, err := a.services.TempUsers.List(ctx)
		if err != nil {
			return err
		}
		return table(a.out, "ID\tNOMBRE\tCORREO\tDOCUMENTO\tESTADO", func(w io.Writer) {
			for _, p := range pending {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.FullName, p.Mail, p.NumberIdentification, p.State)
			}
		})
	}
	if len(args) != 2 {
		return errors.New("uso: comedor pending [approve|reject <id>]")
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	switch args[0] {
	case "approve":
		pending, err := a.services.TempUsers.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range pending {
			if p.ID == id {
				if err := a.services.TempUsers.Approve(ctx, p); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Usuario %s aprobado.\n", p.Mail)
				return nil
			}
		}
		return fmt.Errorf("no existe el registro pendiente %d", id)
	case "reject":
		if err := a.services.TempUsers.Reject(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Registro %d rechazado.\n", id)
		return nil
	default:
		return fmt.Errorf("subcomando desconocido %q", args[0])
	}
}

func cmdDashboard(ctx context.Context, a *app, _ []string) error {
	if _, err := a.navigate(navigation.PathDashboard, navigation.ViewDashboard); err != nil {
		return err
	}
	uc := analytics.NewDashboardUseCase(a.services.Orders, a.services.Customers, a.services.Dishes)
	s, err := uc.GetSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n\n", s.DateLabel)
	fmt.Fprintf(a.out, "Ventas:            %s (%d entregadas, ticket promedio %s)\n", s.TotalSales.StringFixed(2), s.DeliveredCount, s.AverageTicket.StringFixed(2))
	fmt.Fprintf(a.out, "Órdenes:           %d total, %d hoy, %d pendientes, %d canceladas\n", s.TotalOrders, s.OrdersToday, s.PendingOrders, s.CancelledOrders)
	fmt.Fprintf(a.out, "Usuarios activos:  %d\n", s.ActiveUsers)
	fmt.Fprintf(a.out, "Platos disponibles: %d\n\n", s.AvailableDishes)
	return table(a.out, "PLATO\tÓRDENES\tINGRESOS", func(w io.Writer) {
		for _, d := range s.TopDishes {
			fmt.Fprintf(w, "%s\t%d\t%s\n", d.Name, d.Orders, d.Revenue.StringFixed(2))
		}
	})
}

func cmdReport(ctx context.Context, a *app, args []string) error {
	d, err := a.navigate(navigation.PathOrdersReport, navigation.ViewOrdersReport)
	if err != nil {
		return err
	}
	fs := newFlags("report")
	outFile := fs.String("out", "reporte-ordenes.pdf", "archivo PDF destino")
	state := fs.String("state", "", "filtra por estado")
	if err := fs.Parse(args); err != nil {
		return err
	}
	orders, err := listOrders(ctx, a, d)
	if err != nil {
		return err
	}
	subtitle := "Todas las órdenes"
	if *state != "" {
		want, ok := entity.ParseOrderStatus(*state)
		if !ok {
			return fmt.Errorf("estado desconocido %q", *state)
		}
		orders = filterOrders(orders, want)
		subtitle = "Estado: " + string(want)
	}
	user, _ := a.session.CurrentUser()
	raw, err := pdf.NewMarotoPDFGenerator().GenerateOrdersPDF(ctx, pdf.OrdersReport{
		Title:       "Reporte de órdenes",
		Subtitle:    subtitle,
		GeneratedBy: user.Email,
		GeneratedAt: time.Now(),
		Orders:      orders,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outFile, raw, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reporte con %d órdenes guardado en %s.\n", len(orders), *outFile)
	return nil
}
