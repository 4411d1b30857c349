// Package memory implementa los repositorios del backend de desarrollo en memoria.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.TempUserRepository    = (*TempUserRepo)(nil)
	_ repository.AvatarRepository      = (*AvatarRepo)(nil)
	_ repository.DishRepository        = (*DishRepo)(nil)
	_ repository.OrderRepository       = (*OrderRepo)(nil)
	_ repository.CompanyRepository     = (*CompanyRepo)(nil)
	_ repository.HeadquarterRepository = (*HeadquarterRepo)(nil)
	_ repository.SettingsRepository    = (*SettingsRepo)(nil)
)

// DB agrupa todos los repositorios en memoria.
type DB struct {
	Users        *UserRepo
	TempUsers    *TempUserRepo
	Avatars      *AvatarRepo
	Dishes       *DishRepo
	Orders       *OrderRepo
	Companies    *CompanyRepo
	Headquarters *HeadquarterRepo
	Settings     *SettingsRepo
}

// DefaultCutoffTime hora de corte inicial.
const DefaultCutoffTime = "10:00"

// NewDB crea una base vacía.
func NewDB() *DB {
	return &DB{
		Users:        &UserRepo{t: newTable(func(r *userRow) *int64 { return &r.user.ID })},
		TempUsers:    &TempUserRepo{t: newTable(func(u *entity.TempUser) *int64 { return &u.ID })},
		Avatars:      &AvatarRepo{blobs: map[int64]avatar{}},
		Dishes:       &DishRepo{t: newTable(func(d *entity.Dish) *int64 { return &d.ID })},
		Orders:       &OrderRepo{t: newTable(func(o *entity.Order) *int64 { return &o.ID })},
		Companies:    &CompanyRepo{t: newTable(func(c *entity.Company) *int64 { return &c.ID })},
		Headquarters: &HeadquarterRepo{t: newTable(func(h *entity.Headquarter) *int64 { return &h.ID })},
		Settings:     &SettingsRepo{cutoff: DefaultCutoffTime},
	}
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type userRow struct {
	user entity.Customer
	hash []byte
}

// UserRepo usuarios registrados. El correo es único sin distinguir mayúsculas.
type UserRepo struct {
	mu sync.Mutex // serializa el chequeo de correo único con la inserción
	t  *table[userRow]
}

func (r *UserRepo) Create(_ context.Context, user *entity.Customer, passwordHash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byMail(user.Mail); exists {
		return domain.ErrConflict
	}
	row := userRow{user: *user, hash: passwordHash}
	row.user.Password = ""
	if err := r.t.insert(&row); err != nil {
		return err
	}
	user.ID = row.user.ID
	user.Password = ""
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	row, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &row.user, nil
}

func (r *UserRepo) GetByMail(_ context.Context, mail string) (*entity.Customer, []byte, error) {
	row, ok := r.byMail(mail)
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	return &row.user, row.hash, nil
}

func (r *UserRepo) byMail(mail string) (userRow, bool) {
	return r.t.find(func(row userRow) bool { return strings.EqualFold(row.user.Mail, mail) })
}

// Update reemplaza los datos del usuario conservando su hash.
func (r *UserRepo) Update(_ context.Context, user *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := r.t.get(user.ID)
	if err != nil {
		return err
	}
	if other, exists := r.byMail(user.Mail); exists && other.user.ID != user.ID {
		return domain.ErrConflict
	}
	current.user = *user
	current.user.Password = ""
	return r.t.update(&current)
}

func (r *UserRepo) List(_ context.Context) ([]entity.Customer, error) {
	rows := r.t.list(nil)
	out := make([]entity.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.user)
	}
	return out, nil
}

// ── Registros pendientes ──────────────────────────────────────────────────────

// TempUserRepo cola de auto-registros.
type TempUserRepo struct {
	mu sync.Mutex
	t  *table[entity.TempUser]
}

func (r *TempUserRepo) Create(_ context.Context, user *entity.TempUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.t.find(func(u entity.TempUser) bool { return strings.EqualFold(u.Mail, user.Mail) }); dup {
		return domain.ErrConflict
	}
	return r.t.insert(user)
}

func (r *TempUserRepo) List(_ context.Context) ([]entity.TempUser, error) {
	return r.t.list(nil), nil
}

func (r *TempUserRepo) Delete(_ context.Context, id int64) error {
	return r.t.delete(id)
}

// ── Avatares ──────────────────────────────────────────────────────────────────

type avatar struct {
	contentType string
	data        []byte
}

// AvatarRepo imágenes de perfil.
type AvatarRepo struct {
	mu    sync.RWMutex
	blobs map[int64]avatar
}

func (r *AvatarRepo) Put(_ context.Context, userID int64, contentType string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[userID] = avatar{contentType: contentType, data: append([]byte(nil), data...)}
	return nil
}

func (r *AvatarRepo) Get(_ context.Context, userID int64) (string, []byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.blobs[userID]
	if !ok {
		return "", nil, domain.ErrNotFound
	}
	return a.contentType, a.data, nil
}

// ── Platos ────────────────────────────────────────────────────────────────────

// DishRepo platos del menú.
type DishRepo struct {
	t *table[entity.Dish]
}

func (r *DishRepo) Create(_ context.Context, dish *entity.Dish) error { return r.t.insert(dish) }

func (r *DishRepo) GetByID(_ context.Context, id int64) (*entity.Dish, error) {
	d, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DishRepo) Update(_ context.Context, dish *entity.Dish) error { return r.t.update(dish) }

func (r *DishRepo) List(_ context.Context) ([]entity.Dish, error) { return r.t.list(nil), nil }

// ── Pedidos ───────────────────────────────────────────────────────────────────

// OrderRepo pedidos.
type OrderRepo struct {
	t *table[entity.Order]
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error { return r.t.insert(order) }

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	o, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error { return r.t.update(order) }

func (r *OrderRepo) List(_ context.Context) ([]entity.Order, error) { return r.t.list(nil), nil }

func (r *OrderRepo) ListByUser(_ context.Context, userID int64) ([]entity.Order, error) {
	return r.t.list(func(o entity.Order) bool { return o.User.ID == userID }), nil
}

// ── Empresas y sedes ──────────────────────────────────────────────────────────

// CompanyRepo empresas.
type CompanyRepo struct {
	t *table[entity.Company]
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error { return r.t.insert(c) }

func (r *CompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	c, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error { return r.t.update(c) }

func (r *CompanyRepo) List(_ context.Context) ([]entity.Company, error) { return r.t.list(nil), nil }

func (r *CompanyRepo) Delete(_ context.Context, id int64) error { return r.t.delete(id) }

// HeadquarterRepo sedes.
type HeadquarterRepo struct {
	t *table[entity.Headquarter]
}

func (r *HeadquarterRepo) Create(_ context.Context, h *entity.Headquarter) error {
	return r.t.insert(h)
}

func (r *HeadquarterRepo) GetByID(_ context.Context, id int64) (*entity.Headquarter, error) {
	h, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HeadquarterRepo) Update(_ context.Context, h *entity.Headquarter) error {
	return r.t.update(h)
}

func (r *HeadquarterRepo) List(_ context.Context) ([]entity.Headquarter, error) {
	return r.t.list(nil), nil
}

func (r *HeadquarterRepo) Delete(_ context.Context, id int64) error { return r.t.delete(id) }

// ── Parámetros ────────────────────────────────────────────────────────────────

// SettingsRepo hora de corte.
type SettingsRepo struct {
	mu     sync.RWMutex
	cutoff string
}

func (r *SettingsRepo) CutoffTime(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cutoff, nil
}

func (r *SettingsRepo) SetCutoffTime(_ context.Context, hhmm string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoff = hhmm
	return nil
}
