package memory

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/comedor/internal/domain/entity"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed datos iniciales del backend de desarrollo (formato YAML).
// Las contraseñas vienen en claro y se guardan con bcrypt.
type Seed struct {
	CutoffTime   string               `yaml:"cutoffTime"`
	Companies    []entity.Company     `yaml:"companies"`
	Headquarters []entity.Headquarter `yaml:"headquarters"`
	Users        []entity.Customer    `yaml:"users"`
	Dishes       []seedDish           `yaml:"dishes"`
	TempUsers    []entity.TempUser    `yaml:"tempUsers"`
}

type seedDish struct {
	entity.Dish `yaml:",inline"`
	Price       string `yaml:"price"`
}

// DefaultSeed devuelve los datos embebidos.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(bytes.NewReader(defaultSeed))
}

// ParseSeed decodifica un seed YAML.
func ParseSeed(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("seed: decodificar YAML: %w", err)
	}
	return &s, nil
}

// Apply carga el seed en db. cost es el costo bcrypt (bcrypt.DefaultCost si es 0).
func (s *Seed) Apply(ctx context.Context, db *DB, cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if s.CutoffTime != "" {
		if err := db.Settings.SetCutoffTime(ctx, s.CutoffTime); err != nil {
			return err
		}
	}
	for i := range s.Companies {
		if err := db.Companies.Create(ctx, &s.Companies[i]); err != nil {
			return fmt.Errorf("seed: empresa %q: %w", s.Companies[i].Name, err)
		}
	}
	for i := range s.Headquarters {
		if err := db.Headquarters.Create(ctx, &s.Headquarters[i]); err != nil {
			return fmt.Errorf("seed: sede %q: %w", s.Headquarters[i].Name, err)
		}
	}
	for i := range s.Users {
		u := s.Users[i]
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return fmt.Errorf("seed: hash de %s: %w", u.Mail, err)
		}
		if u.State == "" {
			u.State = entity.StateActive
		}
		if err := db.Users.Create(ctx, &u, hash); err != nil {
			return fmt.Errorf("seed: usuario %s: %w", u.Mail, err)
		}
	}
	for _, d := range s.Dishes {
		price, err := entity.ParsePrice(d.Price)
		if err != nil {
			return fmt.Errorf("seed: plato %q: %w", d.Name, err)
		}
		dish := d.Dish
		dish.Price = price
		if dish.State == "" {
			dish.State = entity.DishAvailable
		}
		if err := db.Dishes.Create(ctx, &dish); err != nil {
			return fmt.Errorf("seed: plato %q: %w", d.Name, err)
		}
	}
	for i := range s.TempUsers {
		if err := db.TempUsers.Create(ctx, &s.TempUsers[i]); err != nil {
			return fmt.Errorf("seed: registro pendiente %s: %w", s.TempUsers[i].Mail, err)
		}
	}
	return nil
}
