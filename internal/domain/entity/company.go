package entity

// EntityState estado de empresas, sedes y usuarios en el backend.
type EntityState string

const (
	StateActive   EntityState = "Activo"
	StateInactive EntityState = "Inactivo"
)

// Company empresa cliente del comedor.
type Company struct {
	ID    int64       `json:"id,omitempty" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	State EntityState `json:"state" yaml:"state"`
}

// Headquarter sede donde se entregan los pedidos.
type Headquarter struct {
	ID    int64       `json:"id,omitempty" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	State EntityState `json:"state" yaml:"state"`
}

// CompanyRef referencia embebida en usuarios y registros temporales.
type CompanyRef struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name"`
}
