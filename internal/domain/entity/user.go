package entity

// UserRecord usuario de la sesión local, tal como se persiste bajo la clave "user".
type UserRecord struct {
	Email string `json:"email"`
	ID    int64  `json:"id"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

// Customer usuario registrado en el backend (vista de administración).
// Role viaja en el vocabulario del backend (Administrador, Cajero, Usuario).
type Customer struct {
	ID                   int64       `json:"id,omitempty" yaml:"id"`
	FullName             string      `json:"fullName" yaml:"fullName"`
	NumberIdentification int64       `json:"numberIdentification" yaml:"numberIdentification"`
	State                EntityState `json:"state" yaml:"state"`
	Mail                 string      `json:"mail" yaml:"mail"`
	Role                 string      `json:"role" yaml:"role"`
	NumberPhone          string      `json:"numberPhone,omitempty" yaml:"numberPhone"`
	Password             string      `json:"password,omitempty" yaml:"password"`
	Company              CompanyRef  `json:"company" yaml:"company"`
}

// InternalRole rol interno equivalente al role del backend.
func (c Customer) InternalRole() Role {
	return RoleFromAuthority(c.Role)
}
