package entity

// TempUser registro pendiente de aprobación (auto-registro).
type TempUser struct {
	ID                   int64      `json:"id,omitempty" yaml:"id"`
	FullName             string     `json:"fullName" yaml:"fullName"`
	NumberIdentification string     `json:"numberIdentification" yaml:"numberIdentification"`
	State                string     `json:"state,omitempty" yaml:"state"`
	Mail                 string     `json:"mail" yaml:"mail"`
	Password             string     `json:"password,omitempty" yaml:"password"`
	NumberPhone          string     `json:"numberPhone" yaml:"numberPhone"`
	Role                 string     `json:"role" yaml:"role"`
	Company              CompanyRef `json:"company" yaml:"company"`
}

// UserRegistration cuerpo de /auth/registerUser al aprobar un registro pendiente.
type UserRegistration struct {
	FullName             string `json:"fullName"`
	NumberIdentification string `json:"numberIdentification"`
	Mail                 string `json:"mail"`
	Password             string `json:"password"`
	PhoneNumber          string `json:"phoneNumber"`
	Role                 string `json:"role"`
	State                string `json:"state"`
}

// Registration convierte el registro pendiente en el alta definitiva (estado Activo).
func (t TempUser) Registration() UserRegistration {
	role := t.Role
	if role == "" {
		role = AuthorityUser
	}
	return UserRegistration{
		FullName:             t.FullName,
		NumberIdentification: t.NumberIdentification,
		Mail:                 t.Mail,
		Password:             t.Password,
		PhoneNumber:          t.NumberPhone,
		Role:                 role,
		State:                string(StateActive),
	}
}
