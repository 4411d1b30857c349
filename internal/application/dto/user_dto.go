package dto

import "github.com/jhoicas/comedor/internal/domain/entity"

// UserUpdateRequest cambios parciales de un usuario (campos opcionales).
// PUT /User/updateUser/:id
type UserUpdateRequest struct {
	FullName    *string             `json:"fullName,omitempty"`
	State       *entity.EntityState `json:"state,omitempty"`
	Mail        *string             `json:"mail,omitempty"`
	Role        *string             `json:"role,omitempty"`
	NumberPhone *string             `json:"numberPhone,omitempty"`
}

// Apply copia sobre u los campos informados.
func (r UserUpdateRequest) Apply(u *entity.Customer) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.State != nil {
		u.State = *r.State
	}
	if r.Mail != nil {
		u.Mail = *r.Mail
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
	if r.NumberPhone != nil {
		u.NumberPhone = *r.NumberPhone
	}
}
