// Package usecase contiene las reglas de negocio del backend de desarrollo.
package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comedor/internal/application/dto"
	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/entity"
	"github.com/jhoicas/comedor/internal/domain/repository"
	"github.com/jhoicas/comedor/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación y alta definitiva de usuarios.
type AuthUseCase struct {
	users      repository.UserRepository
	jwtCfg     JWTConfig
	bcryptCost int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo de hash (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.bcryptCost = cost
	return uc
}

// Authenticate verifica correo y contraseña y emite el token.
// Credenciales inválidas → ErrUnauthorized; cuenta inactiva → ErrForbidden.
func (uc *AuthUseCase) Authenticate(ctx context.Context, in dto.AuthenticateRequest) (*dto.AuthenticateResponse, error) {
	if strings.TrimSpace(in.User) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, hash, err := uc.users.GetByMail(ctx, strings.TrimSpace(in.User))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.State != entity.StateActive {
		return nil, domain.ErrForbidden
	}
	authorities := []string{user.Role}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Mail, authorities, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthenticateResponse{Token: token, Authorities: authorities, ID: user.ID}, nil
}

// RegisterUser crea un usuario definitivo: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrConflict si el correo ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in entity.UserRegistration) (*entity.Customer, error) {
	if strings.TrimSpace(in.Mail) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.AuthorityUser
	}
	state := entity.EntityState(in.State)
	if state == "" {
		state = entity.StateActive
	}
	docNumber, _ := strconv.ParseInt(strings.TrimSpace(in.NumberIdentification), 10, 64)
	user := &entity.Customer{
		FullName:             in.FullName,
		NumberIdentification: docNumber,
		Mail:                 strings.TrimSpace(in.Mail),
		Role:                 role,
		State:                state,
		NumberPhone:          in.PhoneNumber,
	}
	if err := uc.users.Create(ctx, user, hash); err != nil {
		return nil, err
	}
	return user, nil
}

// HashPassword hash bcrypt con el costo configurado.
func (uc *AuthUseCase) HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
}
