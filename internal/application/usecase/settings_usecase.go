package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/comedor/internal/domain"
	"github.com/jhoicas/comedor/internal/domain/repository"
)

// SettingsUseCase hora de corte de pedidos.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// CutoffTime hora de corte vigente (HH:MM).
func (uc *SettingsUseCase) CutoffTime(ctx context.Context) (string, error) {
	return uc.repo.CutoffTime(ctx)
}

// SetCutoffTime valida el formato HH:MM y guarda.
func (uc *SettingsUseCase) SetCutoffTime(ctx context.Context, hhmm string) error {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return domain.ErrInvalidInput
	}
	return uc.repo.SetCutoffTime(ctx, t.Format("15:04"))
}
