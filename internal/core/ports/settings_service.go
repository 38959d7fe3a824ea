package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// SettingsService manages site settings and administrator accounts. Every
// operation requires the admin role.
type SettingsService interface {
	Settings(ctx context.Context, sess domain.Session) ([]domain.SiteSetting, error)
	UpdateSetting(ctx context.Context, sess domain.Session, key, value string) error
	AdminUsers(ctx context.Context, sess domain.Session) ([]domain.Identity, error)
	SetAdminActive(ctx context.Context, sess domain.Session, id string, active bool) error
}
