package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

// SettingsService manages site settings and administrator accounts.
type SettingsService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
	now     func() time.Time
}

func NewSettingsService(gateway ports.Gateway, logger zerolog.Logger) *SettingsService {
	return &SettingsService{gateway: gateway, logger: logger, now: time.Now}
}

func (s *SettingsService) Settings(ctx context.Context, sess domain.Session) ([]domain.SiteSetting, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionSiteSettings, ports.Query{
		OrderBy: []ports.Order{{Column: "setting_key"}},
	})
	if err != nil {
		return nil, err
	}

	settings := make([]domain.SiteSetting, 0, len(rows))
	for _, r := range rows {
		settings = append(settings, domain.SiteSettingFromRow(r))
	}
	return settings, nil
}

// UpdateSetting writes a setting value, stamping who changed it and when.
func (s *SettingsService) UpdateSetting(ctx context.Context, sess domain.Session, key, value string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}

	return s.gateway.Update(ctx, domain.CollectionSiteSettings,
		[]ports.Filter{ports.Eq("setting_key", key)},
		domain.Row{
			"setting_value": value,
			"updated_by":    sess.UserID(),
			"updated_at":    s.now().UTC(),
		})
}

func (s *SettingsService) AdminUsers(ctx context.Context, sess domain.Session) ([]domain.Identity, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionAdminUsers, ports.Query{
		OrderBy: []ports.Order{{Column: "created_at"}},
	})
	if err != nil {
		return nil, err
	}

	admins := make([]domain.Identity, 0, len(rows))
	for _, r := range rows {
		admins = append(admins, domain.IdentityFromRow(r, domain.RoleAdmin))
	}
	return admins, nil
}

// SetAdminActive toggles another administrator account. An admin cannot
// deactivate their own account.
func (s *SettingsService) SetAdminActive(ctx context.Context, sess domain.Session, id string, active bool) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if id == sess.UserID() && !active {
		return domain.ErrUnauthorized
	}

	return s.gateway.Update(ctx, domain.CollectionAdminUsers,
		[]ports.Filter{ports.Eq("id", id)},
		domain.Row{"is_active": active})
}

func requireAdmin(sess domain.Session) error {
	if sess.IsAnonymous() || sess.Role != domain.RoleAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}
