package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type InventoryService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
}

func NewInventoryService(gateway ports.Gateway, logger zerolog.Logger) *InventoryService {
	return &InventoryService{gateway: gateway, logger: logger}
}

// List returns stock ordered by item name. Pharmacists only see the
// Medication category; admin sees the full inventory.
func (s *InventoryService) List(ctx context.Context, sess domain.Session) ([]domain.InventoryItem, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	var filters []ports.Filter
	if sess.Role == domain.RolePharmacist {
		filters = append(filters, ports.Eq("category", "Medication"))
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionInventory, ports.Query{
		Filters: filters,
		OrderBy: []ports.Order{{Column: "item_name"}},
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.InventoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.InventoryItemFromRow(r))
	}
	return items, nil
}

// Save creates the item when its ID is empty, otherwise updates it in place.
func (s *InventoryService) Save(ctx context.Context, sess domain.Session, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if sess.IsAnonymous() || (sess.Role != domain.RoleAdmin && sess.Role != domain.RolePharmacist) {
		return nil, domain.ErrUnauthorized
	}

	patch := domain.Row{
		"item_name":  item.ItemName,
		"category":   item.Category,
		"quantity":   item.Quantity,
		"unit_price": item.UnitPrice,
	}

	if item.ID == "" {
		row, err := s.gateway.Insert(ctx, domain.CollectionInventory, patch)
		if err != nil {
			return nil, err
		}
		created := domain.InventoryItemFromRow(row)
		s.logger.Info().Str("inventory_id", created.ID).Str("item", created.ItemName).Msg("inventory item created")
		return &created, nil
	}

	if err := s.gateway.Update(ctx, domain.CollectionInventory,
		[]ports.Filter{ports.Eq("id", item.ID)}, patch); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *InventoryService) Delete(ctx context.Context, sess domain.Session, id string) error {
	if sess.IsAnonymous() || sess.Role != domain.RoleAdmin {
		return domain.ErrUnauthorized
	}
	return s.gateway.Delete(ctx, domain.CollectionInventory, []ports.Filter{ports.Eq("id", id)})
}
