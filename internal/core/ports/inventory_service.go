package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// InventoryService defines use-case operations for stock. Pharmacists see
// only the Medication category; admin sees everything.
type InventoryService interface {
	List(ctx context.Context, sess domain.Session) ([]domain.InventoryItem, error)
	// Save creates the item when its ID is empty, otherwise updates it.
	Save(ctx context.Context, sess domain.Session, item domain.InventoryItem) (*domain.InventoryItem, error)
	Delete(ctx context.Context, sess domain.Session, id string) error
}
