package ports

import (
	"context"

	"github.com/bnema/tradebot/internal/domain"
)

// Catalog must be safe for concurrent reads; every identity shares one.
type Catalog interface {
	ItemsByCraftMaterial(ctx context.Context, category string) ([]domain.CatalogItem, error)
	Item(ctx context.Context, defindex int) (domain.CatalogItem, bool, error)
}

type InventoryLoader interface {
	Load(ctx context.Context, steamID string) (domain.Inventory, error)
}
