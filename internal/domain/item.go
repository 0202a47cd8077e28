package domain

// CatalogItem is one schema entry.
type CatalogItem struct {
	Defindex      int
	Name          string
	CraftMaterial string
}

type InventoryItem struct {
	ID          uint64
	Defindex    int
	NotTradable bool
}

type Inventory struct {
	OwnerID string
	Items   []InventoryItem
}

// ItemsByDefindex keeps inventory order.
func (inv Inventory) ItemsByDefindex(defindex int) []InventoryItem {
	var items []InventoryItem
	for _, item := range inv.Items {
		if item.Defindex == defindex {
			items = append(items, item)
		}
	}
	return items
}
