package trade

import (
	"context"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
)

// Offer tracks the items this identity has put into the trade and the
// slot the next item goes to.
type Offer struct {
	api       ports.TradeAPI
	inventory domain.Inventory

	offered  map[uint64]int
	nextSlot int
}

func NewOffer(api ports.TradeAPI, inventory domain.Inventory) *Offer {
	return &Offer{api: api, inventory: inventory, offered: map[uint64]int{}}
}

func (o *Offer) Inventory() domain.Inventory {
	return o.inventory
}

func (o *Offer) Offered(itemID uint64) bool {
	_, ok := o.offered[itemID]
	return ok
}

func (o *Offer) Count() int {
	return len(o.offered)
}

// AddAllByDefindex offers every tradable, not yet offered instance of
// defindex, stopping after limit items when limit is nonzero. It returns how
// many items the endpoint accepted.
func (o *Offer) AddAllByDefindex(ctx context.Context, defindex int, limit uint) uint {
	var added uint
	for _, item := range o.inventory.ItemsByDefindex(defindex) {
		if limit > 0 && added >= limit {
			break
		}
		if item.NotTradable || o.Offered(item.ID) {
			continue
		}
		if o.Add(ctx, item.ID) {
			added++
		}
	}
	return added
}

func (o *Offer) Add(ctx context.Context, itemID uint64) bool {
	slot := o.nextSlot
	if !o.api.AddItem(ctx, itemID, slot) {
		return false
	}
	o.offered[itemID] = slot
	o.nextSlot++
	return true
}

func (o *Offer) Remove(ctx context.Context, itemID uint64) bool {
	slot, ok := o.offered[itemID]
	if !ok {
		return false
	}
	if !o.api.RemoveItem(ctx, itemID, slot) {
		return false
	}
	delete(o.offered, itemID)
	return true
}

// Observe keeps the offer in sync with items this identity added or
// removed outside of Add and Remove.
func (o *Offer) Observe(event domain.TradeEvent) {
	if !event.FromSelf {
		return
	}
	switch event.Action {
	case domain.ActionItemAdded:
		if _, ok := o.offered[event.Item.AssetID]; !ok {
			o.offered[event.Item.AssetID] = o.nextSlot
			o.nextSlot++
		}
	case domain.ActionItemRemoved:
		delete(o.offered, event.Item.AssetID)
	}
}
