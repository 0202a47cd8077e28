package command

import (
	"context"
	"fmt"

	"github.com/bnema/tradebot/internal/application/trade"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

const (
	msgNotMaster   = "You are not my master."
	msgNoParameter = "No parameter for cmd: add"
)

var HelpLines = []string{
	"add crates - adds all crates",
	"add metal - adds all metal",
	"add weapons - adds all weapons",
	"inv crates - show bot crates",
	"inv metal - show bot metal",
	"inv weapons - show bot weapons",
	"add <craft_material_type> [amount] - adds all or a given amount of items of a given crafing type.",
	"add <defindex> [amount] - adds all or a given amount of items of a given defindex.",
	"See http://wiki.teamfortress.com/wiki/WebAPI/GetSchema for info about craft_material_type or defindex.",
}

// Dispatcher runs chat commands typed into the trade window.
type Dispatcher struct {
	identity domain.Identity
	catalog  ports.Catalog
	logger   *zap.Logger
}

func NewDispatcher(identity domain.Identity, catalog ports.Catalog, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{identity: identity, catalog: catalog, logger: logger}
}

// Dispatch parses line and executes it on behalf of sender. Lines that do
// not start with a known command are ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, t *trade.Trade, sender, line string) error {
	cmd, ok := domain.ParseCommand(line)
	if !ok {
		return nil
	}

	d.logger.Debug("trade command", zap.String("sender", sender), zap.String("command", string(cmd.Kind)), zap.String("argument", cmd.Argument))

	switch cmd.Kind {
	case domain.CommandHelp:
		d.help(ctx, t)
		return nil
	case domain.CommandInventory:
		return d.inventory(ctx, t, cmd)
	case domain.CommandAdd:
		if !d.authorize(ctx, t, sender) {
			return nil
		}
		return d.add(ctx, t, cmd)
	case domain.CommandRemove:
		if !d.authorize(ctx, t, sender) {
			return nil
		}
		if !d.requireArgument(ctx, t, cmd) {
			return nil
		}
		// removal by category has never been supported
		d.logger.Debug("remove command ignored", zap.String("argument", cmd.Argument))
		return nil
	}

	return nil
}

func (d *Dispatcher) help(ctx context.Context, t *trade.Trade) {
	for _, line := range HelpLines {
		t.API.SendMessage(ctx, line)
	}
}

func (d *Dispatcher) inventory(ctx context.Context, t *trade.Trade, cmd domain.Command) error {
	if !d.requireArgument(ctx, t, cmd) {
		return nil
	}

	items, err := d.lookup(ctx, cmd)
	if err != nil {
		return err
	}

	inventory := t.Offer.Inventory()
	reported := make(map[int]struct{})
	for _, entry := range items {
		for _, item := range inventory.ItemsByDefindex(entry.Defindex) {
			if item.NotTradable {
				continue
			}
			if _, ok := reported[item.Defindex]; ok {
				continue
			}
			reported[item.Defindex] = struct{}{}
			t.API.SendMessage(ctx, fmt.Sprintf("%s [%d]", entry.Name, item.Defindex))
		}
	}

	return nil
}

func (d *Dispatcher) add(ctx context.Context, t *trade.Trade, cmd domain.Command) error {
	if !d.requireArgument(ctx, t, cmd) {
		return nil
	}

	if defindex, ok := cmd.Defindex(); ok {
		added := t.Offer.AddAllByDefindex(ctx, defindex, cmd.Amount)
		d.logger.Info("items added", zap.Int("defindex", defindex), zap.Uint("added", added))
		return nil
	}

	category := cmd.Category()
	items, err := d.catalog.ItemsByCraftMaterial(ctx, category)
	if err != nil {
		return fmt.Errorf("list catalog items for %q: %w", category, err)
	}

	var added uint
	for _, entry := range items {
		added += t.Offer.AddAllByDefindex(ctx, entry.Defindex, cmd.Amount)
		if cmd.Amount > 0 && added >= cmd.Amount {
			break
		}
	}
	d.logger.Info("items added", zap.String("category", category), zap.Uint("added", added), zap.Uint("requested", cmd.Amount))

	return nil
}

func (d *Dispatcher) lookup(ctx context.Context, cmd domain.Command) ([]domain.CatalogItem, error) {
	if defindex, ok := cmd.Defindex(); ok {
		item, found, err := d.catalog.Item(ctx, defindex)
		if err != nil {
			return nil, fmt.Errorf("get catalog item %d: %w", defindex, err)
		}
		if !found {
			return nil, nil
		}
		return []domain.CatalogItem{item}, nil
	}

	category := cmd.Category()
	items, err := d.catalog.ItemsByCraftMaterial(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list catalog items for %q: %w", category, err)
	}
	return items, nil
}

func (d *Dispatcher) requireArgument(ctx context.Context, t *trade.Trade, cmd domain.Command) bool {
	if cmd.HasArgument() {
		return true
	}
	t.API.SendMessage(ctx, msgNoParameter)
	return false
}

func (d *Dispatcher) authorize(ctx context.Context, t *trade.Trade, sender string) bool {
	if d.identity.IsAdmin(sender) {
		return true
	}
	d.logger.Warn("command from non-admin rejected", zap.String("sender", sender))
	t.API.SendMessage(ctx, msgNotMaster)
	return false
}
