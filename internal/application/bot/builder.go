package bot

import (
	"context"
	"fmt"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

// Builder assembles a fresh Unit for an identity. Every attempt gets its
// own network connection and handler.
type Builder struct {
	Registry  *Registry
	Dialer    ports.NetworkDialer
	Catalog   ports.Catalog
	Inventory ports.InventoryLoader
	Trades    ports.TradeAPIFactory
	Clock     ports.Clock
}

func (b *Builder) Build(ctx context.Context, identity domain.Identity, logger *zap.Logger) (*Unit, error) {
	handler, err := b.Registry.Build(handlerName(identity), HandlerDeps{
		Identity: identity,
		Catalog:  b.Catalog,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	network, err := b.Dialer.Dial(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("dial network: %w", err)
	}

	return NewUnit(UnitConfig{
		Identity:  identity,
		Handler:   handler,
		Network:   network,
		Inventory: b.Inventory,
		Trades:    b.Trades,
		Clock:     b.Clock,
		Logger:    logger,
	}), nil
}
