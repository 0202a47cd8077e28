package bot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bnema/tradebot/internal/application/trade"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

type UnitConfig struct {
	Identity  domain.Identity
	Handler   Handler
	Network   ports.Network
	Inventory ports.InventoryLoader
	Trades    ports.TradeAPIFactory
	Clock     ports.Clock
	Logger    *zap.Logger
}

// Unit is one identity's execution unit: it answers network events and
// runs at most one trade at a time.
type Unit struct {
	cfg    UnitConfig
	creds  domain.Credentials
	logger *zap.Logger
}

func NewUnit(cfg UnitConfig) *Unit {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Unit{cfg: cfg, logger: logger}
}

// Run returns nil once the network stream ends. Any other error means the
// unit crashed and should be replaced.
func (u *Unit) Run(ctx context.Context) error {
	defer func() {
		if err := u.cfg.Network.Close(); err != nil {
			u.logger.Warn("close network", zap.Error(err))
		}
	}()

	for {
		event, err := u.cfg.Network.Next(ctx)
		if errors.Is(err, io.EOF) {
			u.logger.Info("network stream closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read network event: %w", err)
		}

		if err := u.handle(ctx, event); err != nil {
			return err
		}
	}
}

func (u *Unit) handle(ctx context.Context, event domain.NetworkEvent) error {
	switch event.Type {
	case domain.NetworkEventSession:
		u.creds = event.Credentials
		u.logger.Info("web session established")
		return nil

	case domain.NetworkEventFriendAdd:
		accept := u.cfg.Handler.OnFriendAdd(ctx, event.From)
		return u.respond(ctx, domain.NetworkReply{Type: domain.NetworkReplyFriendAdd, To: event.From, Accept: accept})

	case domain.NetworkEventFriendMessage:
		u.cfg.Handler.OnFriendMessage(ctx, event.From, event.Text)
		return nil

	case domain.NetworkEventTradeRequest:
		accept := u.cfg.Handler.OnTradeRequest(ctx, event.From)
		if accept && u.creds.Empty() {
			u.logger.Warn("trade request rejected", zap.String("from", event.From), zap.Error(domain.ErrNoCredentials))
			accept = false
		}
		if err := u.respond(ctx, domain.NetworkReply{Type: domain.NetworkReplyTradeRequest, To: event.From, Accept: accept}); err != nil {
			return err
		}
		if !accept {
			return nil
		}
		return u.runTrade(ctx, event.From)

	default:
		u.logger.Debug("ignoring network event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (u *Unit) runTrade(ctx context.Context, counterparty string) error {
	identity := u.cfg.Identity

	inventory, err := u.cfg.Inventory.Load(ctx, identity.SteamID)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}

	api, err := u.cfg.Trades.Open(u.creds, counterparty)
	if err != nil {
		return fmt.Errorf("open trade with %s: %w", counterparty, err)
	}

	session := trade.NewSession(trade.SessionConfig{
		Trade:        trade.New(identity.SteamID, counterparty, api, inventory),
		Handler:      u.cfg.Handler,
		Clock:        u.cfg.Clock,
		PollInterval: identity.PollInterval,
		MaxIdle:      identity.MaxIdle,
		Logger:       u.logger,
	})
	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("trade with %s: %w", counterparty, err)
	}
	return nil
}

func (u *Unit) respond(ctx context.Context, reply domain.NetworkReply) error {
	if err := u.cfg.Network.Respond(ctx, reply); err != nil {
		return fmt.Errorf("send %s: %w", reply.Type, err)
	}
	return nil
}
