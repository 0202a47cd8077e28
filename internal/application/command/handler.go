package command

import (
	"context"

	"github.com/bnema/tradebot/internal/application/trade"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

const msgWelcome = "Success. (Type help for commands.)"

// Handler serves the identity's administrators: it accepts their friend
// and trade requests and follows their chat commands during a trade.
type Handler struct {
	identity   domain.Identity
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewHandler(identity domain.Identity, catalog ports.Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		identity:   identity,
		dispatcher: NewDispatcher(identity, catalog, logger),
		logger:     logger,
	}
}

func (h *Handler) OnFriendAdd(_ context.Context, from string) bool {
	if h.identity.IsAdmin(from) {
		return true
	}
	h.logger.Warn("friend request from non-admin rejected", zap.String("from", from))
	return false
}

func (h *Handler) OnFriendMessage(_ context.Context, from, text string) {
	h.logger.Info("friend message", zap.String("from", from), zap.String("text", text))
}

func (h *Handler) OnTradeRequest(_ context.Context, from string) bool {
	if h.identity.IsAdmin(from) {
		return true
	}
	h.logger.Info("trade request from non-admin rejected", zap.String("from", from))
	return false
}

func (h *Handler) OnTradeInit(ctx context.Context, t *trade.Trade) {
	t.API.SendMessage(ctx, msgWelcome)
}

func (h *Handler) OnTradeAddItem(_ context.Context, _ *trade.Trade, event domain.TradeEvent) {
	h.logger.Debug("counterparty added item", zap.Uint64("asset_id", event.Item.AssetID))
}

func (h *Handler) OnTradeRemoveItem(_ context.Context, _ *trade.Trade, event domain.TradeEvent) {
	h.logger.Debug("counterparty removed item", zap.Uint64("asset_id", event.Item.AssetID))
}

func (h *Handler) OnTradeMessage(ctx context.Context, t *trade.Trade, message string) {
	if err := h.dispatcher.Dispatch(ctx, t, t.Counterparty, message); err != nil {
		h.logger.Warn("trade command failed", zap.String("message", message), zap.Error(err))
	}
}

// OnTradeReady mirrors an administrator's ready state. Anyone else is
// told off and the identity is forced back to not ready.
func (h *Handler) OnTradeReady(ctx context.Context, t *trade.Trade, ready bool) {
	if !h.identity.IsAdmin(t.Counterparty) {
		if ready {
			t.API.SendMessage(ctx, msgNotMaster)
			t.API.SetReady(ctx, false)
		}
		return
	}
	t.API.SetReady(ctx, ready)
}

func (h *Handler) OnTradeAccept(ctx context.Context, t *trade.Trade) {
	if !h.identity.IsAdmin(t.Counterparty) {
		return
	}
	if t.API.AcceptTrade(ctx) {
		h.logger.Info("Trade was Successful!")
		return
	}
	h.logger.Warn("Trade might have failed.")
}

func (h *Handler) OnTradeClose(_ context.Context, t *trade.Trade, status domain.TradeStatus) {
	h.logger.Info("trade closed", zap.Stringer("status", status), zap.Int("offered", t.Offer.Count()))
}

func (h *Handler) OnTradeTimeout(context.Context, *trade.Trade) {
	h.logger.Warn("Trade timed out.")
}

func (h *Handler) OnTradeError(_ context.Context, _ *trade.Trade, message string) {
	h.logger.Error("trade error", zap.String("error", message))
}
