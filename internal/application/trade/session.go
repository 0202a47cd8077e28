package trade

import (
	"context"
	"time"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

// Trade is what a handler gets to act on during one trade.
type Trade struct {
	Self         string
	Counterparty string
	API          ports.TradeAPI
	Offer        *Offer
}

func New(self, counterparty string, api ports.TradeAPI, inventory domain.Inventory) *Trade {
	return &Trade{
		Self:         self,
		Counterparty: counterparty,
		API:          api,
		Offer:        NewOffer(api, inventory),
	}
}

// Handler reacts to trade activity. Every call happens on the session's
// goroutine, between two polls.
type Handler interface {
	OnTradeInit(ctx context.Context, t *Trade)
	OnTradeAddItem(ctx context.Context, t *Trade, event domain.TradeEvent)
	OnTradeRemoveItem(ctx context.Context, t *Trade, event domain.TradeEvent)
	OnTradeMessage(ctx context.Context, t *Trade, message string)
	OnTradeReady(ctx context.Context, t *Trade, ready bool)
	OnTradeAccept(ctx context.Context, t *Trade)
	OnTradeClose(ctx context.Context, t *Trade, status domain.TradeStatus)
	OnTradeTimeout(ctx context.Context, t *Trade)
	OnTradeError(ctx context.Context, t *Trade, message string)
}

type SessionConfig struct {
	Trade        *Trade
	Handler      Handler
	Clock        ports.Clock
	PollInterval time.Duration
	// MaxIdle cancels the trade once the counterparty has been inactive
	// for longer. Zero disables the check.
	MaxIdle time.Duration
	Logger  *zap.Logger
}

// Session polls one trade until it closes.
type Session struct {
	cfg        SessionConfig
	reconciler *Reconciler
	logger     *zap.Logger
	lastError  string
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = domain.DefaultPollInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{cfg: cfg, logger: logger.With(zap.String("counterparty", cfg.Trade.Counterparty))}
	s.reconciler = NewReconciler(cfg.Trade.Self, s)
	return s
}

// Run blocks until the trade reaches a terminal status, goes idle for too
// long, or ctx is cancelled. Poll failures are transient and only logged.
func (s *Session) Run(ctx context.Context) error {
	t := s.cfg.Trade
	s.logger.Info("trade session started")
	s.cfg.Handler.OnTradeInit(ctx, t)

	failures := 0
	for {
		snapshot, err := t.API.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			s.logger.Warn("trade status poll failed", zap.Int("consecutive_failures", failures), zap.Error(err))
		} else {
			failures = 0
			s.reportError(ctx, snapshot.Error)

			if s.reconciler.Apply(ctx, snapshot) {
				s.logger.Info("trade session closed", zap.Stringer("status", snapshot.Status))
				return nil
			}
			if s.idle(snapshot) {
				s.logger.Warn("trade timed out", zap.Int("sec_since_touch", snapshot.Them.SecondsSinceActivity))
				t.API.CancelTrade(ctx)
				s.cfg.Handler.OnTradeTimeout(ctx, t)
				return nil
			}
		}

		if err := s.cfg.Clock.Sleep(ctx, s.cfg.PollInterval); err != nil {
			return err
		}
	}
}

func (s *Session) Reconciler() *Reconciler {
	return s.reconciler
}

func (s *Session) idle(snapshot domain.StatusSnapshot) bool {
	if s.cfg.MaxIdle <= 0 {
		return false
	}
	return time.Duration(snapshot.Them.SecondsSinceActivity)*time.Second > s.cfg.MaxIdle
}

func (s *Session) reportError(ctx context.Context, message string) {
	if message == "" || message == s.lastError {
		s.lastError = message
		return
	}
	s.lastError = message
	s.logger.Warn("trade status error", zap.String("error", message))
	s.cfg.Handler.OnTradeError(ctx, s.cfg.Trade, message)
}

func (s *Session) ItemAdded(ctx context.Context, event domain.TradeEvent) {
	s.cfg.Trade.Offer.Observe(event)
	if !event.FromSelf {
		s.cfg.Handler.OnTradeAddItem(ctx, s.cfg.Trade, event)
	}
}

func (s *Session) ItemRemoved(ctx context.Context, event domain.TradeEvent) {
	s.cfg.Trade.Offer.Observe(event)
	if !event.FromSelf {
		s.cfg.Handler.OnTradeRemoveItem(ctx, s.cfg.Trade, event)
	}
}

func (s *Session) Message(ctx context.Context, event domain.TradeEvent) {
	s.cfg.Handler.OnTradeMessage(ctx, s.cfg.Trade, event.Text)
}

func (s *Session) ReadyChanged(ctx context.Context, ready bool) {
	s.cfg.Handler.OnTradeReady(ctx, s.cfg.Trade, ready)
}

func (s *Session) Accepted(ctx context.Context, _ domain.TradeEvent) {
	s.cfg.Handler.OnTradeAccept(ctx, s.cfg.Trade)
}

func (s *Session) Closed(ctx context.Context, status domain.TradeStatus) {
	s.cfg.Handler.OnTradeClose(ctx, s.cfg.Trade, status)
}
