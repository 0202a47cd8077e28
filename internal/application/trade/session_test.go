package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

type recordingHandler struct {
	calls    []string
	messages []string
	ready    []bool
	closed   []domain.TradeStatus
	errors   []string
}

func (h *recordingHandler) OnTradeInit(context.Context, *Trade) {
	h.calls = append(h.calls, "init")
}

func (h *recordingHandler) OnTradeAddItem(context.Context, *Trade, domain.TradeEvent) {
	h.calls = append(h.calls, "add")
}

func (h *recordingHandler) OnTradeRemoveItem(context.Context, *Trade, domain.TradeEvent) {
	h.calls = append(h.calls, "remove")
}

func (h *recordingHandler) OnTradeMessage(_ context.Context, _ *Trade, message string) {
	h.calls = append(h.calls, "message")
	h.messages = append(h.messages, message)
}

func (h *recordingHandler) OnTradeReady(_ context.Context, _ *Trade, ready bool) {
	h.calls = append(h.calls, "ready")
	h.ready = append(h.ready, ready)
}

func (h *recordingHandler) OnTradeAccept(context.Context, *Trade) {
	h.calls = append(h.calls, "accept")
}

func (h *recordingHandler) OnTradeClose(_ context.Context, _ *Trade, status domain.TradeStatus) {
	h.calls = append(h.calls, "close")
	h.closed = append(h.closed, status)
}

func (h *recordingHandler) OnTradeTimeout(context.Context, *Trade) {
	h.calls = append(h.calls, "timeout")
}

func (h *recordingHandler) OnTradeError(_ context.Context, _ *Trade, message string) {
	h.calls = append(h.calls, "error")
	h.errors = append(h.errors, message)
}

func newTestSession(t *testing.T, api *mocks.MockTradeAPI, maxIdle time.Duration) (*Session, *recordingHandler, *fakeClock) {
	t.Helper()
	handler := &recordingHandler{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	session := NewSession(SessionConfig{
		Trade:        New(selfID, themID, api, domain.Inventory{OwnerID: selfID}),
		Handler:      handler,
		Clock:        clock,
		PollInterval: time.Second,
		MaxIdle:      maxIdle,
	})
	return session, handler, clock
}

func TestSessionClosesOnceAndStopsPolling(t *testing.T) {
	api := mocks.NewMockTradeAPI(t)
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Status: domain.TradeStatusEmpty, Version: 4, LogPos: 10}, nil).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Status: domain.TradeStatusCompleted, Version: 4, LogPos: 10}, nil).Once()

	session, handler, clock := newTestSession(t, api, 0)

	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, []string{"init", "close"}, handler.calls)
	assert.Equal(t, []domain.TradeStatus{domain.TradeStatusCompleted}, handler.closed)
	assert.Len(t, clock.sleeps, 1)
	api.AssertNumberOfCalls(t, "Poll", 2)
}

func TestSessionDeliversEventsInOrder(t *testing.T) {
	api := mocks.NewMockTradeAPI(t)
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Events: []domain.TradeEvent{
		message(0, themID, "help"),
		itemEvent(1, themID, domain.ActionItemAdded, 77),
	}}, nil).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Status: domain.TradeStatusCancelled, Events: []domain.TradeEvent{
		message(0, themID, "help"),
		itemEvent(1, themID, domain.ActionItemAdded, 77),
		{Position: 2, SteamID: themID, Action: domain.ActionReady},
		itemEvent(3, selfID, domain.ActionItemAdded, 5),
	}}, nil).Once()

	session, handler, _ := newTestSession(t, api, 0)

	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, []string{"init", "message", "add", "ready", "close"}, handler.calls)
	assert.Equal(t, []string{"help"}, handler.messages)
	assert.True(t, session.cfg.Trade.Offer.Offered(5))
	assert.Equal(t, 4, session.Reconciler().Delivered())
}

func TestSessionTreatsPollFailuresAsTransient(t *testing.T) {
	api := mocks.NewMockTradeAPI(t)
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{}, errors.New("connection reset")).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{}, errors.New("connection reset")).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Status: domain.TradeStatusFailed}, nil).Once()

	session, handler, clock := newTestSession(t, api, 0)

	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, []domain.TradeStatus{domain.TradeStatusFailed}, handler.closed)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, clock.sleeps)
}

func TestSessionReportsEachDistinctErrorOnce(t *testing.T) {
	api := mocks.NewMockTradeAPI(t)
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Error: "busy"}, nil).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Error: "busy"}, nil).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Error: "gone"}, nil).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Status: domain.TradeStatusTimedOut}, nil).Once()

	session, handler, _ := newTestSession(t, api, 0)

	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, []string{"busy", "gone"}, handler.errors)
}

func TestSessionCancelsIdleTrade(t *testing.T) {
	api := mocks.NewMockTradeAPI(t)
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Them: domain.PartyState{SecondsSinceActivity: 30}}, nil).Once()
	api.EXPECT().Poll(mock.Anything).Return(domain.StatusSnapshot{Them: domain.PartyState{SecondsSinceActivity: 120}}, nil).Once()
	api.EXPECT().CancelTrade(mock.Anything).Return(true).Once()

	session, handler, _ := newTestSession(t, api, time.Minute)

	require.NoError(t, session.Run(context.Background()))

	assert.Equal(t, []string{"init", "timeout"}, handler.calls)
}

func TestSessionStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	api := mocks.NewMockTradeAPI(t)
	api.EXPECT().Poll(mock.Anything).RunAndReturn(func(context.Context) (domain.StatusSnapshot, error) {
		cancel()
		return domain.StatusSnapshot{}, nil
	}).Once()

	session, handler, _ := newTestSession(t, api, 0)

	err := session.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, handler.closed)
}
