package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

type fakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()
	return ctx.Err()
}

func identities(ids ...string) []domain.Identity {
	out := make([]domain.Identity, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Identity{ID: domain.IdentityID(id), SteamID: "7656" + id, EventsPath: "/tmp/" + id})
	}
	return out
}

func TestSupervisorStopsAtCrashCeiling(t *testing.T) {
	var attempts atomic.Int32
	factory := func(context.Context, domain.Identity, *zap.Logger) (Runner, error) {
		attempts.Add(1)
		return runnerFunc(func(context.Context) error { return errors.New("connection dropped") }), nil
	}

	s := New(identities("bot-1"), factory, Options{Clock: &fakeClock{}})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, int32(1000), attempts.Load())
	status := s.Snapshot()[0]
	assert.Equal(t, StatePermanentlyStopped, status.State)
	assert.Equal(t, 1000, status.Crashes)
	assert.Equal(t, "connection dropped", status.LastError)
}

func TestSupervisorGracefulCloseIsNotRestarted(t *testing.T) {
	var attempts atomic.Int32
	factory := func(context.Context, domain.Identity, *zap.Logger) (Runner, error) {
		attempts.Add(1)
		return runnerFunc(func(context.Context) error { return nil }), nil
	}

	s := New(identities("bot-1"), factory, Options{Clock: &fakeClock{}})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, int32(1), attempts.Load())
	assert.Equal(t, StateClosed, s.Snapshot()[0].State)
	assert.Zero(t, s.Snapshot()[0].Crashes)
}

func TestSupervisorRecoversPanicsAndBuildFailures(t *testing.T) {
	var attempts atomic.Int32
	factory := func(context.Context, domain.Identity, *zap.Logger) (Runner, error) {
		switch attempts.Add(1) {
		case 1:
			return nil, errors.New("dial refused")
		case 2:
			return runnerFunc(func(context.Context) error { panic("nil map") }), nil
		default:
			return runnerFunc(func(context.Context) error { return nil }), nil
		}
	}

	s := New(identities("bot-1"), factory, Options{Clock: &fakeClock{}, CrashCeiling: 5})

	require.NoError(t, s.Run(context.Background()))

	status := s.Snapshot()[0]
	assert.Equal(t, StateClosed, status.State)
	assert.Equal(t, 2, status.Crashes)
	assert.Contains(t, status.LastError, "nil map")
}

func TestSupervisorIsolatesIdentities(t *testing.T) {
	factory := func(_ context.Context, identity domain.Identity, _ *zap.Logger) (Runner, error) {
		if identity.ID == "bot-2" {
			return runnerFunc(func(context.Context) error { return fmt.Errorf("bad credentials") }), nil
		}
		return runnerFunc(func(context.Context) error { return nil }), nil
	}

	clock := &fakeClock{}
	s := New(identities("bot-1", "bot-2", "bot-3"), factory, Options{Clock: clock, Stagger: 5 * time.Second, CrashCeiling: 3})

	require.NoError(t, s.Run(context.Background()))

	states := map[domain.IdentityID]Status{}
	for _, status := range s.Snapshot() {
		states[status.Identity.ID] = status
	}
	assert.Equal(t, StateClosed, states["bot-1"].State)
	assert.Equal(t, StatePermanentlyStopped, states["bot-2"].State)
	assert.Equal(t, 3, states["bot-2"].Crashes)
	assert.Equal(t, StateClosed, states["bot-3"].State)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, clock.sleeps)
}

func TestSupervisorAssignsRunIDPerAttempt(t *testing.T) {
	var attempts atomic.Int32
	factory := func(context.Context, domain.Identity, *zap.Logger) (Runner, error) {
		if attempts.Add(1) < 3 {
			return runnerFunc(func(context.Context) error { return errors.New("boom") }), nil
		}
		return runnerFunc(func(context.Context) error { return nil }), nil
	}

	var ids []string
	next := 0
	s := New(identities("bot-1"), factory, Options{
		Clock: &fakeClock{},
		NewRunID: func() string {
			next++
			id := fmt.Sprintf("run-%d", next)
			ids = append(ids, id)
			return id
		},
	})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []string{"run-1", "run-2", "run-3"}, ids)
	assert.Equal(t, "run-3", s.Snapshot()[0].RunID)
}

func TestSupervisorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	factory := func(context.Context, domain.Identity, *zap.Logger) (Runner, error) {
		return runnerFunc(func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}), nil
	}

	s := New(identities("bot-1"), factory, Options{Clock: &fakeClock{}})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	assert.Equal(t, StateClosed, s.Snapshot()[0].State)
	assert.Zero(t, s.Snapshot()[0].Crashes)
}
