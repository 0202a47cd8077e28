package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateStarting           State = "starting"
	StateRunning            State = "running"
	StateCrashed            State = "crashed"
	StatePermanentlyStopped State = "stopped"
	StateClosed             State = "closed"
)

// Runner is one execution attempt for an identity. A nil return is a
// graceful close; an error or a panic is a crash.
type Runner interface {
	Run(ctx context.Context) error
}

type UnitFactory func(ctx context.Context, identity domain.Identity, logger *zap.Logger) (Runner, error)

type Options struct {
	Stagger      time.Duration
	CrashCeiling int
	Clock        ports.Clock
	Logger       *zap.Logger
	NewRunID     func() string
}

type Status struct {
	Identity  domain.Identity
	State     State
	Crashes   int
	RunID     string
	LastError string
	Since     time.Time
}

// unitContext is owned by the goroutine supervising its identity. The
// mutex only serialises Snapshot readers.
type unitContext struct {
	mu     sync.Mutex
	status Status
}

func (c *unitContext) update(fn func(*Status)) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.status)
	return c.status
}

func (c *unitContext) snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

type Supervisor struct {
	units   []*unitContext
	factory UnitFactory
	opts    Options
}

func New(identities []domain.Identity, factory UnitFactory, opts Options) *Supervisor {
	if opts.Stagger < 0 {
		opts.Stagger = 0
	}
	if opts.CrashCeiling <= 0 {
		opts.CrashCeiling = domain.DefaultCrashCeiling
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}

	units := make([]*unitContext, 0, len(identities))
	for _, identity := range identities {
		units = append(units, &unitContext{status: Status{Identity: identity, State: StateStarting, Since: opts.Clock.Now()}})
	}

	return &Supervisor{units: units, factory: factory, opts: opts}
}

// Run launches every identity, Stagger apart, and blocks until each one
// is closed or permanently stopped, or ctx is done.
func (s *Supervisor) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i, unit := range s.units {
		if i > 0 {
			if err := s.opts.Clock.Sleep(ctx, s.opts.Stagger); err != nil {
				break
			}
		}

		wg.Add(1)
		go func(unit *unitContext) {
			defer wg.Done()
			s.supervise(ctx, unit)
		}(unit)
	}
	wg.Wait()

	return ctx.Err()
}

// Snapshot reports every identity in configuration order.
func (s *Supervisor) Snapshot() []Status {
	out := make([]Status, 0, len(s.units))
	for _, unit := range s.units {
		out = append(out, unit.snapshot())
	}
	return out
}

func (s *Supervisor) supervise(ctx context.Context, unit *unitContext) {
	identity := unit.snapshot().Identity
	base := s.opts.Logger.With(zap.String("identity", identity.Name()))

	for {
		runID := s.opts.NewRunID()
		logger := base.With(zap.String("run_id", runID))
		s.transition(unit, StateStarting, func(st *Status) { st.RunID = runID })

		err := s.attempt(ctx, identity, logger, func() {
			s.transition(unit, StateRunning, nil)
			logger.Info("identity running")
		})

		if ctx.Err() != nil {
			s.transition(unit, StateClosed, nil)
			return
		}
		if err == nil {
			s.transition(unit, StateClosed, nil)
			logger.Info("identity closed")
			return
		}

		status := s.transition(unit, StateCrashed, func(st *Status) {
			st.Crashes++
			st.LastError = err.Error()
		})
		logger.Error("identity crashed", zap.Int("crashes", status.Crashes), zap.Error(err))

		if status.Crashes >= s.opts.CrashCeiling {
			s.transition(unit, StatePermanentlyStopped, nil)
			logger.Error("crash ceiling reached, identity stopped", zap.Int("crash_ceiling", s.opts.CrashCeiling))
			return
		}
	}
}

func (s *Supervisor) attempt(ctx context.Context, identity domain.Identity, logger *zap.Logger, running func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in execution unit: %v", r)
		}
	}()

	runner, err := s.factory(ctx, identity, logger)
	if err != nil {
		return fmt.Errorf("build execution unit: %w", err)
	}

	running()
	return runner.Run(ctx)
}

func (s *Supervisor) transition(unit *unitContext, state State, fn func(*Status)) Status {
	now := s.opts.Clock.Now()
	return unit.update(func(st *Status) {
		if st.State != state {
			st.Since = now
		}
		st.State = state
		if fn != nil {
			fn(st)
		}
	})
}
