package bot

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/tradebot/internal/application/command"
	"github.com/bnema/tradebot/internal/application/trade"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"go.uber.org/zap"
)

// Handler decides how an identity answers its contacts and behaves in
// trades.
type Handler interface {
	trade.Handler
	OnFriendAdd(ctx context.Context, from string) bool
	OnFriendMessage(ctx context.Context, from, text string)
	OnTradeRequest(ctx context.Context, from string) bool
}

type HandlerDeps struct {
	Identity domain.Identity
	Catalog  ports.Catalog
	Logger   *zap.Logger
}

type HandlerFactory func(deps HandlerDeps) Handler

// Registry maps the handler key of an identity's configuration to the
// factory building it.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]HandlerFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]HandlerFactory)}
}

// DefaultRegistry knows every handler shipped with tradebot.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(domain.DefaultHandler, func(deps HandlerDeps) Handler {
		return command.NewHandler(deps.Identity, deps.Catalog, deps.Logger)
	})
	return r
}

func (r *Registry) Register(name string, factory HandlerFactory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("handler name and factory are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("handler %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

func (r *Registry) Build(name string, deps HandlerDeps) (Handler, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownHandler, name)
	}
	return factory(deps), nil
}

// Validate fails on the first identity whose handler is not registered.
func (r *Registry) Validate(identities []domain.Identity) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, identity := range identities {
		if _, ok := r.factories[handlerName(identity)]; !ok {
			return fmt.Errorf("identity %s: %w: %q", identity.ID, domain.ErrUnknownHandler, identity.Handler)
		}
	}
	return nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func handlerName(identity domain.Identity) string {
	if identity.Handler == "" {
		return domain.DefaultHandler
	}
	return identity.Handler
}
