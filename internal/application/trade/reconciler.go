package trade

import (
	"context"

	"github.com/bnema/tradebot/internal/domain"
)

// Observer receives the semantic changes found between snapshots.
type Observer interface {
	ItemAdded(ctx context.Context, event domain.TradeEvent)
	ItemRemoved(ctx context.Context, event domain.TradeEvent)
	Message(ctx context.Context, event domain.TradeEvent)
	ReadyChanged(ctx context.Context, ready bool)
	Accepted(ctx context.Context, event domain.TradeEvent)
	Closed(ctx context.Context, status domain.TradeStatus)
}

// Reconciler turns successive status snapshots into Observer callbacks,
// delivering every log position at most once and in log order.
type Reconciler struct {
	self     string
	observer Observer

	next      int
	themReady bool
	closed    bool
}

func NewReconciler(self string, observer Observer) *Reconciler {
	return &Reconciler{self: self, observer: observer}
}

// Apply consumes one snapshot and reports whether the trade has closed.
// Snapshots arriving after the close are ignored.
func (r *Reconciler) Apply(ctx context.Context, snapshot domain.StatusSnapshot) bool {
	if r.closed {
		return true
	}

	for _, event := range snapshot.Events {
		if event.Position < r.next {
			continue
		}
		event.FromSelf = event.SteamID == r.self
		r.deliver(ctx, event)
		r.next = event.Position + 1
	}

	if snapshot.Status.Terminal() {
		r.closed = true
		r.observer.Closed(ctx, snapshot.Status)
	}

	return r.closed
}

// Delivered is the lowest log position not yet handed to the observer.
func (r *Reconciler) Delivered() int {
	return r.next
}

func (r *Reconciler) Closed() bool {
	return r.closed
}

func (r *Reconciler) deliver(ctx context.Context, event domain.TradeEvent) {
	switch event.Action {
	case domain.ActionItemAdded:
		r.observer.ItemAdded(ctx, event)
	case domain.ActionItemRemoved:
		r.observer.ItemRemoved(ctx, event)
	case domain.ActionMessage:
		if !event.FromSelf {
			r.observer.Message(ctx, event)
		}
	case domain.ActionReady, domain.ActionUnready:
		if event.FromSelf {
			return
		}
		ready := event.Action == domain.ActionReady
		if ready != r.themReady {
			r.themReady = ready
			r.observer.ReadyChanged(ctx, ready)
		}
	case domain.ActionAccepted:
		if !event.FromSelf {
			r.observer.Accepted(ctx, event)
		}
	}
}
