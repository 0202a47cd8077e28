package ports

import (
	"context"

	"github.com/bnema/tradebot/internal/domain"
)

// Network is the connection owned by the external login layer. Next
// returns io.EOF once the connection is closed.
type Network interface {
	Next(ctx context.Context) (domain.NetworkEvent, error)
	Respond(ctx context.Context, reply domain.NetworkReply) error
	Close() error
}

type NetworkDialer interface {
	Dial(ctx context.Context, identity domain.Identity) (Network, error)
}
