package ports

import (
	"context"

	"github.com/bnema/tradebot/internal/domain"
)

// TradeAPI is one live trade session against the remote endpoint.
// Mutating calls report only whether the endpoint accepted them.
type TradeAPI interface {
	Poll(ctx context.Context) (domain.StatusSnapshot, error)
	SendMessage(ctx context.Context, text string) bool
	AddItem(ctx context.Context, itemID uint64, slot int) bool
	RemoveItem(ctx context.Context, itemID uint64, slot int) bool
	SetReady(ctx context.Context, ready bool) bool
	AcceptTrade(ctx context.Context) bool
	CancelTrade(ctx context.Context) bool
}

type TradeAPIFactory interface {
	Open(creds domain.Credentials, counterparty string) (TradeAPI, error)
}
