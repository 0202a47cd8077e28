package ports

import (
	"context"

	"github.com/bnema/tradebot/internal/domain"
)

type IdentityRepository interface {
	GetByID(ctx context.Context, id domain.IdentityID) (domain.Identity, error)
	List(ctx context.Context) ([]domain.Identity, error)
	Save(ctx context.Context, identity domain.Identity) error
	Settings(ctx context.Context) (domain.Settings, error)
}
