package ports

import (
	"context"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
)

// Cache stores inventory page snapshots scoped to a generation. Every
// InvalidateInventory bumps the generation, so a snapshot built from a read
// that started before an invalidation is written under a generation no reader
// asks for anymore.
type Cache interface {
	InventoryGeneration(ctx context.Context) (int64, error)
	GetInventorySnapshot(ctx context.Context, generation int64, limit, offset int) ([]*inventory.Item, bool, error)
	SetInventorySnapshot(ctx context.Context, generation int64, limit, offset int, items []*inventory.Item, expiration time.Duration) error
	InvalidateInventory(ctx context.Context) error

	DistributedLock(ctx context.Context, key string, expiration time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
