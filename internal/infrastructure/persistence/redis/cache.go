package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

const (
	snapshotKeysSet = "inventory:snapshot_keys"
	generationKey   = "inventory:generation"
)

type Cache struct {
	client *redis.Client
	logger *logger.Logger

	releaseScript *redis.Script

	mu    sync.Mutex
	locks map[string]heldLock
}

type heldLock struct {
	token   string
	metrics *monitoring.LockMetrics
}

func NewCache(conn *Connection, log *logger.Logger) *Cache {
	return &Cache{
		client:        monitoring.InstrumentRedisClient(conn.GetClient()),
		logger:        log,
		releaseScript: redis.NewScript(releaseLockLuaScript),
		locks:         make(map[string]heldLock),
	}
}

type cachedItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SellIn    int       `json:"sell_in"`
	Quality   int       `json:"quality"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func snapshotKey(generation int64, limit, offset int) string {
	return fmt.Sprintf("inventory:items:%d:%d:%d", generation, limit, offset)
}

// InventoryGeneration reads the invalidation counter; a missing key is
// generation 0.
func (c *Cache) InventoryGeneration(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func (c *Cache) GetInventorySnapshot(ctx context.Context, generation int64, limit, offset int) ([]*inventory.Item, bool, error) {
	data, err := c.client.Get(ctx, snapshotKey(generation, limit, offset)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	items, err := decodeSnapshot(data)
	if err != nil {
		return nil, false, err
	}

	return items, true, nil
}

func (c *Cache) SetInventorySnapshot(ctx context.Context, generation int64, limit, offset int, items []*inventory.Item, expiration time.Duration) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return err
	}

	key := snapshotKey(generation, limit, offset)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, expiration)
	pipe.SAdd(ctx, snapshotKeysSet, key)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateInventory bumps the generation and drops the page snapshots
// written since the last invalidation. Snapshots stored later under an older
// generation are never read and expire with their TTL.
func (c *Cache) InvalidateInventory(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, snapshotKeysSet).Result()
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, generationKey)
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, snapshotKeysSet)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *Cache) DistributedLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	metrics := monitoring.NewLockMetrics(key)
	metrics.Attempt()

	token := uuid.NewString()
	result, err := c.client.SetNX(ctx, lockKey(key), token, expiration).Result()
	if err != nil {
		metrics.Failed("redis_error")
		return false, err
	}
	if !result {
		metrics.Failed("already_locked")
		return false, nil
	}

	metrics.Acquired()

	c.mu.Lock()
	c.locks[key] = heldLock{token: token, metrics: metrics}
	c.mu.Unlock()

	return true, nil
}

// ReleaseLock deletes the lock only if this process still owns it, so an
// expired lock taken over by another holder is left alone.
func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	c.mu.Lock()
	held, ok := c.locks[key]
	delete(c.locks, key)
	c.mu.Unlock()

	if !ok {
		return nil
	}
	held.metrics.Released()

	released, err := c.releaseScript.Run(ctx, c.client, []string{lockKey(key)}, held.token).Int()
	if err != nil {
		return err
	}
	if released == 0 {
		c.logger.Warn("Lock expired before release", "lock_key", key)
	}

	return nil
}

func lockKey(key string) string {
	return fmt.Sprintf("lock:%s", key)
}

func encodeSnapshot(items []*inventory.Item) ([]byte, error) {
	cached := make([]cachedItem, 0, len(items))
	for _, item := range items {
		cached = append(cached, cachedItem{
			ID:        item.ID,
			Name:      item.Name,
			SellIn:    item.SellIn,
			Quality:   item.Quality,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return json.Marshal(cached)
}

func decodeSnapshot(data []byte) ([]*inventory.Item, error) {
	var cached []cachedItem
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decode inventory snapshot: %w", err)
	}

	items := make([]*inventory.Item, 0, len(cached))
	for _, ci := range cached {
		item, err := inventory.RestoreItem(ci.ID, ci.Name, ci.SellIn, ci.Quality, ci.CreatedAt, ci.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

const releaseLockLuaScript = `
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`
