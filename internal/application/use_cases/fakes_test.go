package use_cases

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/application/ports"
	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
)

type fakeRepo struct {
	mu      sync.Mutex
	items   map[string]*inventory.Item
	state   simulation.State
	records []*simulation.DayRecord

	commits   int
	rollbacks int
	failWrite error

	listCalls int
}

func newFakeRepo(items ...*inventory.Item) *fakeRepo {
	r := &fakeRepo{items: make(map[string]*inventory.Item)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeRepo) CreateItem(ctx context.Context, item *inventory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) GetItemByID(ctx context.Context, id string) (*inventory.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domainErrors.ErrItemNotFound
	}
	return item, nil
}

func (r *fakeRepo) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	r.listCalls++
	all, _ := r.ListAllItems(ctx)
	if offset >= len(all) {
		return []*inventory.Item{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeRepo) ListAllItems(ctx context.Context) ([]*inventory.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*inventory.Item, 0, len(r.items))
	for _, item := range r.items {
		copied := *item
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakeRepo) UpdateItems(ctx context.Context, items []*inventory.Item) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[item.ID] = item
	}
	return nil
}

func (r *fakeRepo) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainErrors.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) GetSimulationState(ctx context.Context) (*simulation.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.state
	return &state, nil
}

func (r *fakeRepo) RecordDay(ctx context.Context, record *simulation.DayRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	r.state.CurrentDay = record.Day
	at := record.AdvancedAt
	r.state.LastAdvancedAt = &at
	return nil
}

func (r *fakeRepo) BeginTx(ctx context.Context) (ports.ItemRepository, error) {
	return &fakeTx{fakeRepo: r}, nil
}

func (r *fakeRepo) CommitTx(ctx context.Context) error   { return errors.New("not in transaction") }
func (r *fakeRepo) RollbackTx(ctx context.Context) error { return errors.New("not in transaction") }

// fakeTx buffers writes and applies them to the parent on commit.
type fakeTx struct {
	*fakeRepo
	pendingItems   []*inventory.Item
	pendingRecords []*simulation.DayRecord
}

func (tx *fakeTx) UpdateItems(ctx context.Context, items []*inventory.Item) error {
	if tx.failWrite != nil {
		return tx.failWrite
	}
	tx.pendingItems = items
	return nil
}

func (tx *fakeTx) RecordDay(ctx context.Context, record *simulation.DayRecord) error {
	tx.pendingRecords = append(tx.pendingRecords, record)
	return nil
}

func (tx *fakeTx) CommitTx(ctx context.Context) error {
	if err := tx.fakeRepo.UpdateItems(ctx, tx.pendingItems); err != nil {
		return err
	}
	for _, record := range tx.pendingRecords {
		_ = tx.fakeRepo.RecordDay(ctx, record)
	}
	tx.commits++
	return nil
}

func (tx *fakeTx) RollbackTx(ctx context.Context) error {
	tx.rollbacks++
	return nil
}

type snapshotKey struct {
	generation    int64
	limit, offset int
}

type fakeCache struct {
	mu          sync.Mutex
	generation  int64
	snapshots   map[snapshotKey][]*inventory.Item
	locks       map[string]bool
	invalidated int
	lockErr     error
	genErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		snapshots: make(map[snapshotKey][]*inventory.Item),
		locks:     make(map[string]bool),
	}
}

func (c *fakeCache) InventoryGeneration(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, c.genErr
}

func (c *fakeCache) GetInventorySnapshot(ctx context.Context, generation int64, limit, offset int) ([]*inventory.Item, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.snapshots[snapshotKey{generation, limit, offset}]
	return items, ok, nil
}

func (c *fakeCache) SetInventorySnapshot(ctx context.Context, generation int64, limit, offset int, items []*inventory.Item, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshotKey{generation, limit, offset}] = items
	return nil
}

func (c *fakeCache) InvalidateInventory(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.snapshots = make(map[snapshotKey][]*inventory.Item)
	c.invalidated++
	return nil
}

func (c *fakeCache) DistributedLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	if c.lockErr != nil {
		return false, c.lockErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *fakeCache) ReleaseLock(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.locks, key)
	return nil
}

type fakePublisher struct {
	events []simulation.DayAdvancedEvent
}

func (p *fakePublisher) PublishDayAdvanced(ctx context.Context, event simulation.DayAdvancedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeMetrics struct {
	advances []int
	failures []string
	rejected []inventory.Category
	summary  inventory.Summary
}

func (m *fakeMetrics) RecordAdvance(trigger simulation.Trigger, days int, duration time.Duration) {
	m.advances = append(m.advances, days)
}

func (m *fakeMetrics) RecordAdvanceFailure(trigger simulation.Trigger, reason string) {
	m.failures = append(m.failures, reason)
}

func (m *fakeMetrics) UpdateInventory(summary inventory.Summary) {
	m.summary = summary
}

func (m *fakeMetrics) RecordRejectedItem(category inventory.Category) {
	m.rejected = append(m.rejected, category)
}

func mustItem(id, name string, sellIn, quality int) *inventory.Item {
	item, err := inventory.NewItem(name, sellIn, quality)
	if err != nil {
		panic(err)
	}
	item.ID = id
	return item
}
