package use_cases

import (
	"context"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/application/ports"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type InventoryUseCase struct {
	itemRepo    ports.ItemRepository
	cache       ports.Cache
	metrics     ports.SimulationMetrics
	log         *logger.Logger
	snapshotTTL time.Duration
}

func NewInventoryUseCase(
	itemRepo ports.ItemRepository,
	cache ports.Cache,
	metrics ports.SimulationMetrics,
	log *logger.Logger,
	snapshotTTL time.Duration,
) *InventoryUseCase {
	return &InventoryUseCase{
		itemRepo:    itemRepo,
		cache:       cache,
		metrics:     metrics,
		log:         log,
		snapshotTTL: snapshotTTL,
	}
}

// ListItems serves a page of the inventory, reading through the snapshot cache.
// The cache generation is taken before the database read, so a page loaded
// while an advance commits is stored under the superseded generation.
func (uc *InventoryUseCase) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	limit, offset = NormalizePage(limit, offset)

	generation, err := uc.cache.InventoryGeneration(ctx)
	if err != nil {
		uc.log.Warn("Failed to read inventory generation, bypassing cache", "error", err)
		return uc.itemRepo.ListItems(ctx, limit, offset)
	}

	items, found, err := uc.cache.GetInventorySnapshot(ctx, generation, limit, offset)
	if err != nil {
		uc.log.Warn("Failed to read inventory snapshot", "error", err)
	} else if found {
		return items, nil
	}

	items, err = uc.itemRepo.ListItems(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetInventorySnapshot(ctx, generation, limit, offset, items, uc.snapshotTTL); err != nil {
		uc.log.Warn("Failed to store inventory snapshot", "error", err)
	}

	return items, nil
}

func (uc *InventoryUseCase) GetItem(ctx context.Context, id string) (*inventory.Item, error) {
	return uc.itemRepo.GetItemByID(ctx, id)
}

func (uc *InventoryUseCase) RemoveItem(ctx context.Context, id string) error {
	if err := uc.itemRepo.DeleteItem(ctx, id); err != nil {
		return err
	}

	if err := uc.cache.InvalidateInventory(ctx); err != nil {
		uc.log.Warn("Failed to invalidate inventory cache", "error", err, "item_id", id)
	}
	RefreshInventoryMetrics(ctx, uc.itemRepo, uc.metrics, uc.log)

	uc.log.Info("Removed item", "item_id", id)
	return nil
}

type InventoryState struct {
	State   *simulation.State
	Summary inventory.Summary
}

func (uc *InventoryUseCase) GetState(ctx context.Context) (*InventoryState, error) {
	state, err := uc.itemRepo.GetSimulationState(ctx)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.ListAllItems(ctx)
	if err != nil {
		return nil, err
	}

	return &InventoryState{
		State:   state,
		Summary: inventory.Summarize(items),
	}, nil
}

// RefreshInventoryMetrics recomputes the inventory gauges from storage after a
// write outside the advance path. Failures only leave the gauges stale.
func RefreshInventoryMetrics(ctx context.Context, repo ports.ItemRepository, metrics ports.SimulationMetrics, log *logger.Logger) {
	items, err := repo.ListAllItems(ctx)
	if err != nil {
		log.Warn("Failed to refresh inventory metrics", "error", err)
		return
	}
	metrics.UpdateInventory(inventory.Summarize(items))
}

// NormalizePage applies the default and maximum page size.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
