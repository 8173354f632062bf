package commands

import (
	"context"
	"errors"

	"github.com/yuzvak/stockdecay-service/internal/application/ports"
	"github.com/yuzvak/stockdecay-service/internal/application/use_cases"
	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/pkg/clock"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

type AddItemCommand struct {
	Name    string `json:"name"`
	SellIn  int    `json:"sell_in"`
	Quality int    `json:"quality"`
}

type IDGenerator interface {
	GenerateItemID() string
}

type AddItemHandler struct {
	itemRepo ports.ItemRepository
	cache    ports.Cache
	metrics  ports.SimulationMetrics
	ids      IDGenerator
	clock    clock.Clock
	log      *logger.Logger
}

func NewAddItemHandler(
	itemRepo ports.ItemRepository,
	cache ports.Cache,
	metrics ports.SimulationMetrics,
	ids IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *AddItemHandler {
	return &AddItemHandler{
		itemRepo: itemRepo,
		cache:    cache,
		metrics:  metrics,
		ids:      ids,
		clock:    clk,
		log:      log,
	}
}

func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*inventory.Item, error) {
	item, err := inventory.NewItem(cmd.Name, cmd.SellIn, cmd.Quality)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidQuality) {
			h.metrics.RecordRejectedItem(inventory.Classify(cmd.Name))
		}
		h.log.Warn("Rejected item", "error", err, "name", cmd.Name, "quality", cmd.Quality)
		return nil, err
	}

	now := h.clock.Now()
	item.ID = h.ids.GenerateItemID()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := h.itemRepo.CreateItem(ctx, item); err != nil {
		h.log.Error("Failed to store item", "error", err, "name", cmd.Name)
		return nil, err
	}

	if err := h.cache.InvalidateInventory(ctx); err != nil {
		h.log.Warn("Failed to invalidate inventory cache", "error", err, "item_id", item.ID)
	}
	use_cases.RefreshInventoryMetrics(ctx, h.itemRepo, h.metrics, h.log)

	h.log.Info("Added item",
		"item_id", item.ID,
		"name", item.Name,
		"category", string(item.Category),
		"sell_in", item.SellIn,
		"quality", item.Quality,
	)

	return item, nil
}
