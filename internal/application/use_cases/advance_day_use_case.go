package use_cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/application/ports"
	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/pkg/clock"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

const advanceLockKey = "simulation:advance"

type AdvanceDayUseCase struct {
	itemRepo  ports.ItemRepository
	cache     ports.Cache
	publisher ports.EventPublisher
	metrics   ports.SimulationMetrics
	clock     clock.Clock
	log       *logger.Logger

	lockTimeout time.Duration
}

func NewAdvanceDayUseCase(
	itemRepo ports.ItemRepository,
	cache ports.Cache,
	publisher ports.EventPublisher,
	metrics ports.SimulationMetrics,
	clk clock.Clock,
	log *logger.Logger,
	lockTimeout time.Duration,
) *AdvanceDayUseCase {
	return &AdvanceDayUseCase{
		itemRepo:    itemRepo,
		cache:       cache,
		publisher:   publisher,
		metrics:     metrics,
		clock:       clk,
		log:         log,
		lockTimeout: lockTimeout,
	}
}

// Advance ages the stored inventory by days day-steps, unconditionally.
func (uc *AdvanceDayUseCase) Advance(ctx context.Context, days int) (*simulation.AdvanceResult, error) {
	return uc.run(ctx, days, simulation.TriggerManual, false)
}

// AdvanceIfDue ages the inventory by one day unless a day was already
// advanced on the current UTC calendar day.
func (uc *AdvanceDayUseCase) AdvanceIfDue(ctx context.Context) (*simulation.AdvanceResult, error) {
	return uc.run(ctx, 1, simulation.TriggerScheduler, true)
}

func (uc *AdvanceDayUseCase) run(ctx context.Context, days int, trigger simulation.Trigger, requireDue bool) (*simulation.AdvanceResult, error) {
	if days < 1 || days > simulation.MaxDaysPerAdvance {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", domainErrors.ErrInvalidDays, days, simulation.MaxDaysPerAdvance)
	}

	locked, err := uc.cache.DistributedLock(ctx, advanceLockKey, uc.lockTimeout)
	if err != nil {
		uc.metrics.RecordAdvanceFailure(trigger, "lock_error")
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		uc.metrics.RecordAdvanceFailure(trigger, "locked")
		return nil, domainErrors.ErrAdvanceInProgress
	}
	defer func() {
		if err := uc.cache.ReleaseLock(ctx, advanceLockKey); err != nil {
			uc.log.Error("Failed to release lock", "error", err, "lock_key", advanceLockKey)
		}
	}()

	start := uc.clock.Now()

	result, items, err := uc.advanceInTx(ctx, days, trigger, requireDue, start)
	if err != nil {
		if errors.Is(err, domainErrors.ErrDayAlreadyAdvanced) {
			return nil, err
		}
		uc.metrics.RecordAdvanceFailure(trigger, "transaction")
		return nil, err
	}

	if err := uc.cache.InvalidateInventory(ctx); err != nil {
		uc.log.Warn("Failed to invalidate inventory cache", "error", err)
	}

	event := simulation.DayAdvancedEvent{
		FromDay:    result.FromDay,
		ToDay:      result.ToDay,
		AdvancedAt: result.AdvancedAt,
		Trigger:    trigger,
		Summary:    result.Summary,
	}
	if err := uc.publisher.PublishDayAdvanced(ctx, event); err != nil {
		uc.log.Warn("Failed to publish day advanced event", "error", err, "to_day", result.ToDay)
	}

	uc.metrics.RecordAdvance(trigger, days, uc.clock.Since(start))
	uc.metrics.UpdateInventory(inventory.Summarize(items))

	uc.log.Info("Advanced inventory",
		"from_day", result.FromDay,
		"to_day", result.ToDay,
		"trigger", string(trigger),
		"items", result.Summary.Total,
		"expired", result.Summary.Expired,
	)

	return result, nil
}

func (uc *AdvanceDayUseCase) advanceInTx(
	ctx context.Context,
	days int,
	trigger simulation.Trigger,
	requireDue bool,
	now time.Time,
) (result *simulation.AdvanceResult, items []*inventory.Item, err error) {
	txRepo, err := uc.itemRepo.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := txRepo.RollbackTx(ctx); rbErr != nil {
				uc.log.Error("Failed to rollback advance", "error", rbErr)
			}
		}
	}()

	state, err := txRepo.GetSimulationState(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load simulation state: %w", err)
	}

	if requireDue && state.AdvancedOn(now) {
		return nil, nil, domainErrors.ErrDayAlreadyAdvanced
	}

	items, err = txRepo.ListAllItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load items: %w", err)
	}

	inv, err := inventory.NewInventory(items)
	if err != nil {
		return nil, nil, err
	}

	var summary inventory.Summary
	for d := 1; d <= days; d++ {
		inv.UpdateQuality()
		summary = inventory.Summarize(inv.Items())

		record := simulation.NewDayRecord(state.CurrentDay+d, now, summary, trigger)
		if err = txRepo.RecordDay(ctx, record); err != nil {
			return nil, nil, fmt.Errorf("failed to record day %d: %w", record.Day, err)
		}
	}

	for _, item := range items {
		item.UpdatedAt = now
	}

	if err = txRepo.UpdateItems(ctx, items); err != nil {
		return nil, nil, fmt.Errorf("failed to store items: %w", err)
	}

	if err = txRepo.CommitTx(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domainErrors.ErrTransactionFailed, err)
	}

	return &simulation.AdvanceResult{
		FromDay:    state.CurrentDay,
		ToDay:      state.CurrentDay + days,
		AdvancedAt: now,
		Trigger:    trigger,
		Summary:    summary,
	}, items, nil
}
