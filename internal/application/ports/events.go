package ports

import (
	"context"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
)

type EventPublisher interface {
	PublishDayAdvanced(ctx context.Context, event simulation.DayAdvancedEvent) error
	Close() error
}

type SimulationMetrics interface {
	RecordAdvance(trigger simulation.Trigger, days int, duration time.Duration)
	RecordAdvanceFailure(trigger simulation.Trigger, reason string)
	UpdateInventory(summary inventory.Summary)
	RecordRejectedItem(category inventory.Category)
}
