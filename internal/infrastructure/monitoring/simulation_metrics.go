package monitoring

import (
	"time"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
)

// SimulationRecorder reports engine activity to the Prometheus collectors.
type SimulationRecorder struct{}

func NewSimulationRecorder() *SimulationRecorder {
	return &SimulationRecorder{}
}

func (SimulationRecorder) RecordAdvance(trigger simulation.Trigger, days int, duration time.Duration) {
	SimulationAdvancesTotal.WithLabelValues(string(trigger)).Inc()
	SimulationDaysAdvancedTotal.Add(float64(days))
	SimulationAdvanceDuration.WithLabelValues(string(trigger)).Observe(duration.Seconds())
}

func (SimulationRecorder) RecordAdvanceFailure(trigger simulation.Trigger, reason string) {
	SimulationAdvanceFailuresTotal.WithLabelValues(string(trigger), reason).Inc()
}

func (SimulationRecorder) UpdateInventory(summary inventory.Summary) {
	for category, count := range summary.ByCategory {
		InventoryItems.WithLabelValues(string(category)).Set(float64(count))
	}
	InventoryItemsExpired.Set(float64(summary.Expired))
	InventoryItemsWorthless.Set(float64(summary.Worthless))
}

func (SimulationRecorder) RecordRejectedItem(category inventory.Category) {
	InventoryItemsRejectedTotal.WithLabelValues(string(category)).Inc()
}
