package simulation

import (
	"testing"
	"time"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
)

func TestStateAdvancedOn(t *testing.T) {
	last := time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state State
		now   time.Time
		want  bool
	}{
		{"never advanced", State{}, last, false},
		{"same day", State{LastAdvancedAt: &last}, last.Add(20 * time.Hour), true},
		{"next day", State{LastAdvancedAt: &last}, last.Add(23 * time.Hour), false},
		{"same yearday different year", State{LastAdvancedAt: &last}, last.AddDate(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.AdvancedOn(tt.now); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewDayRecord(t *testing.T) {
	at := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	summary := inventory.Summary{Total: 4, Expired: 1}

	record := NewDayRecord(3, at, summary, TriggerManual)
	if record.Day != 3 || record.ItemsCount != 4 || record.ExpiredCount != 1 || record.Trigger != TriggerManual {
		t.Fatalf("unexpected record: %+v", record)
	}
}
