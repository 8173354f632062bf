package simulation

import (
	"time"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
)

type Trigger string

const (
	TriggerScheduler Trigger = "scheduler"
	TriggerManual    Trigger = "manual"
)

const MaxDaysPerAdvance = 365

// State is the progress of the stored inventory through simulated time.
type State struct {
	CurrentDay     int
	LastAdvancedAt *time.Time
}

// AdvancedOn reports whether the last advance happened on the same UTC
// calendar day as now.
func (s *State) AdvancedOn(now time.Time) bool {
	if s.LastAdvancedAt == nil {
		return false
	}
	last := s.LastAdvancedAt.UTC()
	now = now.UTC()
	return last.Year() == now.Year() && last.YearDay() == now.YearDay()
}

// DayRecord is one row of the advance history.
type DayRecord struct {
	Day          int
	AdvancedAt   time.Time
	ItemsCount   int
	ExpiredCount int
	Trigger      Trigger
}

func NewDayRecord(day int, advancedAt time.Time, summary inventory.Summary, trigger Trigger) *DayRecord {
	return &DayRecord{
		Day:          day,
		AdvancedAt:   advancedAt,
		ItemsCount:   summary.Total,
		ExpiredCount: summary.Expired,
		Trigger:      trigger,
	}
}

type DayAdvancedEvent struct {
	FromDay    int               `json:"from_day"`
	ToDay      int               `json:"to_day"`
	AdvancedAt time.Time         `json:"advanced_at"`
	Trigger    Trigger           `json:"trigger"`
	Summary    inventory.Summary `json:"summary"`
}

type AdvanceResult struct {
	FromDay    int               `json:"from_day"`
	ToDay      int               `json:"to_day"`
	AdvancedAt time.Time         `json:"advanced_at"`
	Trigger    Trigger           `json:"trigger"`
	Summary    inventory.Summary `json:"summary"`
}
