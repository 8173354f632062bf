package inventory

import (
	"fmt"

	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
)

// AdvanceOneDay ages every item by one day in place and returns the same slice.
func AdvanceOneDay(items []*Item) []*Item {
	for _, item := range items {
		item.SellIn, item.Quality = Step(item.Category, item.SellIn, item.Quality)
	}
	return items
}

type Inventory struct {
	items []*Item
}

func NewInventory(items []*Item) (*Inventory, error) {
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w at index %d", domainErrors.ErrInvalidItem, i)
		}
	}

	return &Inventory{items: items}, nil
}

func (inv *Inventory) UpdateQuality() []*Item {
	return AdvanceOneDay(inv.items)
}

func (inv *Inventory) Items() []*Item {
	return inv.items
}

type Snapshot struct {
	Day   int         `json:"day"`
	Items []ItemState `json:"items"`
}

// Simulate runs days day-steps over items and returns one snapshot per day,
// starting with day 0 for the untouched input. Items are mutated in place.
func Simulate(items []*Item, days int) []Snapshot {
	if days < 0 {
		days = 0
	}

	snapshots := make([]Snapshot, 0, days+1)
	snapshots = append(snapshots, snapshotOf(0, items))

	for day := 1; day <= days; day++ {
		AdvanceOneDay(items)
		snapshots = append(snapshots, snapshotOf(day, items))
	}

	return snapshots
}

func snapshotOf(day int, items []*Item) Snapshot {
	states := make([]ItemState, 0, len(items))
	for _, item := range items {
		states = append(states, item.State())
	}
	return Snapshot{Day: day, Items: states}
}

type Summary struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"by_category"`
	Expired    int              `json:"expired"`
	Worthless  int              `json:"worthless"`
}

func Summarize(items []*Item) Summary {
	summary := Summary{
		ByCategory: make(map[Category]int, len(Categories)),
	}

	for _, category := range Categories {
		summary.ByCategory[category] = 0
	}

	for _, item := range items {
		summary.Total++
		summary.ByCategory[item.Category]++
		if item.IsExpired() {
			summary.Expired++
		}
		if item.IsWorthless() {
			summary.Worthless++
		}
	}

	return summary
}
