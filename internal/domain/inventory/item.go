package inventory

import (
	"fmt"
	"time"

	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
)

const (
	MinQuality       = 0
	MaxQuality       = 50
	LegendaryQuality = 80
)

type Item struct {
	ID        string
	Name      string
	SellIn    int
	Quality   int
	Category  Category
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem classifies name and validates quality against the category bounds.
// SellIn is never validated; any value, including negative, is accepted.
func NewItem(name string, sellIn, quality int) (*Item, error) {
	category := Classify(name)

	if err := ValidateQuality(category, quality); err != nil {
		return nil, err
	}

	return &Item{
		Name:     name,
		SellIn:   sellIn,
		Quality:  quality,
		Category: category,
	}, nil
}

// RestoreItem rebuilds a stored item, re-running the construction checks.
func RestoreItem(id, name string, sellIn, quality int, createdAt, updatedAt time.Time) (*Item, error) {
	item, err := NewItem(name, sellIn, quality)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", id, err)
	}

	item.ID = id
	item.CreatedAt = createdAt
	item.UpdatedAt = updatedAt
	return item, nil
}

func ValidateQuality(category Category, quality int) error {
	if quality < MinQuality {
		return fmt.Errorf("%w: quality cannot be negative: %d", domainErrors.ErrInvalidQuality, quality)
	}

	if category == CategoryLegendary {
		if quality != LegendaryQuality {
			return fmt.Errorf("%w: legendary items must have quality of %d, got %d", domainErrors.ErrInvalidQuality, LegendaryQuality, quality)
		}
		return nil
	}

	if quality > MaxQuality {
		return fmt.Errorf("%w: quality cannot exceed %d: %d", domainErrors.ErrInvalidQuality, MaxQuality, quality)
	}

	return nil
}

func (i *Item) IsExpired() bool {
	return i.SellIn < 0
}

func (i *Item) IsWorthless() bool {
	return i.Quality == MinQuality
}

func (i *Item) State() ItemState {
	return ItemState{
		Name:     i.Name,
		Category: i.Category,
		SellIn:   i.SellIn,
		Quality:  i.Quality,
	}
}

// ItemState is a value copy of an item at one point in a simulation.
type ItemState struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	SellIn   int      `json:"sell_in"`
	Quality  int      `json:"quality"`
}
