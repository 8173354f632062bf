// Package inventory holds the stock items and the rules that age them by one day.
// It is pure: no I/O, no logging, no infrastructure imports.
package inventory

// Category is the behavioural class of an item. It is derived from the item name
// and never changes for the lifetime of the item.
type Category string

const (
	CategoryNormal      Category = "normal"
	CategoryImproving   Category = "improving"
	CategoryEventTicket Category = "event_ticket"
	CategoryLegendary   Category = "legendary"
)

const (
	NameAgedBrie      = "Aged Brie"
	NameBackstagePass = "Backstage passes to a TAFKAL80ETC concert"
	NameSulfuras      = "Sulfuras, Hand of Ragnaros"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryNormal,
	CategoryImproving,
	CategoryEventTicket,
	CategoryLegendary,
}

// Classify maps an item name to its category by exact match.
func Classify(name string) Category {
	switch name {
	case NameAgedBrie:
		return CategoryImproving
	case NameBackstagePass:
		return CategoryEventTicket
	case NameSulfuras:
		return CategoryLegendary
	default:
		return CategoryNormal
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryNormal, CategoryImproving, CategoryEventTicket, CategoryLegendary:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
