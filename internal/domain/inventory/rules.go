package inventory

const (
	ticketFirstBoost  = 10
	ticketSecondBoost = 5
	ticketEventDay    = 0
)

// Step applies one day of the category's rule and returns the new
// (sellIn, quality) pair. Quality is clamped after every arithmetic step.
// Only the four declared categories age; any other value, including the zero
// Category of an Item built without NewItem, is returned unchanged.
func Step(category Category, sellIn, quality int) (int, int) {
	switch category {
	case CategoryLegendary:
		return sellIn, clampQuality(category, quality)

	case CategoryNormal:
		quality = clampQuality(category, quality-1)
		sellIn--
		if sellIn < 0 {
			quality = clampQuality(category, quality-1)
		}
		return sellIn, quality

	case CategoryImproving:
		quality = clampQuality(category, quality+1)
		sellIn--
		if sellIn < 0 {
			quality = clampQuality(category, quality+1)
		}
		return sellIn, quality

	case CategoryEventTicket:
		// thresholds use the value before this day's decrement
		switch {
		case sellIn <= ticketEventDay:
			quality = MinQuality
		case sellIn <= ticketSecondBoost:
			quality = clampQuality(category, quality+3)
		case sellIn <= ticketFirstBoost:
			quality = clampQuality(category, quality+2)
		default:
			quality = clampQuality(category, quality+1)
		}
		return sellIn - 1, quality
	}

	return sellIn, quality
}

func clampQuality(category Category, quality int) int {
	if category == CategoryLegendary {
		return LegendaryQuality
	}
	if quality < MinQuality {
		return MinQuality
	}
	if quality > MaxQuality {
		return MaxQuality
	}
	return quality
}
