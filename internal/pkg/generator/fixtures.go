package generator

import "github.com/yuzvak/stockdecay-service/internal/domain/inventory"

type fixtureItem struct {
	name    string
	sellIn  int
	quality int
}

var classicFixture = []fixtureItem{
	{"+5 Dexterity Vest", 10, 20},
	{inventory.NameAgedBrie, 2, 0},
	{"Elixir of the Mongoose", 5, 7},
	{inventory.NameSulfuras, 0, 80},
	{inventory.NameSulfuras, -1, 80},
	{inventory.NameBackstagePass, 15, 20},
	{inventory.NameBackstagePass, 10, 49},
	{inventory.NameBackstagePass, 5, 49},
	{"Conjured Mana Cake", 3, 6},
}

// ClassicItems returns a fresh copy of the nine-item reference inventory.
func ClassicItems() []*inventory.Item {
	items := make([]*inventory.Item, 0, len(classicFixture))
	for _, entry := range classicFixture {
		item, err := inventory.NewItem(entry.name, entry.sellIn, entry.quality)
		if err != nil {
			panic(err)
		}
		items = append(items, item)
	}
	return items
}
