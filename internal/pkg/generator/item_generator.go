package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
)

type ItemGenerator struct {
	random *rand.Rand
}

func NewItemGenerator() *ItemGenerator {
	return NewSeededItemGenerator(time.Now().UTC().UnixNano())
}

func NewSeededItemGenerator(seed int64) *ItemGenerator {
	return &ItemGenerator{
		random: rand.New(rand.NewSource(seed)),
	}
}

func (g *ItemGenerator) GenerateItemID() string {
	return uuid.NewString()
}

func (g *ItemGenerator) GenerateName() string {
	adjectives := []string{
		"Vintage", "Rusty", "Elegant", "Enchanted", "Rustic",
		"Cursed", "Polished", "Luxurious", "Handcrafted", "Ancient",
	}

	nouns := []string{
		"Dagger", "Cloak", "Shield", "Ring", "Amulet",
		"Potion", "Helm", "Bow", "Lantern", "Scroll",
	}

	adjective := adjectives[g.random.Intn(len(adjectives))]
	noun := nouns[g.random.Intn(len(nouns))]

	return fmt.Sprintf("%s %s", adjective, noun)
}

// GenerateItem returns a valid item. Roughly one in four items is one of the
// special names so every category shows up in a generated batch.
func (g *ItemGenerator) GenerateItem() *inventory.Item {
	sellIn := g.random.Intn(31) - 5

	var item *inventory.Item
	var err error
	switch g.random.Intn(12) {
	case 0:
		item, err = inventory.NewItem(inventory.NameAgedBrie, sellIn, g.random.Intn(inventory.MaxQuality+1))
	case 1:
		item, err = inventory.NewItem(inventory.NameBackstagePass, sellIn, g.random.Intn(inventory.MaxQuality+1))
	case 2:
		item, err = inventory.NewItem(inventory.NameSulfuras, sellIn, inventory.LegendaryQuality)
	default:
		item, err = inventory.NewItem(g.GenerateName(), sellIn, g.random.Intn(inventory.MaxQuality+1))
	}
	if err != nil {
		// quality is drawn from the legal range for each branch
		panic(fmt.Sprintf("generator produced invalid item: %v", err))
	}

	item.ID = g.GenerateItemID()
	return item
}

func (g *ItemGenerator) GenerateItems(count int) []*inventory.Item {
	items := make([]*inventory.Item, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, g.GenerateItem())
	}
	return items
}
