package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/pkg/generator"
	"github.com/yuzvak/stockdecay-service/internal/pkg/logger"
)

func main() {
	days := flag.Int("days", 2, "Number of days to simulate")
	file := flag.String("file", "", "JSON file with [{name, sell_in, quality}] items")
	random := flag.Int("random", 0, "Simulate this many random items instead of the classic inventory")
	seed := flag.Int64("seed", 1, "Seed for -random")
	flag.Parse()

	log := logger.NewLoggerWithOutput(os.Stderr)

	if *days < 0 {
		log.Fatal("Days cannot be negative", "days", *days)
	}

	items, err := loadItems(*file, *random, *seed)
	if err != nil {
		log.Fatal("Failed to load items", "error", err)
	}

	inv, err := inventory.NewInventory(items)
	if err != nil {
		log.Fatal("Invalid inventory", "error", err)
	}

	if err := render(os.Stdout, inventory.Simulate(inv.Items(), *days)); err != nil {
		log.Fatal("Failed to write output", "error", err)
	}
}

type fileItem struct {
	Name    string `json:"name"`
	SellIn  int    `json:"sell_in"`
	Quality int    `json:"quality"`
}

func loadItems(path string, random int, seed int64) ([]*inventory.Item, error) {
	switch {
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return decodeItems(f)
	case random > 0:
		return generator.NewSeededItemGenerator(seed).GenerateItems(random), nil
	default:
		return generator.ClassicItems(), nil
	}
}

func decodeItems(r io.Reader) ([]*inventory.Item, error) {
	var raw []fileItem
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}

	items := make([]*inventory.Item, 0, len(raw))
	for i, fi := range raw {
		item, err := inventory.NewItem(fi.Name, fi.SellIn, fi.Quality)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, fi.Name, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func render(w io.Writer, snapshots []inventory.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, snapshot := range snapshots {
		fmt.Fprintf(tw, "-------- day %d --------\n", snapshot.Day)
		fmt.Fprintln(tw, "name\tcategory\tsellIn\tquality")
		for _, item := range snapshot.Items {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", item.Name, item.Category, item.SellIn, item.Quality)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
