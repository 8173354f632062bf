package postgres

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
)

func TestMigrationNamesAreOrdered(t *testing.T) {
	names, err := migrationNames()
	if err != nil {
		t.Fatalf("migration names: %v", err)
	}
	if len(names) == 0 || names[0] != "001_init.up.sql" {
		t.Fatalf("expected 001_init.up.sql first, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("migrations out of order: %v", names)
		}
	}
}

func TestItemConstraintsMatchDomainRules(t *testing.T) {
	content, err := fs.ReadFile(migrationFiles, "migrations/002_item_quality_constraints.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	sql := string(content)

	want := []string{
		fmt.Sprintf("category = '%s' AND quality = %d", inventory.CategoryLegendary, inventory.LegendaryQuality),
		fmt.Sprintf("category <> '%s' AND quality BETWEEN %d AND %d", inventory.CategoryLegendary, inventory.MinQuality, inventory.MaxQuality),
	}
	for _, category := range inventory.Categories {
		want = append(want, fmt.Sprintf("'%s'", category))
	}

	for _, fragment := range want {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("expected constraint fragment %q in migration", fragment)
		}
	}
}
