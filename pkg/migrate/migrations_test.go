package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plissemesh/production-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestOrderItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_order_line_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS order_line_items",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CHECK (width_cm > 0)",
		"CHECK (height_cm > 0)",
		"frame_status IN ('pending', 'complete')",
		"quality_status IN ('pending', 'ready_to_package', 'packed')",
		"ux_order_items_order_external",
		"DROP TABLE IF EXISTS order_line_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationHasStoreScopedUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"ux_orders_store_shopify_id",
		"store IN ('nl', 'de', 'uk', 'fr', 'dk')",
		"source IN ('shopify', 'manual')",
		"status IN ('pending', 'in_progress', 'completed')",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
