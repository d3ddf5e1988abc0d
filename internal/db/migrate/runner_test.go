package migrate

import (
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/joedev/portfolio-api/internal/db"
)

func TestRun_RequiresDSN(t *testing.T) {
	if err := Run("", "up"); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestRun_RejectsUnknownDirection(t *testing.T) {
	err := Run("postgres://localhost/contacts", "sideways")
	if err == nil || !strings.Contains(err.Error(), "direction") {
		t.Fatalf("expected direction error, got %v", err)
	}
}

func TestMigrationFS_PairsUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(db.MigrationFS, "migrations")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Errorf("expected matching up/down migrations, got %d up and %d down", ups, downs)
	}
}

func TestRun_UpAgainstDatabase(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	if err := Run(dsn, "up"); err != nil {
		t.Fatalf("Run up: %v", err)
	}
	// Second run is a no-op.
	if err := Run(dsn, "up"); err != nil {
		t.Fatalf("Run up again: %v", err)
	}
}
