package tuning

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/eightball/internal/database"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/migrations"
)

// testDB connects to TEST_DATABASE_URL and applies migrations, or skips.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := migrations.RunMigrations(url, "../../migrations"); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	db, err := database.Connect(url)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetStoresOverride(t *testing.T) {
	db := testDB(t)
	base := game.DefaultParams()

	var before string
	if err := db.Get(&before, `SELECT value FROM runtime_config WHERE key='friction'`); err != nil {
		t.Fatalf("Seed row missing: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`UPDATE runtime_config SET value=$1 WHERE key='friction'`, before)
	})

	if err := Set(db, base, "friction", "0.975"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(db, base, "friction", "slippery"); err == nil {
		t.Error("Expected a type error")
	}
	if err := Set(db, base, "no_such_key", "1"); err == nil {
		t.Error("Expected an unknown key error")
	}

	params, err := Load(db, base)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if params.Friction != 0.975 {
		t.Errorf("Friction = %v, want 0.975", params.Friction)
	}
}
