package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playmatatu/eightball/internal/game"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TABLE_IDLE_MINUTES", "5")
	t.Setenv("INPUT_QUEUE_SIZE", "not-a-number")
	t.Setenv("MIGRATE_ON_START", "false")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.TableIdleTimeout() != 5*time.Minute {
		t.Errorf("TableIdleTimeout = %v, want 5m", cfg.TableIdleTimeout())
	}
	if cfg.InputQueueSize != 64 {
		t.Errorf("Bad integer should fall back to the default, got %d", cfg.InputQueueSize)
	}
	if cfg.MigrateOnStart {
		t.Error("MIGRATE_ON_START=false was ignored")
	}
}

func TestLoadPhysicsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	data := "friction: 0.98\nsub_steps: 12\ngame_over_delay: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	params, err := LoadPhysics(path)
	if err != nil {
		t.Fatalf("LoadPhysics: %v", err)
	}

	want := game.DefaultParams()
	want.Friction = 0.98
	want.SubSteps = 12
	want.GameOverDelay = 2 * time.Second
	if params != want {
		t.Errorf("Params = %+v\nwant %+v", params, want)
	}
}

func TestLoadPhysicsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	if err := os.WriteFile(path, []byte("ball_restitution: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPhysics(path); !errors.Is(err, game.ErrInvalidParams) {
		t.Errorf("Expected ErrInvalidParams, got %v", err)
	}
}

func TestLoadPhysicsMissingFile(t *testing.T) {
	if _, err := LoadPhysics(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing explicit file")
	}
}
