package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestManager() *TableManager {
	return NewTableManager(nil, ManagerConfig{
		Params:      DefaultParams(),
		IdleTimeout: time.Minute,
		InputQueue:  16,
	})
}

func TestTableLifecycle(t *testing.T) {
	tm := newTestManager()
	ctx := context.Background()

	table, err := tm.Create(ctx, "Ann", "Ben")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tm.Count() != 1 {
		t.Errorf("Count = %d, want 1", tm.Count())
	}

	snap, err := tm.Snapshot(ctx, table.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.HUD.Players[0].Name != "Ann" || snap.HUD.Players[1].Name != "Ben" {
		t.Errorf("Unexpected players: %+v", snap.HUD.Players)
	}
	if len(snap.Balls) != NumBalls {
		t.Errorf("Expected a full rack, got %d balls", len(snap.Balls))
	}

	if err := tm.Submit(table.ID, InputEvent{Kind: InputMove, Pointer: NewVec2(400, 600)}); err != nil {
		t.Errorf("Submit: %v", err)
	}

	if err := tm.Close(table.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if tm.Count() != 0 {
		t.Errorf("Count after close = %d", tm.Count())
	}
	if _, err := tm.Get(table.ID); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Get after close: %v", err)
	}
	if err := tm.Submit(table.ID, InputEvent{Kind: InputMove}); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Submit after close: %v", err)
	}
	if _, err := tm.Snapshot(ctx, table.ID); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Snapshot without a cache: %v", err)
	}
}

func TestCreateRequiresNames(t *testing.T) {
	tm := newTestManager()
	if _, err := tm.Create(context.Background(), "Ann", ""); err == nil {
		t.Error("Expected an error for a missing player name")
	}
	if tm.Count() != 0 {
		t.Errorf("Count = %d, want 0", tm.Count())
	}
}

func TestTableLoopEmitsFrames(t *testing.T) {
	tm := newTestManager()
	frames := make(chan TableEvent, 8)
	tm.SetSink(func(ev TableEvent) {
		select {
		case frames <- ev:
		default:
		}
	})

	table, err := tm.Create(context.Background(), "Ann", "Ben")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer tm.Shutdown()

	select {
	case ev := <-frames:
		if ev.Type != EventFrame || ev.TableID != table.ID || ev.Snapshot == nil {
			t.Errorf("Unexpected event: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No frame within 2s")
	}
}

func TestReapIdleTables(t *testing.T) {
	tm := newTestManager()
	ctx := context.Background()
	idle, _ := tm.Create(ctx, "Ann", "Ben")
	busy, _ := tm.Create(ctx, "Cat", "Dan")
	defer tm.Shutdown()

	idle.lastInput.Store(time.Now().Add(-2 * time.Minute).UnixNano())

	if closed := tm.reapIdle(time.Now()); closed != 1 {
		t.Fatalf("Closed %d tables, want 1", closed)
	}
	if _, err := tm.Get(idle.ID); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("Idle table still live: %v", err)
	}
	if _, err := tm.Get(busy.ID); err != nil {
		t.Errorf("Busy table was reaped: %v", err)
	}
}
