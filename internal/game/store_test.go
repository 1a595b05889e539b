package game

import (
	"errors"
	"slices"
	"testing"
)

func TestSaveGateDropsStaleFrames(t *testing.T) {
	var g saveGate
	var written []uint64
	save := func(frame uint64) error {
		return g.run(frame, func() error {
			written = append(written, frame)
			return nil
		})
	}

	for _, frame := range []uint64{10, 5, 10, 12, 11} {
		if err := save(frame); err != nil {
			t.Fatalf("save(%d): %v", frame, err)
		}
	}

	if want := []uint64{10, 10, 12}; !slices.Equal(written, want) {
		t.Errorf("Written frames = %v, want %v", written, want)
	}
}

func TestSaveGateKeepsPositionOnError(t *testing.T) {
	var g saveGate
	boom := errors.New("redis down")

	if err := g.run(7, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Expected the save error, got %v", err)
	}
	called := false
	if err := g.run(3, func() error { called = true; return nil }); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("A failed write should not block an older frame from being stored")
	}
}
