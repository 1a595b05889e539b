package game

import (
	"slices"
	"testing"
)

func TestMakePairOrdersNumbers(t *testing.T) {
	if got := MakePair(9, 2); got != (Pair{A: 2, B: 9}) {
		t.Errorf("MakePair(9, 2) = %+v", got)
	}
	if MakePair(4, 11) != MakePair(11, 4) {
		t.Error("MakePair should not depend on argument order")
	}
}

func TestNeighborsWithinReach(t *testing.T) {
	p := DefaultParams()
	s := setupBalls(p, map[int]Vec2{
		CueBall: NewVec2(500, 500),
		1:       NewVec2(550, 500), // 50 < 60
		2:       NewVec2(700, 500),
		3:       NewVec2(500, 560), // exactly at reach, excluded
	})

	var nb Neighbors
	nb.Rebuild(s)

	if got := nb.Pairs(); !slices.Equal(got, []Pair{{A: 0, B: 1}}) {
		t.Fatalf("Pairs = %+v, want [{0 1}]", got)
	}
	if !slices.Equal(nb.Of(0), []int{1}) || !slices.Equal(nb.Of(1), []int{0}) {
		t.Errorf("Neighbors not symmetric: of(0)=%v of(1)=%v", nb.Of(0), nb.Of(1))
	}
	if len(nb.Of(2)) != 0 || len(nb.Of(3)) != 0 {
		t.Errorf("Distant balls should have no neighbors: of(2)=%v of(3)=%v", nb.Of(2), nb.Of(3))
	}
}

func TestNeighborsRebuildOnRack(t *testing.T) {
	p := DefaultParams()
	table := NewTable(p)
	s := NewBallSet(p)
	table.Rack(s)

	var nb Neighbors
	nb.Rebuild(s)
	first := slices.Clone(nb.Pairs())
	nb.Rebuild(s)

	if !slices.Equal(first, nb.Pairs()) {
		t.Fatalf("Rebuild is not idempotent: %d vs %d pairs", len(first), len(nb.Pairs()))
	}

	seen := make(map[Pair]bool)
	for _, pair := range nb.Pairs() {
		if pair.A >= pair.B {
			t.Errorf("Pair %+v is not ordered", pair)
		}
		if seen[pair] {
			t.Errorf("Pair %+v recorded twice", pair)
		}
		seen[pair] = true
		if !slices.Contains(nb.Of(pair.A), pair.B) || !slices.Contains(nb.Of(pair.B), pair.A) {
			t.Errorf("Pair %+v missing from a neighbor list", pair)
		}
	}

	// The cue ball sits far from the rack.
	if len(nb.Of(CueBall)) != 0 {
		t.Errorf("Cue ball has neighbors on the break: %v", nb.Of(CueBall))
	}

	s.Remove(5)
	nb.Rebuild(s)
	for _, pair := range nb.Pairs() {
		if pair.A == 5 || pair.B == 5 {
			t.Errorf("Removed ball 5 still paired: %+v", pair)
		}
	}
}
