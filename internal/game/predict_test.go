package game

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPredictStraightHit(t *testing.T) {
	p := DefaultParams()
	table := NewTable(p)
	s := setupBalls(p, map[int]Vec2{CueBall: NewVec2(500, 500), 1: NewVec2(700, 500)})

	pred, ok := Predict(s, table, p, NewVec2(400, 500))
	if !ok {
		t.Fatal("Expected a prediction")
	}

	if pred.Impact != ImpactBall || pred.Target != 1 {
		t.Fatalf("Expected to hit ball 1, got %s target=%d", pred.Impact, pred.Target)
	}
	if !near(pred.Distance, 160) || !near(pred.Point.X, 660) || !near(pred.Point.Y, 500) {
		t.Errorf("Ghost ball at (%.3f, %.3f) d=%.3f, want (660, 500) d=160", pred.Point.X, pred.Point.Y, pred.Distance)
	}
	if pred.StruckDirection == nil || !near(pred.StruckDirection.X, 1) || !near(pred.StruckDirection.Y, 0) {
		t.Errorf("Struck direction = %+v, want (1, 0)", pred.StruckDirection)
	}
	if pred.Deflection != nil {
		t.Errorf("A full hit should have no deflection, got %+v", *pred.Deflection)
	}
}

func TestPredictNinetyDegreeRule(t *testing.T) {
	p := DefaultParams()
	table := NewTable(p)
	s := setupBalls(p, map[int]Vec2{CueBall: NewVec2(500, 500), 1: NewVec2(700, 520)})

	pred, ok := Predict(s, table, p, NewVec2(400, 500))
	if !ok || pred.Impact != ImpactBall {
		t.Fatalf("Expected a ball hit, got %+v", pred)
	}

	wantT := 200 - math.Sqrt(1200)
	if !near(pred.Distance, wantT) {
		t.Errorf("Impact distance = %.6f, want %.6f", pred.Distance, wantT)
	}
	if pred.CueDirection == nil || pred.StruckDirection == nil {
		t.Fatal("Expected both outgoing directions")
	}

	struck, cue := *pred.StruckDirection, *pred.CueDirection
	if d := struck.Dot(cue); math.Abs(d) > 1e-9 {
		t.Errorf("Cue and struck paths not perpendicular: dot=%.9f", d)
	}
	if !near(struck.X, math.Sqrt(3)/2) || !near(struck.Y, 0.5) {
		t.Errorf("Struck direction = (%.4f, %.4f), want (0.866, 0.5)", struck.X, struck.Y)
	}
	if cue.Y >= 0 || cue.X <= 0 {
		t.Errorf("Cue should deflect up and forward, got (%.4f, %.4f)", cue.X, cue.Y)
	}
}

func TestPredictCushionOnly(t *testing.T) {
	p := DefaultParams()
	table := NewTable(p)
	s := setupBalls(p, map[int]Vec2{CueBall: NewVec2(500, 500), 1: NewVec2(300, 500)})

	// Aim straight up; ball 1 is off the ray.
	pred, ok := Predict(s, table, p, NewVec2(500, 600))
	if !ok {
		t.Fatal("Expected a prediction")
	}
	if pred.Impact != ImpactCushion || pred.Target != -1 {
		t.Fatalf("Expected a cushion hit, got %s target=%d", pred.Impact, pred.Target)
	}
	if !near(pred.Point.X, 500) || !near(pred.Point.Y, table.Bounds.MinY) {
		t.Errorf("Impact at (%.3f, %.3f), want (500, %.1f)", pred.Point.X, pred.Point.Y, table.Bounds.MinY)
	}
	if pred.Struck != nil || pred.Deflection != nil {
		t.Error("A cushion hit has no outgoing paths")
	}
}

func TestPredictIgnoresBallsBehind(t *testing.T) {
	p := DefaultParams()
	table := NewTable(p)
	s := setupBalls(p, map[int]Vec2{CueBall: NewVec2(500, 500), 1: NewVec2(300, 500)})

	pred, ok := Predict(s, table, p, NewVec2(400, 500))
	if !ok {
		t.Fatal("Expected a prediction")
	}
	if pred.Impact != ImpactCushion {
		t.Errorf("Ball behind the cue was hit: %+v", pred)
	}
	if !near(pred.Point.X, table.Bounds.MaxX) {
		t.Errorf("Impact x = %.3f, want %.3f", pred.Point.X, table.Bounds.MaxX)
	}
}

func TestPredictPointerOnCue(t *testing.T) {
	p := DefaultParams()
	s := setupBalls(p, map[int]Vec2{CueBall: NewVec2(500, 500)})

	if _, ok := Predict(s, NewTable(p), p, NewVec2(500.05, 500)); ok {
		t.Error("Pointer within the minimum aim distance should give no prediction")
	}
}

func TestPredictDoesNotMutate(t *testing.T) {
	p := DefaultParams()
	table := NewTable(p)
	s := NewBallSet(p)
	table.Rack(s)
	before := s.Balls()

	Predict(s, table, p, s.Cue().Position.Minus(NewVec2(100, 2)))

	after := s.Balls()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Ball %d changed: %+v -> %+v", before[i].Number, before[i], after[i])
		}
	}
}
