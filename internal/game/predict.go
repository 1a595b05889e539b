package game

import "math"

const (
	struckPathLength = 50.0
	deflectionLength = 40.0
)

type ImpactType string

const (
	ImpactBall    ImpactType = "ball"
	ImpactCushion ImpactType = "cushion"
)

// Segment is a line for the render collaborator to draw.
type Segment struct {
	From Vec2 `json:"from"`
	To   Vec2 `json:"to"`
}

// Prediction is the aim guide for the current pointer position.
type Prediction struct {
	Direction Vec2       `json:"direction"`
	Distance  float64    `json:"distance"`
	Impact    ImpactType `json:"impact"`
	Point     Vec2       `json:"point"`  // cue ball center at first impact (ghost ball)
	Target    int        `json:"target"` // struck ball, -1 for a cushion
	AimLine   Segment    `json:"aim_line"`

	StruckDirection *Vec2    `json:"struck_direction,omitempty"`
	Struck          *Segment `json:"struck,omitempty"`
	CueDirection    *Vec2    `json:"cue_direction,omitempty"`
	Deflection      *Segment `json:"deflection,omitempty"`
}

// AimDirection returns the unit vector from the pointer toward the cue ball
// and the pointer's distance. It reports false when the pointer sits within
// minDist of the cue ball.
func AimDirection(cue, pointer Vec2, minDist float64) (Vec2, float64, bool) {
	delta := cue.Minus(pointer)
	dist := delta.Magnitude()
	if !delta.Finite() || dist < minDist {
		return Vec2{}, dist, false
	}
	return delta.Times(1 / dist), dist, true
}

// Predict finds the first obstruction on the aim ray and the resulting
// paths. It never mutates s.
func Predict(s *BallSet, t Table, p Params, pointer Vec2) (Prediction, bool) {
	cue := s.Cue()
	dir, _, ok := AimDirection(cue.Position, pointer, p.MinAimDistance)
	if !ok {
		return Prediction{}, false
	}

	hit := -1
	nearest := math.Inf(1)
	for _, n := range s.Live() {
		if n == CueBall {
			continue
		}
		b := s.Get(n)
		d, ok := rayIntersectCircle(cue.Position, dir, b.Position, cue.Radius+b.Radius)
		if ok && d > 0 && d < nearest {
			nearest = d
			hit = n
		}
	}

	wall := math.Max(rayToBounds(cue.Position, dir, t.Bounds), 0)
	if hit < 0 || wall <= nearest {
		point := cue.Position.Plus(dir.Times(wall))
		return Prediction{
			Direction: dir,
			Distance:  wall,
			Impact:    ImpactCushion,
			Point:     point,
			Target:    -1,
			AimLine:   Segment{From: cue.Position, To: point},
		}, true
	}

	target := s.Get(hit)
	point := cue.Position.Plus(dir.Times(nearest))
	struck := target.Position.Minus(point).Normalize()
	pred := Prediction{
		Direction:       dir,
		Distance:        nearest,
		Impact:          ImpactBall,
		Point:           point,
		Target:          hit,
		AimLine:         Segment{From: cue.Position, To: point},
		StruckDirection: &struck,
		Struck: &Segment{
			From: target.Position,
			To:   target.Position.Plus(struck.Times(struckPathLength)),
		},
	}

	// A dead-full hit leaves no tangent line.
	tangent := dir.Reject(struck)
	if tangent.MagnitudeSquared() > 1e-12 {
		cueDir := tangent.Normalize()
		pred.CueDirection = &cueDir
		pred.Deflection = &Segment{From: point, To: point.Plus(cueDir.Times(deflectionLength))}
	}
	return pred, true
}
