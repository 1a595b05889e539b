package game

import "math"

type ContactType string

const (
	ContactBall    ContactType = "ball"
	ContactCushion ContactType = "cushion"
	ContactPocket  ContactType = "pocket"
)

// Contact records a collision for the render collaborator (sound, effects).
type Contact struct {
	Type   ContactType `json:"type"`
	Ball   int         `json:"ball"`
	Target int         `json:"target"` // ball number or pocket id; -1 for a cushion
	Speed  float64     `json:"speed"`
}

// Resolver runs the fixed sub-step overlap correction loop.
type Resolver struct {
	Table  Table
	Params Params
}

func NewResolver(t Table, p Params) *Resolver {
	return &Resolver{Table: t, Params: p}
}

// Run resolves cushions and neighbor overlaps SubSteps times. Each sub-step
// visits balls in number order; a ball's cushion comes first, then every
// pair keyed by it as the lower number.
func (r *Resolver) Run(s *BallSet, nb *Neighbors) []Contact {
	var contacts []Contact
	var cushioned [NumBalls]bool
	pairs := nb.Pairs()
	for step := 0; step < r.Params.SubSteps; step++ {
		next := 0
		for n := 0; n < NumBalls; n++ {
			a := s.Get(n)
			if a.OnTable && r.ResolveCushion(a) && !cushioned[n] {
				cushioned[n] = true
				contacts = append(contacts, Contact{Type: ContactCushion, Ball: n, Target: -1, Speed: a.Speed()})
			}

			for ; next < len(pairs) && pairs[next].A == n; next++ {
				b := s.Get(pairs[next].B)
				if !a.OnTable || !b.OnTable {
					continue
				}
				if impulse := r.ResolveBalls(a, b); impulse > 0 {
					contacts = append(contacts, Contact{Type: ContactBall, Ball: n, Target: b.Number, Speed: impulse})
				}
			}
		}
	}

	// A push in the last sub-step can leave a ball past a cushion.
	for n := 0; n < NumBalls; n++ {
		if b := s.Get(n); b.OnTable {
			b.Position = r.Table.Bounds.Clamp(b.Position)
		}
	}
	return contacts
}

// ResolveCushion clamps a ball into the playable bounds and sends the velocity
// on each offending axis back into the table, scaled by cushion restitution.
func (r *Resolver) ResolveCushion(b *Ball) bool {
	bounds := r.Table.Bounds
	e := r.Params.CushionRestitution
	hit := false

	if b.Position.X < bounds.MinX {
		b.Position.X = bounds.MinX
		b.Velocity.X = math.Abs(b.Velocity.X) * e
		hit = true
	} else if b.Position.X > bounds.MaxX {
		b.Position.X = bounds.MaxX
		b.Velocity.X = -math.Abs(b.Velocity.X) * e
		hit = true
	}

	if b.Position.Y < bounds.MinY {
		b.Position.Y = bounds.MinY
		b.Velocity.Y = math.Abs(b.Velocity.Y) * e
		hit = true
	} else if b.Position.Y > bounds.MaxY {
		b.Position.Y = bounds.MaxY
		b.Velocity.Y = -math.Abs(b.Velocity.Y) * e
		hit = true
	}

	return hit
}

// ResolveBalls separates two overlapping balls and, when they approach along
// the normal, exchanges normal momentum. It returns the impulse applied.
func (r *Resolver) ResolveBalls(a, b *Ball) float64 {
	delta := b.Position.Minus(a.Position)
	dist := delta.Magnitude()
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return 0
	}

	normal := NewVec2(1, 0)
	if dist == 0 {
		dist = r.Params.MinSeparation
	} else {
		normal = delta.Times(1 / dist)
	}

	push := normal.Times((minDist - dist) / 2)
	a.Position = a.Position.Minus(push).sanitize()
	b.Position = b.Position.Plus(push).sanitize()

	vn := a.Velocity.Minus(b.Velocity).Dot(normal)
	if vn <= 0 {
		return 0
	}

	e := math.Min(a.Restitution, b.Restitution)
	impulse := normal.Times(vn * (1 + e) / 2)
	a.Velocity = a.Velocity.Minus(impulse).sanitize()
	b.Velocity = b.Velocity.Plus(impulse).sanitize()
	return vn * (1 + e) / 2
}
