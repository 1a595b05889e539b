package game

import "math"

// Vec2 is a 2D vector in table coordinates.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// finite replaces NaN and Inf with 0 so degenerate math never reaches ball state.
func finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: finite(x), Y: finite(y)}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector, or the zero vector for a zero-length input.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Times(1.0 / m)
}

// Reject returns v minus its projection onto the unit vector n.
func (v Vec2) Reject(n Vec2) Vec2 {
	return v.Minus(n.Times(v.Dot(n)))
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Minus(o).Magnitude()
}

func (v Vec2) DistanceSquaredTo(o Vec2) float64 {
	return v.Minus(o).MagnitudeSquared()
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Finite reports whether both components are real numbers.
func (v Vec2) Finite() bool {
	return finite(v.X) == v.X && finite(v.Y) == v.Y
}

// sanitize zeroes non-finite components.
func (v Vec2) sanitize() Vec2 {
	return Vec2{X: finite(v.X), Y: finite(v.Y)}
}
