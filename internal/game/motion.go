package game

import (
	"math"
	"time"
)

// DtScale converts the elapsed time of a frame into reference ticks, clamped
// to [0, MaxDtScale].
func (p Params) DtScale(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	scale := finite(float64(elapsed) / float64(p.TickInterval()))
	if scale > p.MaxDtScale {
		return p.MaxDtScale
	}
	return scale
}

// Integrate moves every free ball by its velocity and applies exponential
// friction. A held ball instead derives its velocity from how far the pointer
// moved it since the last frame.
func Integrate(s *BallSet, drag Drag, p Params, dt float64) {
	for n := range s.slots {
		b := &s.slots[n]
		if !b.OnTable {
			continue
		}

		if drag.Holds(n) {
			b.Velocity = b.Position.Minus(b.Previous).sanitize()
			b.Previous = b.Position
			continue
		}

		b.Position = b.Position.Plus(b.Velocity.Times(dt)).sanitize()
		b.Velocity = b.Velocity.Times(math.Pow(b.Friction, dt)).sanitize()
		if b.Velocity.MagnitudeSquared() < p.StopSpeedSq {
			b.Velocity = Vec2{}
		}
	}
}
