package game

import "math"

// rayIntersectCircle returns the distance along the unit ray (origin, dir)
// at which the ray first comes within radius of center. Circles behind the
// origin never match.
func rayIntersectCircle(origin, dir, center Vec2, radius float64) (float64, bool) {
	offset := center.Minus(origin)
	proj := offset.Dot(dir)
	if proj <= 0 {
		return 0, false
	}

	perpSq := offset.MagnitudeSquared() - proj*proj
	rr := radius * radius
	if perpSq > rr {
		return 0, false
	}

	return proj - math.Sqrt(math.Max(rr-perpSq, 0)), true
}

// rayToBounds returns the distance along the unit ray to the nearest bound
// the ray is moving toward, or +Inf for a zero direction.
func rayToBounds(origin, dir Vec2, b Bounds) float64 {
	tx, ty := math.Inf(1), math.Inf(1)

	if dir.X > 0 {
		tx = (b.MaxX - origin.X) / dir.X
	} else if dir.X < 0 {
		tx = (b.MinX - origin.X) / dir.X
	}

	if dir.Y > 0 {
		ty = (b.MaxY - origin.Y) / dir.Y
	} else if dir.Y < 0 {
		ty = (b.MinY - origin.Y) / dir.Y
	}

	return math.Min(tx, ty)
}
