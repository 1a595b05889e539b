package game

import "math"

// Bounds is the rectangle a ball center may occupy.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Contains reports whether p lies inside the bounds, edges included.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp moves p to the nearest point inside the bounds.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, b.MinX), b.MaxX),
		Y: math.Min(math.Max(p.Y, b.MinY), b.MaxY),
	}
}

// Pocket represents one of the 6 pockets on the table.
type Pocket struct {
	ID       int  `json:"id"`
	Position Vec2 `json:"position"`
}

// Table holds the fixed table geometry.
type Table struct {
	Origin       Vec2      `json:"origin"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Cushion      float64   `json:"cushion"`
	Bounds       Bounds    `json:"bounds"`
	Pockets      [6]Pocket `json:"pockets"`
	PocketRadius float64   `json:"pocket_radius"`
}

// NewTable creates the standard table. Playable bounds are inset by the
// cushion plus one ball radius.
func NewTable(p Params) Table {
	x, y, w, h, c := TableX, TableY, TableWidth, TableHeight, CushionWidth
	inset := c + p.BallRadius

	return Table{
		Origin:  NewVec2(x, y),
		Width:   w,
		Height:  h,
		Cushion: c,
		Bounds: Bounds{
			MinX: x + inset,
			MinY: y + inset,
			MaxX: x + w - inset,
			MaxY: y + h - inset,
		},
		Pockets: [6]Pocket{
			{ID: 0, Position: NewVec2(x+c, y+c)},
			{ID: 1, Position: NewVec2(x+w/2, y+c-MidPocketJitter)},
			{ID: 2, Position: NewVec2(x+w-c, y+c)},
			{ID: 3, Position: NewVec2(x+c, y+h-c)},
			{ID: 4, Position: NewVec2(x+w/2, y+h-c+MidPocketJitter)},
			{ID: 5, Position: NewVec2(x+w-c, y+h-c)},
		},
		PocketRadius: p.PocketRadius,
	}
}

// Center is where fouled object balls are returned to play.
func (t Table) Center() Vec2 {
	return NewVec2(t.Origin.X+t.Width/2, t.Origin.Y+t.Height/2)
}

// CueSpot is where the cue ball starts and respawns.
func (t Table) CueSpot() Vec2 {
	return NewVec2(t.Origin.X+t.Width/4, t.Origin.Y+t.Height/2)
}

// rackOrder lists ball numbers row by row from the apex.
var rackOrder = [15]int{1, 9, 2, 10, 8, 3, 4, 11, 12, 5, 13, 14, 6, 15, 7}

// RackPositions returns the starting position of every object ball, keyed by number.
func (t Table) RackPositions(radius float64) map[int]Vec2 {
	apex := NewVec2(t.Origin.X+t.Width*0.72, t.Origin.Y+t.Height/2)
	positions := make(map[int]Vec2, len(rackOrder))
	idx := 0
	for row := 0; row < 5; row++ {
		for col := 0; col <= row; col++ {
			dx := float64(row) * radius * 1.732
			dy := (float64(col) - float64(row)/2) * radius * 2.05
			positions[rackOrder[idx]] = apex.Plus(NewVec2(dx, dy))
			idx++
		}
	}
	return positions
}

// Rack places every ball at rest in its starting position.
func (t Table) Rack(s *BallSet) {
	s.Place(CueBall, t.CueSpot())
	for n, pos := range t.RackPositions(s.Cue().Radius) {
		s.Place(n, pos)
	}
}
