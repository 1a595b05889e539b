package game

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

type InputKind string

const (
	InputMove InputKind = "pointer_move"
	InputDown InputKind = "pointer_down"
	InputUp   InputKind = "pointer_up"
)

// InputEvent is one pointer event from the input collaborator.
type InputEvent struct {
	Kind    InputKind `json:"kind"`
	Pointer Vec2      `json:"pointer"`
	Button  Button    `json:"button"`
}

// Drag is the ball currently held by the pointer, if any.
type Drag struct {
	Active bool `json:"active"`
	Number int  `json:"number"`
	Offset Vec2 `json:"offset"`
}

func (d Drag) Holds(n int) bool {
	return d.Active && d.Number == n
}

type Stroke int

const (
	StrokeNone   Stroke = iota
	StrokeThrow         // a held ball was released
	StrokeStrike        // a charged cue strike
)

// Controls is the pointer state of one table.
type Controls struct {
	Pointer  Vec2 `json:"pointer"`
	Drag     Drag `json:"drag"`
	Charging bool `json:"charging"`
}

// Apply handles one pointer event and reports the stroke it completed.
func (c *Controls) Apply(ev InputEvent, s *BallSet, p Params, atRest, gameOver bool) Stroke {
	c.Pointer = ev.Pointer.sanitize()

	switch ev.Kind {
	case InputMove:
		if c.Drag.Active {
			if b := s.Get(c.Drag.Number); b != nil && b.OnTable {
				b.Position = c.Pointer.Plus(c.Drag.Offset)
			}
		}

	case InputDown:
		if ev.Button != ButtonLeft || gameOver {
			return StrokeNone
		}
		if c.grab(s) {
			return StrokeNone
		}
		if atRest {
			c.Charging = true
		}

	case InputUp:
		if ev.Button != ButtonLeft {
			return StrokeNone
		}
		if c.Drag.Active {
			c.Drag = Drag{}
			return StrokeThrow
		}
		charging := c.Charging
		c.Charging = false
		if charging && atRest && !gameOver {
			c.strike(s.Cue(), p)
			return StrokeStrike
		}
	}
	return StrokeNone
}

// grab starts dragging the lowest-numbered ball under the pointer.
func (c *Controls) grab(s *BallSet) bool {
	for _, n := range s.Live() {
		b := s.Get(n)
		if b.Position.DistanceTo(c.Pointer) > b.Radius {
			continue
		}
		c.Drag = Drag{Active: true, Number: n, Offset: b.Position.Minus(c.Pointer)}
		c.Charging = false
		b.Velocity = Vec2{}
		b.Previous = b.Position
		return true
	}
	return false
}

// strike sends the cue ball away from the pointer with power proportional to
// the pointer's distance, capped at MaxShotPower.
func (c *Controls) strike(cue *Ball, p Params) {
	dir, dist, ok := AimDirection(cue.Position, c.Pointer, p.MinAimDistance)
	if !ok {
		dir, dist = NewVec2(1, 0), p.MinAimDistance
	}
	power := min(dist*p.ShotPowerScale, p.MaxShotPower)
	cue.Velocity = dir.Times(power)
}

// Stick returns the cue stick segment for the render collaborator.
func (c *Controls) Stick(cue *Ball, p Params) (Segment, bool) {
	dir, dist, ok := AimDirection(cue.Position, c.Pointer, p.MinAimDistance)
	if !ok {
		return Segment{}, false
	}
	gap := cue.Radius + 10
	if c.Charging {
		gap = cue.Radius + dist*0.2
	}
	from := cue.Position.Minus(dir.Times(gap))
	return Segment{From: from, To: from.Minus(dir.Times(stickLength))}, true
}

const stickLength = 400.0
