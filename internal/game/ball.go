package game

// Kind classifies a ball by its number. It never changes after the ball is made.
type Kind string

const (
	KindNone   Kind = ""
	KindCue    Kind = "cue"
	KindSolid  Kind = "solid"
	KindEight  Kind = "8ball"
	KindStripe Kind = "stripe"
)

// KindOf derives the kind of ball n.
func KindOf(n int) Kind {
	switch {
	case n == CueBall:
		return KindCue
	case n == EightBall:
		return KindEight
	case n >= 1 && n <= 7:
		return KindSolid
	case n >= 9 && n < NumBalls:
		return KindStripe
	}
	return KindNone
}

// Assignable reports whether a player can be given this kind.
func (k Kind) Assignable() bool {
	return k == KindSolid || k == KindStripe
}

// Opposite returns the complementary assignable kind.
func (k Kind) Opposite() Kind {
	switch k {
	case KindSolid:
		return KindStripe
	case KindStripe:
		return KindSolid
	}
	return KindNone
}

// Ball is the persistent state of one ball. Drag and neighbor data live in
// frame-scoped structures, never here.
type Ball struct {
	Number      int     `json:"number"`
	Kind        Kind    `json:"kind"`
	Position    Vec2    `json:"position"`
	Velocity    Vec2    `json:"velocity"`
	Previous    Vec2    `json:"previous"`
	Radius      float64 `json:"radius"`
	Restitution float64 `json:"restitution"`
	Friction    float64 `json:"friction"`
	OnTable     bool    `json:"on_table"`
}

func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// BallSet is a fixed arena with one slot per ball number. Pocketing clears
// OnTable and respawning sets it again, so a ball number is always a valid handle.
type BallSet struct {
	slots [NumBalls]Ball
}

// NewBallSet builds all sixteen balls off the table except the cue ball.
func NewBallSet(p Params) *BallSet {
	s := &BallSet{}
	for n := range s.slots {
		s.slots[n] = Ball{
			Number:      n,
			Kind:        KindOf(n),
			Radius:      p.BallRadius,
			Restitution: p.BallRestitution,
			Friction:    p.Friction,
		}
	}
	s.slots[CueBall].OnTable = true
	return s
}

// Get returns the slot for ball n, or nil when n is out of range.
func (s *BallSet) Get(n int) *Ball {
	if n < 0 || n >= NumBalls {
		return nil
	}
	return &s.slots[n]
}

func (s *BallSet) Cue() *Ball {
	return &s.slots[CueBall]
}

func (s *BallSet) OnTable(n int) bool {
	b := s.Get(n)
	return b != nil && b.OnTable
}

// Live returns the numbers of every ball on the table in ascending order.
func (s *BallSet) Live() []int {
	live := make([]int, 0, NumBalls)
	for n := range s.slots {
		if s.slots[n].OnTable {
			live = append(live, n)
		}
	}
	return live
}

// Place puts ball n at rest at pos.
func (s *BallSet) Place(n int, pos Vec2) {
	b := s.Get(n)
	if b == nil {
		return
	}
	b.Position = pos.sanitize()
	b.Previous = b.Position
	b.Velocity = Vec2{}
	b.OnTable = true
}

// Remove takes ball n off the table. The cue ball cannot be removed.
func (s *BallSet) Remove(n int) {
	if n == CueBall {
		return
	}
	if b := s.Get(n); b != nil {
		b.OnTable = false
		b.Velocity = Vec2{}
	}
}

// Respawn returns an absent ball to play at pos. It reports false when the
// ball is already on the table.
func (s *BallSet) Respawn(n int, pos Vec2) bool {
	if n == CueBall || s.OnTable(n) || s.Get(n) == nil {
		return false
	}
	s.Place(n, pos)
	return true
}

// Remaining counts the balls of kind k still on the table.
func (s *BallSet) Remaining(k Kind) int {
	count := 0
	for n := range s.slots {
		if s.slots[n].OnTable && s.slots[n].Kind == k {
			count++
		}
	}
	return count
}

// Moving reports whether any ball on the table exceeds threshold speed.
func (s *BallSet) Moving(threshold float64) bool {
	for n := range s.slots {
		if s.slots[n].OnTable && s.slots[n].Speed() > threshold {
			return true
		}
	}
	return false
}

// Balls returns a copy of every on-table ball in number order.
func (s *BallSet) Balls() []Ball {
	out := make([]Ball, 0, NumBalls)
	for n := range s.slots {
		if s.slots[n].OnTable {
			out = append(out, s.slots[n])
		}
	}
	return out
}
