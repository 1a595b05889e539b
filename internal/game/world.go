package game

import (
	"math/rand"
	"time"
)

// BallView is a ball as the render collaborator sees it.
type BallView struct {
	Number   int     `json:"number"`
	Kind     Kind    `json:"kind"`
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Radius   float64 `json:"radius"`
}

// HUD is the scoreboard.
type HUD struct {
	Players [2]Player `json:"players"`
	Turn    int       `json:"turn"`
	Phase   Phase     `json:"phase"`
	Winner  string    `json:"winner,omitempty"`
	WinType WinType   `json:"win_type,omitempty"`
	Rack    int       `json:"rack"`
}

// Snapshot is an immutable copy of a table's state at the end of a frame.
type Snapshot struct {
	Frame      uint64      `json:"frame"`
	Balls      []BallView  `json:"balls"`
	Table      Table       `json:"table"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Stick      *Segment    `json:"stick,omitempty"`
	Charging   bool        `json:"charging"`
	HUD        HUD         `json:"hud"`
	Match      Match       `json:"match"`
	TakenAt    time.Time   `json:"taken_at"`
}

// FrameReport is everything one frame produced.
type FrameReport struct {
	Frame      uint64      `json:"frame"`
	Captures   []Capture   `json:"captures,omitempty"`
	Contacts   []Contact   `json:"contacts,omitempty"`
	Transition Transition  `json:"transition"`
	Result     *ShotResult `json:"result,omitempty"`
	Snapshot   Snapshot    `json:"snapshot"`
}

// Game is one table: balls, rules state and pointer controls. It is not safe
// for concurrent use; the table loop owns it.
type Game struct {
	Params   Params
	Table    Table
	Balls    *BallSet
	Match    Match
	Rules    *Rules
	Controls Controls

	neighbors Neighbors
	resolver  *Resolver
	frame     uint64
	last      time.Time
}

// NewGame racks a fresh table for two players with a random breaker.
func NewGame(p Params, player1, player2 string, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := newGame(p, rng)
	g.Match = NewMatch(player1, player2, rng.Intn(2))
	g.Table.Rack(g.Balls)
	return g
}

func newGame(p Params, rng *rand.Rand) *Game {
	table := NewTable(p)
	return &Game{
		Params:   p,
		Table:    table,
		Balls:    NewBallSet(p),
		Rules:    NewRules(p, rng),
		resolver: NewResolver(table, p),
	}
}

// RestoreGame rebuilds a table from a snapshot, e.g. one read back from cache.
func RestoreGame(p Params, snap Snapshot, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := newGame(p, rng)
	for _, bv := range snap.Balls {
		if bv.Number < 0 || bv.Number >= NumBalls {
			continue
		}
		g.Balls.Place(bv.Number, bv.Position)
		g.Balls.Get(bv.Number).Velocity = bv.Velocity.sanitize()
	}
	g.Match = snap.Match.clone()
	if g.Match.Phase == PhaseResolvingShot {
		g.Match.Phase = PhaseBallsInMotion
	}
	g.frame = snap.Frame
	return g
}

// Frame runs one tick: inputs, motion, pockets, rules, broad phase and the
// collision sub-steps, in that order.
func (g *Game) Frame(now time.Time, inputs []InputEvent) FrameReport {
	dt := 1.0
	if !g.last.IsZero() {
		dt = g.Params.DtScale(now.Sub(g.last))
	}
	g.last = now
	g.frame++

	shot := false
	for _, ev := range inputs {
		atRest := !g.Balls.Moving(g.Params.MotionThreshold)
		gameOver := g.Match.Phase == PhaseGameOver
		if g.Controls.Apply(ev, g.Balls, g.Params, atRest, gameOver) != StrokeNone {
			shot = true
		}
	}

	Integrate(g.Balls, g.Controls.Drag, g.Params, dt)

	captures := DetectPockets(g.Balls, g.Table)
	if g.Controls.Drag.Active && !g.Balls.OnTable(g.Controls.Drag.Number) {
		g.Controls.Drag = Drag{}
	}

	next, tr := g.Rules.Advance(g.Match, FrameEvents{
		Now:         now,
		ShotStarted: shot,
		Captures:    captures,
		Moving:      g.Balls.Moving(g.Params.MotionThreshold),
		Remaining:   g.remaining(),
	})
	g.Match = next
	g.apply(tr.Effects)

	g.neighbors.Rebuild(g.Balls)
	contacts := append(PocketContacts(captures), g.resolver.Run(g.Balls, &g.neighbors)...)

	return FrameReport{
		Frame:      g.frame,
		Captures:   captures,
		Contacts:   contacts,
		Transition: tr,
		Result:     tr.Result,
		Snapshot:   g.snapshot(now),
	}
}

// SimulationReport summarizes a run of input-free frames.
type SimulationReport struct {
	Frames   int          `json:"frames"`
	Captures []Capture    `json:"captures"`
	Results  []ShotResult `json:"results"`
	Snapshot Snapshot     `json:"snapshot"`
}

// Simulate runs input-free frames of length step until the table is at rest
// with no shot pending, or maxFrames have run.
func (g *Game) Simulate(step time.Duration, maxFrames int) SimulationReport {
	now := g.last
	if now.IsZero() {
		now = time.Now()
	}

	var report SimulationReport
	for report.Frames < maxFrames {
		now = now.Add(step)
		fr := g.Frame(now, nil)
		report.Frames++
		report.Captures = append(report.Captures, fr.Captures...)
		if fr.Result != nil {
			report.Results = append(report.Results, *fr.Result)
		}
		report.Snapshot = fr.Snapshot
		if g.AtRest() {
			break
		}
	}
	return report
}

// AtRest reports whether nothing moves and no shot waits to be resolved.
func (g *Game) AtRest() bool {
	return !g.Balls.Moving(g.Params.MotionThreshold) && !g.Match.ShotTaken
}

// Strike hits the cue ball as if the pointer were released at from after a
// charged press. It is a no-op while balls move or the rack is over.
func (g *Game) Strike(now time.Time, from Vec2) FrameReport {
	return g.Frame(now, []InputEvent{
		{Kind: InputMove, Pointer: from},
		{Kind: InputDown, Pointer: from, Button: ButtonLeft},
		{Kind: InputUp, Pointer: from, Button: ButtonLeft},
	})
}

// Snapshot returns the current state without advancing the frame.
func (g *Game) Snapshot() Snapshot {
	return g.snapshot(g.last)
}

func (g *Game) snapshot(now time.Time) Snapshot {
	balls := g.Balls.Balls()
	views := make([]BallView, 0, len(balls))
	for _, b := range balls {
		views = append(views, BallView{
			Number:   b.Number,
			Kind:     b.Kind,
			Position: b.Position,
			Velocity: b.Velocity,
			Radius:   b.Radius,
		})
	}

	snap := Snapshot{
		Frame:    g.frame,
		Balls:    views,
		Table:    g.Table,
		Charging: g.Controls.Charging,
		HUD: HUD{
			Players: g.Match.Players,
			Turn:    g.Match.Turn,
			Phase:   g.Match.Phase,
			WinType: g.Match.WinType,
			Rack:    g.Match.Rack,
		},
		Match:   g.Match.clone(),
		TakenAt: now,
	}
	if g.Match.Winner != NoWinner {
		snap.HUD.Winner = g.Match.Players[g.Match.Winner].Name
	}

	if g.Match.Phase != PhaseGameOver && !g.Balls.Moving(g.Params.MotionThreshold) {
		if pred, ok := Predict(g.Balls, g.Table, g.Params, g.Controls.Pointer); ok {
			snap.Prediction = &pred
		}
		if stick, ok := g.Controls.Stick(g.Balls.Cue(), g.Params); ok {
			snap.Stick = &stick
		}
	}
	return snap
}

func (g *Game) remaining() map[Kind]int {
	return map[Kind]int{
		KindSolid:  g.Balls.Remaining(KindSolid),
		KindStripe: g.Balls.Remaining(KindStripe),
		KindEight:  g.Balls.Remaining(KindEight),
	}
}

func (g *Game) apply(effects []Effect) {
	for _, e := range effects {
		switch e.Type {
		case EffectRespawn:
			g.Balls.Respawn(e.Number, g.Table.Center())
		case EffectRerack:
			g.Controls = Controls{Pointer: g.Controls.Pointer}
			g.Table.Rack(g.Balls)
		}
	}
}
