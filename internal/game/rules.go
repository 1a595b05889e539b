package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the state of the turn machine.
type Phase string

const (
	PhaseAwaitingShot  Phase = "awaiting_shot"
	PhaseBallsInMotion Phase = "balls_in_motion"
	PhaseResolvingShot Phase = "resolving_shot"
	PhaseGameOver      Phase = "game_over"
)

const NoWinner = -1

type WinType string

const (
	WinClean   WinType = "clean_8"   // 8-ball potted legally
	WinIllegal WinType = "illegal_8" // 8-ball potted with a foul or own balls left
	WinEarly   WinType = "early_8"   // 8-ball potted before a kind was assigned
)

// Player is one seat at the table.
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Kind  Kind   `json:"kind"`
}

// Match is the complete rules state of a table.
type Match struct {
	Players    [2]Player `json:"players"`
	Turn       int       `json:"turn"`
	ShotTaken  bool      `json:"shot_taken"`
	Sunk       []Capture `json:"sunk"`
	Phase      Phase     `json:"phase"`
	Winner     int       `json:"winner"`
	WinType    WinType   `json:"win_type,omitempty"`
	GameOverAt time.Time `json:"game_over_at"`
	ShotNumber int       `json:"shot_number"`
	Rack       int       `json:"rack"`
}

// NewMatch seats two players; first chooses who breaks.
func NewMatch(player1, player2 string, first int) Match {
	return Match{
		Players: [2]Player{{Name: player1}, {Name: player2}},
		Turn:    first & 1,
		Phase:   PhaseAwaitingShot,
		Winner:  NoWinner,
		Rack:    1,
	}
}

func (m Match) Shooter() Player {
	return m.Players[m.Turn]
}

func (m Match) clone() Match {
	c := m
	c.Sunk = append([]Capture(nil), m.Sunk...)
	return c
}

// FrameEvents is what the rules see of one frame.
type FrameEvents struct {
	Now         time.Time
	ShotStarted bool
	Captures    []Capture
	Moving      bool
	Remaining   map[Kind]int // object balls still on the table, by kind
}

type EffectType string

const (
	EffectRespawn EffectType = "respawn"
	EffectRerack  EffectType = "rerack"
)

// Effect is a change to the ball set the caller must apply.
type Effect struct {
	Type   EffectType `json:"type"`
	Number int        `json:"number,omitempty"`
}

// FoulInfo describes a foul that occurred during a shot.
type FoulInfo struct {
	Type    string `json:"type"` // "scratch", "opponent_ball"
	Number  int    `json:"number"`
	Message string `json:"message"`
}

// ShotResult represents the outcome of a shot.
type ShotResult struct {
	ShotNumber int        `json:"shot_number"`
	Shooter    int        `json:"shooter"`
	Potted     []int      `json:"potted"`
	OwnPotted  int        `json:"own_potted"`
	Foul       bool       `json:"foul"`
	Fouls      []FoulInfo `json:"fouls,omitempty"`
	Assigned   bool       `json:"assigned"`
	TurnChange bool       `json:"turn_change"`
	NextTurn   int        `json:"next_turn"`
	GameOver   bool       `json:"game_over"`
	Winner     int        `json:"winner"`
	WinType    WinType    `json:"win_type,omitempty"`
}

// Transition reports what Advance did. Phases lists every phase entered, in order.
type Transition struct {
	From    Phase       `json:"from"`
	To      Phase       `json:"to"`
	Phases  []Phase     `json:"phases,omitempty"`
	Effects []Effect    `json:"effects,omitempty"`
	Result  *ShotResult `json:"result,omitempty"`
}

func (tr *Transition) enter(p Phase) {
	tr.Phases = append(tr.Phases, p)
	tr.To = p
}

// Rules is the 8-ball turn machine. It holds no match state.
type Rules struct {
	Params Params
	Rand   *rand.Rand
}

func NewRules(p Params, rng *rand.Rand) *Rules {
	return &Rules{Params: p, Rand: rng}
}

// Advance applies one frame of events to m and returns the next state with
// the effects the caller must apply to the ball set.
func (r *Rules) Advance(m Match, ev FrameEvents) (Match, Transition) {
	next := m.clone()
	tr := Transition{From: m.Phase, To: m.Phase}

	if next.Phase == PhaseGameOver {
		if ev.Now.Sub(next.GameOverAt) >= r.Params.GameOverDelay {
			r.reset(&next)
			tr.Effects = append(tr.Effects, Effect{Type: EffectRerack})
			tr.enter(PhaseAwaitingShot)
		}
		return next, tr
	}

	if ev.ShotStarted {
		if !next.ShotTaken {
			next.Sunk = nil
		}
		next.ShotTaken = true
		if next.Phase == PhaseAwaitingShot {
			tr.enter(PhaseBallsInMotion)
			next.Phase = PhaseBallsInMotion
		}
	}

	if result := r.capture(&next, ev, &tr); result != nil {
		tr.Result = result
		r.finish(&next, ev.Now, result)
		tr.enter(PhaseGameOver)
		return next, tr
	}

	if next.ShotTaken && !ev.Moving {
		tr.enter(PhaseResolvingShot)
		next.Phase = PhaseResolvingShot
		result := r.resolve(&next, ev)
		tr.Result = result
		if result.GameOver {
			r.finish(&next, ev.Now, result)
			tr.enter(PhaseGameOver)
		} else {
			next.Sunk = nil
			next.ShotTaken = false
			next.Phase = PhaseAwaitingShot
			tr.enter(PhaseAwaitingShot)
		}
	}

	return next, tr
}

// capture applies the shooter's immediate scoring for this frame's captures
// and buffers them while a shot is pending. It returns a result only when an
// unassigned shooter pots the 8-ball.
func (r *Rules) capture(m *Match, ev FrameEvents, tr *Transition) *ShotResult {
	shooter := &m.Players[m.Turn]
	opponent := &m.Players[1-m.Turn]

	for _, c := range ev.Captures {
		if m.ShotTaken {
			m.Sunk = append(m.Sunk, c)
		}
		if c.Kind == KindCue {
			continue
		}

		switch {
		case shooter.Kind == KindNone && c.Kind == KindEight:
			m.ShotNumber++
			potted := pottedNumbers(m.Sunk)
			if !m.ShotTaken {
				potted = append(potted, c.Number)
			}
			log.Infof("[RULES] %s potted the 8-ball before choosing a kind", shooter.Name)
			return &ShotResult{
				ShotNumber: m.ShotNumber,
				Shooter:    m.Turn,
				Potted:     potted,
				GameOver:   true,
				TurnChange: true,
				NextTurn:   1 - m.Turn,
				Winner:     1 - m.Turn,
				WinType:    WinEarly,
			}
		case shooter.Kind == KindNone:
			shooter.Kind = c.Kind
			opponent.Kind = c.Kind.Opposite()
			shooter.Score++
			log.Infof("[RULES] %s takes %ss", shooter.Name, c.Kind)
		case c.Kind == shooter.Kind:
			shooter.Score++
		case c.Kind != KindEight:
			tr.Effects = append(tr.Effects, Effect{Type: EffectRespawn, Number: c.Number})
		}
	}
	return nil
}

// resolve evaluates the buffered shot once the table is at rest.
func (r *Rules) resolve(m *Match, ev FrameEvents) *ShotResult {
	m.ShotNumber++
	shooter := m.Players[m.Turn]
	result := &ShotResult{
		ShotNumber: m.ShotNumber,
		Shooter:    m.Turn,
		Potted:     pottedNumbers(m.Sunk),
		Winner:     NoWinner,
	}

	sunkEight := false
	for _, c := range m.Sunk {
		switch {
		case c.Kind == KindCue:
			result.Foul = true
			result.Fouls = append(result.Fouls, FoulInfo{Type: "scratch", Number: c.Number, Message: "Cue ball pocketed"})
		case c.Kind == KindEight:
			sunkEight = true
		case shooter.Kind != KindNone && c.Kind == shooter.Kind:
			result.OwnPotted++
		case c.Kind.Assignable():
			result.Foul = true
			result.Fouls = append(result.Fouls, FoulInfo{Type: "opponent_ball", Number: c.Number, Message: "Opponent ball pocketed"})
		}
	}
	result.Assigned = shooter.Kind != KindNone && m.Players[1-m.Turn].Kind != KindNone

	if sunkEight {
		// Own balls never respawn, so the count before this shot is what is
		// left now plus what went down during it.
		before := ev.Remaining[shooter.Kind] + result.OwnPotted
		cleared := shooter.Kind != KindNone && before == 0
		proxy := shooter.Kind != KindNone && shooter.Score-result.OwnPotted >= KindBallCount
		if cleared != proxy {
			log.Warnf("[RULES] shot #%d: %s had %d %ss on the table but scored %d before the shot",
				m.ShotNumber, shooter.Name, before, shooter.Kind, shooter.Score-result.OwnPotted)
		}

		result.GameOver = true
		result.TurnChange = true
		if cleared && result.OwnPotted == 0 && !result.Foul {
			result.Winner = m.Turn
			result.WinType = WinClean
		} else {
			result.Winner = 1 - m.Turn
			result.WinType = WinIllegal
		}
		result.NextTurn = 1 - m.Turn
	} else if result.Foul || result.OwnPotted == 0 {
		m.Turn = 1 - m.Turn
		result.TurnChange = true
		result.NextTurn = m.Turn
	} else {
		result.NextTurn = m.Turn
	}

	log.Infof("[RULES] Shot #%d by %s, potted=%v, foul=%v, gameOver=%v, nextTurn=%s",
		result.ShotNumber, shooter.Name, result.Potted, result.Foul, result.GameOver, m.Players[result.NextTurn].Name)
	return result
}

func (r *Rules) finish(m *Match, now time.Time, result *ShotResult) {
	m.Phase = PhaseGameOver
	m.Winner = result.Winner
	m.WinType = result.WinType
	m.GameOverAt = now
	m.Sunk = nil
	m.ShotTaken = false
	log.Infof("[RULES] %s wins rack %d (%s)", m.Players[result.Winner].Name, m.Rack, result.WinType)
}

// reset starts a fresh rack with a random breaker.
func (r *Rules) reset(m *Match) {
	for i := range m.Players {
		m.Players[i].Score = 0
		m.Players[i].Kind = KindNone
	}
	m.Sunk = nil
	m.ShotTaken = false
	m.Phase = PhaseAwaitingShot
	m.Winner = NoWinner
	m.WinType = ""
	m.GameOverAt = time.Time{}
	if r.Rand != nil {
		m.Turn = r.Rand.Intn(2)
	} else {
		m.Turn = rand.Intn(2)
	}
	m.Rack++
}

func pottedNumbers(sunk []Capture) []int {
	potted := make([]int, 0, len(sunk))
	for _, c := range sunk {
		potted = append(potted, c.Number)
	}
	return potted
}
