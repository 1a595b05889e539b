package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/playmatatu/eightball/internal/config"
	"github.com/playmatatu/eightball/internal/game"
)

var (
	flagShots     int
	flagPull      float64
	flagMaxFrames int
)

var shotsCmd = &cobra.Command{
	Use:   "shots",
	Short: "Play random shots on a fresh rack",
	Long: `Racks a table, breaks straight into the rack and then plays random
cue strikes, each simulated until every ball is at rest.

The pull distance is how far behind the cue ball the pointer is released;
strike speed is pull * shot_power_scale, capped at max_shot_power.`,
	RunE: runShots,
}

func init() {
	shotsCmd.Flags().IntVar(&flagShots, "shots", 1, "Number of shots to play, including the break")
	shotsCmd.Flags().Float64Var(&flagPull, "pull", 220, "Pointer pull distance behind the cue ball")
	shotsCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 20000, "Frame limit per shot")
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tablesim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return logger
}

func seededRand() *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func runShots(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	params, err := config.LoadPhysics(flagPhysics)
	if err != nil {
		return err
	}

	rng := seededRand()
	g := game.NewGame(params, "Player 1", "Player 2", rng)
	now := time.Unix(0, 0)
	step := params.TickInterval()

	logger.Info("Racked", "breaker", g.Match.Shooter().Name, "balls", len(g.Balls.Live()))

	for shot := 1; shot <= flagShots; shot++ {
		if g.Match.Phase == game.PhaseGameOver {
			logger.Info("Match over", "winner", g.Match.Players[g.Match.Winner].Name, "win", g.Match.WinType)
			break
		}

		cue := g.Balls.Cue().Position
		aim := g.Table.Center().Minus(cue).Normalize()
		if shot > 1 {
			angle := rng.Float64() * 2 * math.Pi
			aim = game.NewVec2(math.Cos(angle), math.Sin(angle))
		}
		pointer := cue.Minus(aim.Times(flagPull))

		now = now.Add(step)
		g.Strike(now, pointer)
		report := g.Simulate(step, flagMaxFrames)
		now = now.Add(time.Duration(report.Frames) * step)

		if !g.AtRest() {
			logger.Warn("Shot did not settle", "shot", shot, "frames", report.Frames)
			continue
		}
		for _, res := range report.Results {
			printResult(g, res, report.Frames)
		}
	}

	fmt.Println(scoreLine(g.Snapshot().HUD))
	return nil
}

func printResult(g *game.Game, res game.ShotResult, frames int) {
	potted := make([]string, 0, len(res.Potted))
	for _, n := range res.Potted {
		potted = append(potted, fmt.Sprint(n))
	}
	line := fmt.Sprintf("shot %-3d %-10s frames=%-5d potted=[%s]",
		res.ShotNumber, g.Match.Players[res.Shooter].Name, frames, strings.Join(potted, " "))
	if res.Foul {
		line += " FOUL"
	}
	if res.Assigned {
		line += fmt.Sprintf(" assigned=%s", g.Match.Players[res.Shooter].Kind)
	}
	if res.GameOver {
		line += fmt.Sprintf(" game_over winner=%s (%s)", g.Match.Players[res.Winner].Name, res.WinType)
	} else if res.TurnChange {
		line += fmt.Sprintf(" next=%s", g.Match.Players[res.NextTurn].Name)
	}
	fmt.Println(line)
}

func scoreLine(hud game.HUD) string {
	parts := make([]string, 0, len(hud.Players))
	for _, p := range hud.Players {
		kind := string(p.Kind)
		if kind == "" {
			kind = "open"
		}
		parts = append(parts, fmt.Sprintf("%s %d (%s)", p.Name, p.Score, kind))
	}
	return strings.Join(parts, " | ") + " | phase " + string(hud.Phase)
}
