package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/playmatatu/eightball/internal/config"
	"github.com/playmatatu/eightball/internal/game"
)

var predictCmd = &cobra.Command{
	Use:   "predict <x> <y>",
	Short: "Show the shot predictor for a pointer position on a fresh rack",
	Args:  cobra.ExactArgs(2),
	RunE:  runPredict,
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the effective physics params as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := config.LoadPhysics(flagPhysics)
		if err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(params)
	},
}

func runPredict(cmd *cobra.Command, args []string) error {
	newLogger()

	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	params, err := config.LoadPhysics(flagPhysics)
	if err != nil {
		return err
	}

	g := game.NewGame(params, "Player 1", "Player 2", seededRand())
	pred, ok := game.Predict(g.Balls, g.Table, params, game.NewVec2(x, y))
	if !ok {
		fmt.Println("no prediction: pointer is on the cue ball")
		return nil
	}

	fmt.Printf("direction  (%.3f, %.3f)\n", pred.Direction.X, pred.Direction.Y)
	fmt.Printf("impact     %s at (%.1f, %.1f) after %.1f\n", pred.Impact, pred.Point.X, pred.Point.Y, pred.Distance)
	if pred.Impact == game.ImpactBall {
		fmt.Printf("target     ball %d\n", pred.Target)
	}
	if pred.StruckDirection != nil {
		fmt.Printf("struck     (%.3f, %.3f)\n", pred.StruckDirection.X, pred.StruckDirection.Y)
	}
	if pred.CueDirection != nil {
		fmt.Printf("cue after  (%.3f, %.3f)\n", pred.CueDirection.X, pred.CueDirection.Y)
	}
	return nil
}
