// tablesim runs 8-ball tables headless, for tuning physics and checking rules.
//
// Usage:
//
//	tablesim shots            - Rack, break and play random shots to rest
//	tablesim predict <x> <y>  - Show the shot predictor for a pointer position
//	tablesim params           - Print the effective physics params as YAML
//	tablesim tune list        - List the runtime overrides in Postgres
//	tablesim tune set <k> <v> - Change one runtime override
//
// Global flags:
//
//	--physics <path>  - YAML file overlaid on the default params
//	--seed <value>    - RNG seed (0 = random based on time)
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagPhysics string
	flagSeed    int64
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tablesim",
	Short: "Headless 8-ball table simulator",
	Long: `tablesim racks a table and runs the same physics and rules the
table server runs, without a network or a renderer.

Examples:
  tablesim shots --shots 10 --seed 42
  tablesim predict 700 620
  tablesim params --physics ./configs/physics.yaml
  tablesim tune set friction 0.985`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPhysics, "physics", "", "Path to a physics params YAML file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(shotsCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(tuneCmd)
}
