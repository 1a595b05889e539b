package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/playmatatu/eightball/internal/config"
	"github.com/playmatatu/eightball/internal/database"
	"github.com/playmatatu/eightball/internal/tuning"
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "List or change the runtime physics overrides stored in Postgres",
	Long: `Reads and writes the runtime_config table the server overlays on its
physics params at startup. Needs DATABASE_URL.

A new value is checked against the row's type, and the params that would
result (--physics file plus every stored override) must still validate.
Running servers pick changes up on restart.`,
}

var tuneListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every stored override",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openTuningDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := tuning.GetAll(db)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tTYPE\tUPDATED\tDESCRIPTION")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Key, r.Value, r.ValueType, r.UpdatedAt.Format("2006-01-02 15:04"), r.Description)
		}
		return w.Flush()
	},
}

var tuneSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one stored override",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		newLogger()

		base, err := config.LoadPhysics(flagPhysics)
		if err != nil {
			return err
		}
		db, err := openTuningDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := tuning.Set(db, base, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	tuneCmd.AddCommand(tuneListCmd)
	tuneCmd.AddCommand(tuneSetCmd)
}

func openTuningDB() (*sqlx.DB, error) {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return database.Connect(cfg.DatabaseURL)
}
