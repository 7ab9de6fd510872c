/*
main.go - shiftctl, a command-line client over the shift tracker

PURPOSE:
  Assigns shifts and prints hour summaries straight from the database,
  without going through the HTTP server. Every command opens the store,
  runs one tracker operation and closes the store.

COMMANDS:
  assign DATE TYPE          Assign a shift (replaces any existing one)
  unassign DATE             Clear a date
  show DATE                 Shift, hours and day kind of a date
  month YEAR MONTH          Shifts and total of a month
  week [DATE]               Week containing DATE (default today)
  year YEAR                 Statistics of a year
  holidays YEAR             Public holidays of a year
  settings show             Weekly target and shift times
  settings set              --target N --shift TYPE=HH:MM-HH:MM

DATABASE:
  --db (or DATABASE_PATH) selects the SQLite file; "memory" gives a
  throwaway in-memory store.

SEE ALSO:
  - tracker/tracker.go: the operations behind every command
  - cmd/server/main.go: the HTTP server over the same store
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/shift-calendar/config"
	"github.com/warp/shift-calendar/store"
	"github.com/warp/shift-calendar/tracker"
)

// app carries the state shared by every command of one invocation.
type app struct {
	out     io.Writer
	dbPath  string
	verbose bool

	repo    store.Repository
	tracker *tracker.Tracker
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(os.Stdout, cfg.Database.Path).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer, defaultDB string) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:          "shiftctl",
		Short:        "Manage a personal shift calendar and its hour totals",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&a.dbPath, "db", defaultDB, "SQLite database path, or \"memory\"")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log store writes")

	root.AddCommand(
		a.assignCmd(),
		a.unassignCmd(),
		a.showCmd(),
		a.monthCmd(),
		a.weekCmd(),
		a.yearCmd(),
		a.holidaysCmd(),
		a.settingsCmd(),
	)
	return root
}

func (a *app) open() error {
	repo, err := store.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.dbPath, err)
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logger := config.NewLogger(level, "text", os.Stderr)

	a.repo = repo
	a.tracker = tracker.NewFromRepository(repo, tracker.WithLogger(logger.WithField("component", "shiftctl")))
	return nil
}

func (a *app) close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}
