package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/valvenet/internal/config"
	"github.com/katalvlaran/valvenet/internal/runner"
	"github.com/katalvlaran/valvenet/internal/store"
	"github.com/katalvlaran/valvenet/loader"
)

var errNoInput = errors.New("no input file: pass one as an argument or set input in the config")

type solveFlags struct {
	budget   int
	agents   int
	start    string
	workers  int
	bound    string
	timeout  time.Duration
	store    string
	asJSON   bool
	scenario string
}

func newSolveCmd(a *app) *cobra.Command {
	f := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve [input]",
		Short: "Solve the configured scenarios for a valve network",
		Long: "Solve reads a valve network (puzzle text, or YAML by extension) and runs\n" +
			"every configured scenario. --budget replaces them with a single scenario.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd, args, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&f.budget, "budget", "b", 30, "turn budget for a single ad-hoc scenario")
	fl.IntVarP(&f.agents, "agents", "a", 1, "agents (1 or 2) for the ad-hoc scenario")
	fl.StringVar(&f.scenario, "name", "cli", "name of the ad-hoc scenario")
	fl.StringVarP(&f.start, "start", "s", "", "start valve")
	fl.IntVarP(&f.workers, "workers", "w", 1, "parallel root branches")
	fl.StringVar(&f.bound, "bound", "rate", "pruning bound: rate or none")
	fl.DurationVar(&f.timeout, "timeout", 0, "stop each search after this long (0 = no limit)")
	fl.StringVar(&f.store, "store", "", "SQLite file recording run history")
	fl.BoolVar(&f.asJSON, "json", false, "print runs as JSON")
	return cmd
}

// apply merges command flags into the loaded configuration.
func (f *solveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("budget") || fl.Changed("agents") {
		cfg.Scenarios = []config.Scenario{{Name: f.scenario, Agents: f.agents, Budget: f.budget}}
	}
	if fl.Changed("start") {
		cfg.Start = f.start
	}
	if fl.Changed("workers") {
		cfg.Search.Workers = f.workers
	}
	if fl.Changed("bound") {
		cfg.Search.Bound = f.bound
	}
	if fl.Changed("timeout") {
		cfg.Search.Timeout = f.timeout
	}
	if fl.Changed("store") {
		cfg.Store.Path = f.store
	}
}

func (a *app) solve(cmd *cobra.Command, args []string, f *solveFlags) error {
	f.apply(cmd, &a.cfg)
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	input := a.cfg.Input
	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		return errNoInput
	}
	opts, err := a.cfg.SearchOptions()
	if err != nil {
		return err
	}

	valves, err := loader.LoadFile(input)
	if err != nil {
		return err
	}
	inst, err := loader.Build(cmd.Context(), valves, a.cfg.Start)
	if err != nil {
		return err
	}
	a.logger.Debug("input loaded", "path", input, "valves", inst.Net.Len(), "digest", inst.Digest)

	r := runner.New(opts)
	r.Logger = a.logger
	st, err := a.openStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		r.Store = st
	}

	runs, err := r.RunAll(cmd.Context(), inst, a.cfg.Scenarios)
	if len(runs) > 0 || err == nil {
		if perr := printRuns(cmd.OutOrStdout(), runs, f.asJSON); perr != nil {
			return perr
		}
	}
	return err
}

func printRuns(w io.Writer, runs []store.Run, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if runs == nil {
			runs = []store.Run{}
		}
		return enc.Encode(runs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tAGENTS\tBUDGET\tSCORE\tNODES\tELAPSED\tID")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			run.Scenario, run.Agents, run.Budget, run.Score, run.Nodes,
			run.Elapsed.Round(time.Microsecond), run.ID)
	}
	return tw.Flush()
}
