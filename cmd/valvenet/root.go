package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/valvenet/internal/config"
	"github.com/katalvlaran/valvenet/internal/store"
)

// app carries the loaded configuration between the root and subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "valvenet",
		Short:         "Maximise released pressure across a valve network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "text or json")

	root.AddCommand(newSolveCmd(a), newRunsCmd(a), newServeCmd(a))
	return root
}

// load reads the config file and applies persistent flag overrides.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger()
	return nil
}

// openStore opens run history when a path is configured.
func (a *app) openStore() (*store.SQLiteStore, error) {
	if a.cfg.Store.Path == "" {
		return nil, nil
	}
	return store.Open(a.cfg.Store.Path)
}
