package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoStore = errors.New("no run history: set store.path in the config or pass --store")

func newRunsCmd(a *app) *cobra.Command {
	var (
		limit  int
		path   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("store") {
				a.cfg.Store.Path = path
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			if st == nil {
				return errNoStore
			}
			defer st.Close()

			runs, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printRuns(cmd.OutOrStdout(), runs, asJSON)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to show (0 = all)")
	cmd.Flags().StringVar(&path, "store", "", "SQLite file recording run history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print runs as JSON")
	return cmd
}
