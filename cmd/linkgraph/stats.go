package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/linkgraph/internal/config"
)

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print atom counts of the configured graph store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.cfg.Store.Backend != config.BackendKuzu || c.cfg.StorePath() == "" {
				loggerFromContext(cmd.Context()).Warn("graph store is not persistent, counts start empty")
			}
			store, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			st, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "nodes: %d\nlinks: %d\noutgoing: %d\n", st.NodeCount, st.LinkCount, st.OutgoingCount)
			for _, k := range slices.Sorted(maps.Keys(st.ByKind)) {
				fmt.Fprintf(w, "  %-22s %d\n", k, st.ByKind[k])
			}
			return nil
		},
	}
}
