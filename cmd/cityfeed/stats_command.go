package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cityfeed/internal/config"
	"cityfeed/internal/store"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and the most frequent violation codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				records, err := st.CountRecords(cmd.Context())
				if err != nil {
					return err
				}
				codes, err := st.CountCodes(cmd.Context())
				if err != nil {
					return err
				}
				top, err := st.TopCodes(cmd.Context(), limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Violations: %d\n", records)
				fmt.Fprintf(out, "Registered codes: %d\n", codes)
				if len(top) == 0 {
					return nil
				}

				rows := make([][]string, 0, len(top))
				for _, entry := range top {
					rows = append(rows, []string{
						entry.Code,
						entry.Description,
						fmt.Sprintf("%d", entry.Count),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Code", "Description", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of codes to show")
	return cmd
}
