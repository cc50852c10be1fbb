package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cityfeed/internal/config"
	"cityfeed/internal/store"
)

func newCodesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the registered violation codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				codes, err := st.ListCodes(cmd.Context())
				if err != nil {
					return err
				}
				if len(codes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No violation codes registered yet")
					return nil
				}

				rows := make([][]string, 0, len(codes))
				for _, code := range codes {
					rows = append(rows, []string{code.Code, code.Description})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Code", "Description"},
					rows,
					[]columnAlignment{alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}
