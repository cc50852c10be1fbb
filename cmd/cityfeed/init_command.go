package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cityfeed/internal/config"
	"cityfeed/internal/store"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the violations database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized schema in %s\n", st.Path())
				return nil
			})
		},
	}
}
