package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"castledb-generator/internal/gen"
)

func registerBackendsCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List the available backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range gen.Available() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	parent.AddCommand(cmd)
}
