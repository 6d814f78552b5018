package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"castledb-generator/internal/dataset"
	"castledb-generator/internal/schema"
)

func registerCheckCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check <schema.cdb>",
		Short: "Load the data of a .cdb file and report unresolved references",
		Long: `Load every line of a .cdb file the way generated code does (load all
tables, then resolve references) and report each reference whose key
matches no record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}

	parent.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	s, err := schema.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := dataset.LoadFile(s, path)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, headerStyle.Render("Tables"))

	for _, sh := range s.TopLevel() {
		fmt.Fprintf(out, "  %-24s %d\n", sh.Name, len(db.Table(sh.Name)))
	}

	unresolved := db.Unresolved()
	if len(unresolved) == 0 {
		fmt.Fprintln(out, successStyle.Render("\nAll references resolved"))

		return nil
	}

	fmt.Fprintln(out, headerStyle.Render("\nUnresolved references"))

	for _, u := range unresolved {
		fmt.Fprintln(out, warningStyle.Render("  "+u.String()))
	}

	return fmt.Errorf("%d unresolved reference(s)", len(unresolved))
}
