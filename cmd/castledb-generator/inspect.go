package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"castledb-generator/internal/gen"
	"castledb-generator/internal/match"
	"castledb-generator/internal/schema"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func registerInspectCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "inspect <schema.cdb> [Sheet[.column]]",
		Short: "Dump the parsed schema and its emission order",
		Example: `  # Whole schema
  castledb-generator inspect data/game.cdb

  # One sheet, or one column of it
  castledb-generator inspect data/game.cdb Hero
  castledb-generator inspect data/game.cdb Hero.team`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if len(args) == 2 {
				return inspectPath(out, s, args[1])
			}

			dumper.Fdump(out, s)

			ordered, cycles := gen.OrderSheets(s)

			fmt.Fprintf(out, "\nemission order: %s\n", strings.Join(sheetNames(ordered), ", "))

			if len(cycles) > 0 {
				fmt.Fprintf(out, "cycles broken at: %s\n", strings.Join(sheetNames(cycles), ", "))
			}

			return nil
		},
	}

	parent.AddCommand(cmd)
}

// inspectPath prints one sheet as a column table, or one column in detail.
func inspectPath(out io.Writer, s *schema.Schema, path string) error {
	sheetName, colName, hasCol := strings.Cut(path, ".")

	sh := s.Sheet(sheetName)
	if sh == nil {
		return fmt.Errorf("no sheet %q%s", sheetName, match.Hint(sheetName, sheetNames(s.Sheets)))
	}

	if !hasCol {
		fmt.Fprintln(out, headerStyle.Render(sh.Name))

		for _, col := range sh.Columns {
			fmt.Fprintf(out, "  %-16s %-18s %s\n", col.Name, col.TypeID, col.TypeStr())
		}

		return nil
	}

	col := sh.Column(colName)
	if col == nil {
		names := make([]string, 0, len(sh.Columns))
		for _, c := range sh.Columns {
			names = append(names, c.Name)
		}

		return fmt.Errorf("sheet %s has no column %q%s", sh.Name, colName, match.Hint(colName, names))
	}

	fmt.Fprintf(out, "%s.%s: %s (typeStr %q)\n", sh.Name, col.Name, col.TypeID, col.TypeStr())

	if col.TypeID == schema.TypeList {
		if nested := s.NestedSheet(sh, col); nested != nil {
			fmt.Fprintf(out, "  records in %s\n", nested.Name)
		}
	}

	dumper.Fdump(out, col)

	return nil
}
