package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"castledb-generator/internal/common"
	"castledb-generator/internal/config"
	"castledb-generator/internal/gen"
)

// DefaultProjectFile is the file name init writes when --file is not given.
const DefaultProjectFile = "castledb.yaml"

type initOptions struct {
	backends []string
	output   string
	switches []string
	file     string
	force    bool
}

func registerInitCmd(parent *cobra.Command) {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init <schema.cdb>",
		Short: "Write a castledb.yaml project file",
		Long: `Write a project file that "gen --config" reads back.

Backends and options are checked before anything is written; options equal
to their defaults are left out of the file.`,
		Example: `  castledb-generator init data/game.cdb -b cpp,asbinding -s inherits=RefCounted
  castledb-generator gen --config castledb.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.backends, "backend", "b", []string{"cpp"}, "Backend(s) to record")
	cmd.Flags().StringVarP(&opts.output, "output", "o", gen.DefaultBaseName, "Output base path")
	cmd.Flags().StringArrayVarP(&opts.switches, "set", "s", nil, "Generation option as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", DefaultProjectFile, "Project file to write")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing project file")

	parent.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, opts *initOptions, schemaPath string) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(opts.file); err == nil && !opts.force {
		return fmt.Errorf("%s already exists; pass --force to overwrite it", opts.file)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	names := common.Dedup(opts.backends)
	if _, err := selectBackends(names); err != nil {
		return err
	}

	switches := map[string]string{}

	for _, kv := range opts.switches {
		key, value, _ := strings.Cut(kv, "=")
		switches[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	genOpts, diags := config.FromSwitches(switches)
	printDiagnostics(out, diags)

	data, err := config.Marshal(&config.Project{
		Schema:   schemaPath,
		Output:   opts.output,
		Backends: names,
		Options:  genOpts.Switches(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode project file: %w", err)
	}

	if err := os.WriteFile(opts.file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.file, err)
	}

	fmt.Fprintln(out, successStyle.Render("Wrote "+opts.file))

	return nil
}
