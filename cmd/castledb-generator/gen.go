package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"castledb-generator/internal/common"
	"castledb-generator/internal/config"
	"castledb-generator/internal/diagnostic"
	"castledb-generator/internal/gen"
	"castledb-generator/internal/match"
	"castledb-generator/internal/schema"
)

type genOptions struct {
	backends []string
	output   string
	switches []string
	config   string
	strict   bool
}

func registerGenCmd(parent *cobra.Command) {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [schema.cdb]",
		Short: "Generate code from a CastleDB schema",
		Long: fmt.Sprintf(`Generate typed data-access code from a CastleDB schema.

The output path is a base path: "out/GameData" writes out/GameData.h,
out/GameData.cpp and so on. Options are passed as key=value switches:
db, ns, inherits, id=int, bin=on|only, hd.

Available backends: %s`, strings.Join(gen.Available(), ", ")),
		Example: `  # C++ with AngelScript bindings
  castledb-generator gen data/game.cdb -b cpp,asbinding -s inherits=RefCounted

  # C# in a namespace
  castledb-generator gen data/game.cdb -b csharp -s ns=Game -o out/GameData

  # Everything from a project file, overriding the output
  castledb-generator gen --config castledb.yaml -o build/GameData`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.backends, "backend", "b", []string{"cpp"},
		fmt.Sprintf("Backend(s) to run (%s)", strings.Join(gen.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", gen.DefaultBaseName, "Output base path")
	cmd.Flags().StringArrayVarP(&opts.switches, "set", "s", nil, "Generation option as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML project file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero when any warning is reported")

	parent.AddCommand(cmd)
}

// project merges the project file (if any) with the command line. Explicit
// flags win over the file; switches are applied on top of its options.
func (o *genOptions) project(cmd *cobra.Command, args []string) (*config.Project, error) {
	p := &config.Project{Options: map[string]string{}}

	if o.config != "" {
		loaded, err := config.LoadFile(o.config)
		if err != nil {
			return nil, err
		}

		// Paths in a project file are relative to the file.
		dir := filepath.Dir(o.config)
		if loaded.Schema != "" && !filepath.IsAbs(loaded.Schema) {
			loaded.Schema = filepath.Join(dir, loaded.Schema)
		}

		if !filepath.IsAbs(loaded.Output) {
			loaded.Output = filepath.Join(dir, loaded.Output)
		}

		p = loaded
	}

	if len(args) == 1 {
		p.Schema = args[0]
	}

	if o.config == "" || cmd.Flags().Changed("output") {
		p.Output = o.output
	}

	if len(p.Backends) == 0 || cmd.Flags().Changed("backend") {
		p.Backends = o.backends
	}

	for _, kv := range o.switches {
		key, value, _ := strings.Cut(kv, "=")
		p.Options[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if p.Schema == "" {
		return nil, errors.New("no schema given: pass a .cdb path or a --config project file")
	}

	return p, nil
}

func selectBackends(names []string) ([]gen.Backend, error) {
	names = common.Dedup(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no backend selected. Available backends: %s", strings.Join(gen.Available(), ", "))
	}

	backends := make([]gen.Backend, 0, len(names))

	for _, name := range names {
		b, err := gen.Get(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("%w%s. Available backends: %s",
				err, match.Hint(name, gen.Available()), strings.Join(gen.Available(), ", "))
		}

		backends = append(backends, b)
	}

	return backends, nil
}

func runGen(cmd *cobra.Command, opts *genOptions, args []string) error {
	out := cmd.OutOrStdout()

	p, err := opts.project(cmd, args)
	if err != nil {
		return err
	}

	backends, err := selectBackends(p.Backends)
	if err != nil {
		return err
	}

	s, err := schema.LoadFile(p.Schema)
	if err != nil {
		return err
	}

	genOpts, diags := config.FromSwitches(p.Options)
	printDiagnostics(out, diags)
	slog.Debug("options", "switches", genOpts.Switches())

	ordered, _ := gen.OrderSheets(s)
	slog.Debug("emission order", "schema", p.Schema, "sheets", sheetNames(ordered))

	dir, base := common.SplitBase(p.Output)

	fmt.Fprintf(out, "Generating %s with %d backend(s)...\n", filepath.Base(p.Schema), len(backends))

	results := gen.GenerateAll(s, genOpts, base, backends)

	var all diagnostic.Diagnostics

	all.Merge(diags)

	failed := 0

	for _, res := range results {
		fmt.Fprintln(out, headerStyle.Render(res.Backend))
		printDiagnostics(out, res.Diagnostics)
		all.Merge(res.Diagnostics)

		if res.Diagnostics.HasErrors() {
			failed++
			slog.Debug("backend failed", "backend", res.Backend, "err", res.Err)

			continue
		}

		written, err := gen.WriteFiles(res.Files, dir)
		if err != nil {
			return fmt.Errorf("%s: %w", res.Backend, err)
		}

		for _, path := range written {
			fmt.Fprintf(out, "  %s\n", path)
			slog.Debug("file written", "backend", res.Backend, "path", path)
		}
	}

	if all.HasErrors() {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("\n%d of %d backend(s) failed", failed, len(results))))

		return fmt.Errorf("generation failed: %w", all.Error())
	}

	if warnings := all.Warnings(); opts.strict && len(warnings) > 0 {
		return fmt.Errorf("%d warning(s) with --strict:\n  %s", len(warnings), strings.Join(all.Messages(), "\n  "))
	}

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("\nSuccessfully generated %d backend(s)", len(results))))

	return nil
}

func sheetNames(sheets []*schema.Sheet) []string {
	names := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		names = append(names, sh.Name)
	}

	return names
}
