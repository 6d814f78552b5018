package gen

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"castledb-generator/internal/config"
	"castledb-generator/internal/diagnostic"
	"castledb-generator/internal/match"
	"castledb-generator/internal/schema"
)

// DefaultBaseName is the output base name used when none is configured.
const DefaultBaseName = "GameData"

// GeneratedFile represents one generated output file.
type GeneratedFile struct {
	// Filename is the file name derived from the base name (e.g., "GameData.h").
	Filename string
	// Content is the generated source text.
	Content []byte
}

// Result is the outcome of running one backend.
type Result struct {
	Backend     string
	Files       []GeneratedFile
	Diagnostics diagnostic.Diagnostics
	// Err is set if the backend produced no output.
	Err error
}

// Generator runs one backend over a schema.
type Generator struct {
	backend  Backend
	options  config.Options
	baseName string
}

// NewGenerator creates a Generator. An empty baseName uses DefaultBaseName.
func NewGenerator(b Backend, opts config.Options, baseName string) *Generator {
	if baseName == "" {
		baseName = DefaultBaseName
	}

	if opts.DBName == "" {
		opts.DBName = config.DefaultDBName
	}

	return &Generator{backend: b, options: opts, baseName: baseName}
}

// Generate generates the backend's files for s. A fatal configuration error
// is reported as a single error diagnostic, returns no files and an error
// wrapping ErrConfig. A rendering failure is reported the same way, so
// Result.Diagnostics.HasErrors holds whenever Result.Err is set.
func (g *Generator) Generate(s *schema.Schema) *Result {
	res := &Result{Backend: g.backend.Name()}

	if err := g.backend.Check(g.options); err != nil {
		res.Diagnostics.AddError(diagnostic.CodeConfig, err.Error(), res.Backend, "")
		res.Err = fmt.Errorf("%s: %w", res.Backend, err)

		return res
	}

	m := g.BuildModel(s, &res.Diagnostics)

	files, err := g.backend.Render(m)
	if err != nil {
		res.Diagnostics.AddError(diagnostic.CodeRender, err.Error(), res.Backend, "")
		res.Err = fmt.Errorf("%s: rendering: %w", res.Backend, err)

		return res
	}

	res.Files = files

	return res
}

// BuildModel runs the dependency orderer, the record emitter and the
// database emitter.
func (g *Generator) BuildModel(s *schema.Schema, diags *diagnostic.Diagnostics) *Model {
	m := &Model{
		Source:   s.Source,
		BaseName: g.baseName,
		Options:  g.options,
		Schema:   s,
	}

	for _, sh := range s.Sheets {
		m.Declared = append(m.Declared, sh.TypeName())
	}

	g.collectEnums(m, diags)

	ordered, cycles := OrderSheets(s)
	for _, sh := range cycles {
		diags.AddInfo(diagnostic.CodeRefCycle,
			fmt.Sprintf("sheet %s is part of a reference cycle and is emitted before its targets", sh.Name),
			g.backend.Name(), sh.Name)
	}

	for _, sh := range ordered {
		m.Records = append(m.Records, g.buildRecord(s, sh, diags))
	}

	for _, sh := range s.TopLevel() {
		m.Tables = append(m.Tables, Table{
			Name:         sh.TypeName(),
			SheetName:    sh.Name,
			Collection:   CollectionName(sh.TypeName()),
			NeedsResolve: s.NeedsResolve(sh),
		})
	}

	return m
}

// buildRecord is the record emitter for one sheet.
func (g *Generator) buildRecord(s *schema.Schema, sh *schema.Sheet, diags *diagnostic.Diagnostics) Record {
	rec := Record{Name: sh.TypeName(), Sheet: sh}
	name := g.backend.Name()

	taken := map[string]bool{rec.Name: true}
	for _, n := range MemberNames {
		taken[n] = true
	}

	for _, col := range sh.Columns {
		loc := sh.Name + "." + col.Name

		if msg := g.checkColumn(s, sh, col); msg != "" {
			code := diagnostic.CodeUnknownSheet
			if col.TypeID == schema.TypeCustom {
				code = diagnostic.CodeUnknownCustomType
			}

			diags.AddWarning(code, msg, name, loc)

			continue
		}

		ctx := &ColumnContext{Schema: s, Sheet: sh, Column: col, Options: g.options}

		mp, err := g.backend.MapColumn(ctx)
		if err != nil {
			if errors.Is(err, ErrUnsupported) {
				diags.AddWarning(diagnostic.CodeUnsupportedType,
					fmt.Sprintf("sheet %s, column %s: type %s unsupported", sh.Name, col.Name, col.TypeID),
					name, loc)
			} else {
				diags.AddWarning(diagnostic.CodeUnsupportedType,
					fmt.Sprintf("sheet %s, column %s: %v", sh.Name, col.Name, err), name, loc)
			}

			continue
		}

		if f, ok := clashingField(mp.Fields, taken); ok {
			diags.AddWarning(diagnostic.CodeFieldConflict,
				fmt.Sprintf("sheet %s, column %s: field %s clashes with another field or a generated member of %s",
					sh.Name, col.Name, f, rec.Name),
				name, loc)

			continue
		}

		for _, f := range mp.Fields {
			taken[f.Name] = true
		}

		rec.Fields = append(rec.Fields, mp.Fields...)
		rec.Load = append(rec.Load, mp.Load...)
		rec.Cleanup = append(rec.Cleanup, mp.Cleanup...)

		if len(mp.Fields) == 0 {
			continue
		}

		if step, ok := g.resolveStep(s, sh, col, diags); ok {
			rec.Steps = append(rec.Steps, step)
			rec.Resolve = append(rec.Resolve, g.backend.EmitResolve(step)...)
		}
	}

	return rec
}

func clashingField(fields []Field, taken map[string]bool) (string, bool) {
	for i, f := range fields {
		if taken[f.Name] {
			return f.Name, true
		}

		for _, other := range fields[:i] {
			if other.Name == f.Name {
				return f.Name, true
			}
		}
	}

	return "", false
}

// checkColumn reports columns whose key names nothing in the schema.
func (g *Generator) checkColumn(s *schema.Schema, sh *schema.Sheet, col *schema.Column) string {
	switch col.TypeID {
	case schema.TypeRef:
		if s.Sheet(col.Key) == nil {
			return fmt.Sprintf("sheet %s, column %s: referenced sheet %q does not exist%s",
				sh.Name, col.Name, col.Key, match.Hint(col.Key, sheetNames(s.Sheets)))
		}
	case schema.TypeList:
		if s.NestedSheet(sh, col) == nil {
			return fmt.Sprintf("sheet %s, column %s: nested sheet %q does not exist",
				sh.Name, col.Name, sh.Name+schema.NestedSeparator+col.Name)
		}
	case schema.TypeCustom:
		ct := s.CustomType(col.Key)
		if ct == nil {
			return fmt.Sprintf("sheet %s, column %s: custom type %q does not exist%s",
				sh.Name, col.Name, col.Key, match.Hint(col.Key, customTypeNames(s.CustomTypes)))
		}

		if len(ct.Constructors) == 0 {
			return fmt.Sprintf("sheet %s, column %s: custom type %q has no constructors", sh.Name, col.Name, col.Key)
		}
	}

	return ""
}

func sheetNames(sheets []*schema.Sheet) []string {
	names := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		names = append(names, sh.Name)
	}

	return names
}

func customTypeNames(types []*schema.CustomType) []string {
	names := make([]string, 0, len(types))
	for _, ct := range types {
		names = append(names, ct.Name)
	}

	return names
}

func (g *Generator) resolveStep(
	s *schema.Schema,
	sh *schema.Sheet,
	col *schema.Column,
	diags *diagnostic.Diagnostics,
) (ResolveStep, bool) {
	switch col.TypeID {
	case schema.TypeRef:
		target := s.Sheet(col.Key)

		key := target.KeyColumn()
		if key == nil {
			diags.AddWarning(diagnostic.CodeMissingKey,
				fmt.Sprintf("sheet %s, column %s: sheet %s has no unique identifier column, reference is never resolved",
					sh.Name, col.Name, target.Name),
				g.backend.Name(), sh.Name+"."+col.Name)

			return ResolveStep{}, false
		}

		return ResolveStep{
			Kind:       ResolveRef,
			Column:     col.Name,
			Target:     target.TypeName(),
			Collection: CollectionName(target.TypeName()),
			KeyColumn:  key.Name,
		}, true
	case schema.TypeList:
		nested := s.NestedSheet(sh, col)
		if !s.NeedsResolve(nested) {
			return ResolveStep{}, false
		}

		return ResolveStep{
			Kind:   ResolveList,
			Column: col.Name,
			Target: nested.TypeName(),
		}, true
	}

	return ResolveStep{}, false
}

// collectEnums gathers enumeration types and flag constants in declaration
// order. Each generated name is declared once.
func (g *Generator) collectEnums(m *Model, diags *diagnostic.Diagnostics) {
	enums := make(map[string][]string)
	flags := make(map[string][]string)

	for _, sh := range m.Schema.Sheets {
		for _, col := range sh.Columns {
			loc := sh.Name + "." + col.Name

			switch col.TypeID {
			case schema.TypeEnum:
				name := EnumTypeName(col.Name)
				if prev, ok := enums[name]; ok {
					if !slices.Equal(prev, col.Enumerations) {
						diags.AddWarning(diagnostic.CodeEnumConflict,
							fmt.Sprintf("enumeration %s is already declared with different values", name),
							g.backend.Name(), loc)
					}

					continue
				}

				enums[name] = col.Enumerations

				m.Enums = append(m.Enums, Enum{Name: name, Values: enumValues(col.Enumerations)})
			case schema.TypeFlags:
				name := Upper(col.Name)
				if prev, ok := flags[name]; ok {
					if !slices.Equal(prev, col.Enumerations) {
						diags.AddWarning(diagnostic.CodeEnumConflict,
							fmt.Sprintf("flags %s are already declared with different values", name),
							g.backend.Name(), loc)
					}

					continue
				}

				flags[name] = col.Enumerations

				values := col.Enumerations
				if len(values) > MaxFlags {
					diags.AddWarning(diagnostic.CodeFlagsOverflow,
						fmt.Sprintf("sheet %s, column %s: %d flag values, only the first %d get a bit",
							sh.Name, col.Name, len(values), MaxFlags),
						g.backend.Name(), loc)

					values = values[:MaxFlags]
				}

				fs := FlagSet{Column: col.Name}
				for i, v := range values {
					if v == "" {
						continue
					}

					fs.Values = append(fs.Values, Flag{Name: FlagName(col.Name, v), Bit: FlagBit(i)})
				}

				m.Flags = append(m.Flags, fs)
			}
		}
	}
}

// GenerateAll runs every backend over s concurrently. The schema is only
// read, so backends share it without locking. Results are returned in
// backend order; a backend's own failure is recorded in its Result.
func GenerateAll(s *schema.Schema, opts config.Options, baseName string, backends []Backend) []*Result {
	results := make([]*Result, len(backends))

	var eg errgroup.Group

	for i, b := range backends {
		i, b := i, b

		eg.Go(func() error {
			results[i] = NewGenerator(b, opts, baseName).Generate(s)
			return nil
		})
	}

	_ = eg.Wait()

	return results
}
