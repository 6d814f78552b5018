// Package golang generates Go record types with the same two-phase
// Load/ResolveReferences protocol as the other backends. The output is
// self-contained: values are read from encoding/json's generic
// map[string]any form through private accessors emitted alongside.
package golang

import (
	"embed"
	"fmt"
	"go/format"
	"slices"
	"strings"
	"text/template"
	"unicode"

	"castledb-generator/internal/config"
	"castledb-generator/internal/gen"
	"castledb-generator/internal/schema"
)

// Name is the registry name of this backend.
const Name = "go"

//go:embed golang.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New(Name).Funcs(gen.Funcs()).ParseFS(tmplFS, "golang.go.tmpl"))

func init() {
	gen.Register(Backend{})
}

// Backend is the Go backend.
type Backend struct{}

// Name returns "go".
func (Backend) Name() string {
	return Name
}

// Check accepts any options.
func (Backend) Check(config.Options) error {
	return nil
}

type view struct {
	*gen.Model
	Package string
}

// Render produces <base>.go, formatted.
func (Backend) Render(m *gen.Model) ([]gen.GeneratedFile, error) {
	out, err := gen.Execute(tmpl, "file", view{Model: m, Package: PackageName(m)})
	if err != nil {
		return nil, err
	}

	formatted, err := format.Source(out)
	if err != nil {
		return nil, fmt.Errorf("formatting code: %w", err)
	}

	return []gen.GeneratedFile{{Filename: gen.FileName(m.BaseName, ".go"), Content: formatted}}, nil
}

// PackageName returns the package clause name: the namespace if set,
// otherwise the base name, lower-cased and stripped to letters and digits.
func PackageName(m *gen.Model) string {
	src := m.Options.Namespace
	if src == "" {
		src = m.BaseName
	}

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, src)

	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "gamedata" + name
	}

	return name
}

// MapColumn maps a column to an exported struct field read from a
// map[string]any named value.
func (Backend) MapColumn(c *gen.ColumnContext) (gen.Mapping, error) {
	col := c.Column
	name := fieldName(col.Name)

	scalar := func(typ, accessor string) gen.Mapping {
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("r.%s = %s(value, %q)", name, accessor, col.Name)},
		}
	}

	switch col.TypeID {
	case schema.TypeUniqueIdentifier:
		if c.IntegerKeys() {
			return scalar("int", "jsonInt"), nil
		}

		return scalar("string", "jsonString"), nil
	case schema.TypeText, schema.TypeFile, schema.TypeImage:
		return scalar("string", "jsonString"), nil
	case schema.TypeBoolean:
		return scalar("bool", "jsonBool"), nil
	case schema.TypeInteger:
		return scalar("int", "jsonInt"), nil
	case schema.TypeFloat:
		return scalar("float64", "jsonFloat"), nil
	case schema.TypeFlags, schema.TypeColor:
		return scalar("uint32", "jsonUint"), nil
	case schema.TypeEnum:
		typ := c.EnumTypeName()

		load := []string{fmt.Sprintf("switch jsonInt(value, %q) {", col.Name)}
		for _, e := range c.EnumCases() {
			load = append(load, fmt.Sprintf("case %d:", e.Value), fmt.Sprintf("\tr.%s = %s_%s", name, typ, e.Name))
		}

		load = append(load, "}")

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID}},
			Load:   load,
		}, nil
	case schema.TypeDynamic:
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "any", Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("r.%s = value[%q]", name, col.Name)},
		}, nil
	case schema.TypeRef:
		key := c.RawKeyName()

		keyType, accessor := "string", "jsonString"
		if c.IntegerKeys() {
			keyType, accessor = "int", "jsonInt"
		}

		return gen.Mapping{
			Fields: []gen.Field{
				{Name: name, Type: "*" + c.TargetTypeName(), Kind: col.TypeID},
				{Name: key, Type: keyType, Kind: col.TypeID, Private: true},
			},
			Load: []string{
				fmt.Sprintf("r.%s = nil", name),
				fmt.Sprintf("r.%s = %s(value, %q)", key, accessor, col.Name),
			},
			Cleanup: []string{fmt.Sprintf("r.%s = nil", name)},
		}, nil
	case schema.TypeList:
		elem := c.ListTypeName()

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "[]*" + elem, Kind: col.TypeID}},
			Load: []string{
				fmt.Sprintf("r.%s = nil", name),
				fmt.Sprintf("for _, v := range jsonArray(value, %q) {", col.Name),
				fmt.Sprintf("\tval := &%s{}", elem),
				"\tval.Load(jsonObject(v))",
				fmt.Sprintf("\tr.%s = append(r.%s, val)", name, name),
				"}",
			},
			Cleanup: []string{
				fmt.Sprintf("for _, v := range r.%s {", name),
				"\tv.Release()",
				"}",
				fmt.Sprintf("r.%s = nil", name),
			},
		}, nil
	}

	return gen.Mapping{}, gen.ErrUnsupported
}

// EmitResolve binds the first record of the target collection whose key
// equals the raw key.
func (Backend) EmitResolve(step gen.ResolveStep) []string {
	field := fieldName(step.Column)

	if step.Kind == gen.ResolveList {
		return []string{
			fmt.Sprintf("for _, v := range r.%s {", field),
			"\tv.ResolveReferences(db)",
			"}",
		}
	}

	return []string{
		fmt.Sprintf("for _, v := range db.%s {", step.Collection),
		fmt.Sprintf("\tif v.%s == r.%s {", fieldName(step.KeyColumn), gen.RawKeyName(step.Column)),
		fmt.Sprintf("\t\tr.%s = v", field),
		"\t\tbreak",
		"\t}",
		"}",
	}
}

// fieldName exports a column name. Names taken by the generated methods get
// a Value suffix.
func fieldName(column string) string {
	name := gen.Exported(column)
	if slices.Contains(gen.MemberNames, name) {
		name += "Value"
	}

	return name
}
