// Package csharp generates C# record classes loading from Newtonsoft.Json
// JObject values.
package csharp

import (
	"embed"
	"fmt"
	"text/template"

	"castledb-generator/internal/config"
	"castledb-generator/internal/gen"
	"castledb-generator/internal/schema"
)

// Name is the registry name of this backend.
const Name = "csharp"

//go:embed csharp.cs.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New(Name).Funcs(gen.Funcs()).ParseFS(tmplFS, "csharp.cs.tmpl"))

func init() {
	gen.Register(Backend{})
}

// Backend is the C# backend.
type Backend struct{}

// Name returns "csharp".
func (Backend) Name() string {
	return Name
}

// Check requires a namespace.
func (Backend) Check(opts config.Options) error {
	if opts.Namespace == "" {
		return gen.ConfigError("C# output requires a namespace (ns option)")
	}

	return nil
}

// Render produces <base>.cs.
func (Backend) Render(m *gen.Model) ([]gen.GeneratedFile, error) {
	out, err := gen.Execute(tmpl, "file", m)
	if err != nil {
		return nil, err
	}

	return []gen.GeneratedFile{{Filename: gen.FileName(m.BaseName, ".cs"), Content: out}}, nil
}

// MapColumn maps a column to a C# member and the statements reading it
// from a JObject named value.
func (Backend) MapColumn(c *gen.ColumnContext) (gen.Mapping, error) {
	col := c.Column
	name := col.Name

	scalar := func(typ string) gen.Mapping {
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("%s = value.Value<%s>(\"%s\");", name, typ, name)},
		}
	}

	switch col.TypeID {
	case schema.TypeUniqueIdentifier:
		if c.IntegerKeys() {
			return scalar("int"), nil
		}

		return scalar("string"), nil
	case schema.TypeText, schema.TypeFile, schema.TypeImage:
		return scalar("string"), nil
	case schema.TypeBoolean:
		return scalar("bool"), nil
	case schema.TypeInteger:
		return scalar("int"), nil
	case schema.TypeFloat:
		return scalar("float"), nil
	case schema.TypeFlags, schema.TypeColor:
		return scalar("uint"), nil
	case schema.TypeEnum:
		typ := c.EnumTypeName()

		load := []string{fmt.Sprintf("switch (value.Value<int>(\"%s\")) {", name)}
		for _, e := range c.EnumCases() {
			load = append(load, fmt.Sprintf("case %d: %s = %s.%s; break;", e.Value, name, typ, e.Name))
		}

		load = append(load, "}")

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID}},
			Load:   load,
		}, nil
	case schema.TypeDynamic:
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "JToken", Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("%s = value[\"%s\"];", name, name)},
		}, nil
	case schema.TypeRef:
		key := c.RawKeyName()

		keyType := "string"
		if c.IntegerKeys() {
			keyType = "int"
		}

		return gen.Mapping{
			Fields: []gen.Field{
				{Name: name, Type: c.TargetTypeName(), Kind: col.TypeID, Init: "null"},
				{Name: key, Type: keyType, Kind: col.TypeID, Private: true},
			},
			Load: []string{
				name + " = null;",
				fmt.Sprintf("%s = value.Value<%s>(\"%s\");", key, keyType, name),
			},
			Cleanup: []string{name + " = null;"},
		}, nil
	case schema.TypeList:
		elem := c.ListTypeName()

		return gen.Mapping{
			Fields: []gen.Field{{
				Name: name, Type: "List<" + elem + ">", Kind: col.TypeID,
				Init: "new List<" + elem + ">()",
			}},
			Load: []string{
				fmt.Sprintf("JArray %sArray = value[\"%s\"] as JArray;", name, name),
				fmt.Sprintf("for (int i = 0; %sArray != null && i < %sArray.Count; ++i) {", name, name),
				fmt.Sprintf("\t%s val = new %s();", elem, elem),
				fmt.Sprintf("\tval.Load(%sArray[i] as JObject);", name),
				fmt.Sprintf("\t%s.Add(val);", name),
				"}",
			},
			Cleanup: []string{
				fmt.Sprintf("for (int i = 0; i < %s.Count; ++i)", name),
				fmt.Sprintf("\t%s[i].Release();", name),
				name + ".Clear();",
			},
		}, nil
	}

	return gen.Mapping{}, gen.ErrUnsupported
}

// EmitResolve binds the first record of the target collection whose key
// equals the raw key.
func (Backend) EmitResolve(step gen.ResolveStep) []string {
	if step.Kind == gen.ResolveList {
		return []string{
			fmt.Sprintf("for (int i = 0; i < %s.Count; ++i)", step.Column),
			fmt.Sprintf("\t%s[i].ResolveReferences(db);", step.Column),
		}
	}

	return []string{
		fmt.Sprintf("for (int i = 0; i < db.%s.Count; ++i) {", step.Collection),
		fmt.Sprintf("\tif (db.%s[i].%s == %s) {", step.Collection, step.KeyColumn, gen.RawKeyName(step.Column)),
		fmt.Sprintf("\t\t%s = db.%s[i];", step.Column, step.Collection),
		"\t\tbreak;",
		"\t}",
		"}",
	}
}
