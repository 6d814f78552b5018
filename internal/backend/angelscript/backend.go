// Package angelscript generates Urho3D AngelScript record classes.
package angelscript

import (
	"embed"
	"fmt"
	"text/template"

	"castledb-generator/internal/config"
	"castledb-generator/internal/gen"
	"castledb-generator/internal/schema"
)

// Name is the registry name of this backend.
const Name = "angelscript"

//go:embed angelscript.as.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New(Name).Funcs(gen.Funcs()).ParseFS(tmplFS, "angelscript.as.tmpl"))

func init() {
	gen.Register(Backend{})
}

// Backend is the AngelScript backend. Script classes are garbage collected
// handles, so the inherits and bin options do not apply.
type Backend struct{}

// Name returns "angelscript".
func (Backend) Name() string {
	return Name
}

// Check accepts any options.
func (Backend) Check(config.Options) error {
	return nil
}

// Render produces <base>.as.
func (Backend) Render(m *gen.Model) ([]gen.GeneratedFile, error) {
	out, err := gen.Execute(tmpl, "file", m)
	if err != nil {
		return nil, err
	}

	return []gen.GeneratedFile{{Filename: gen.FileName(m.BaseName, ".as"), Content: out}}, nil
}

// MapColumn maps a column to a script class member read from a JSONValue
// named value.
func (Backend) MapColumn(c *gen.ColumnContext) (gen.Mapping, error) {
	col := c.Column
	name := col.Name

	scalar := func(typ, getter string) gen.Mapping {
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("%s = value[\"%s\"].%s();", name, name, getter)},
		}
	}

	switch col.TypeID {
	case schema.TypeUniqueIdentifier:
		if c.IntegerKeys() {
			return scalar("int", "GetInt"), nil
		}

		return scalar("String", "GetString"), nil
	case schema.TypeText, schema.TypeFile, schema.TypeImage:
		return scalar("String", "GetString"), nil
	case schema.TypeBoolean:
		return scalar("bool", "GetBool"), nil
	case schema.TypeInteger:
		return scalar("int", "GetInt"), nil
	case schema.TypeFloat:
		return scalar("float", "GetFloat"), nil
	case schema.TypeFlags:
		return scalar("uint", "GetUInt"), nil
	case schema.TypeColor:
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "Color", Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("%s.FromUInt(value[\"%s\"].GetUInt());", name, name)},
		}, nil
	case schema.TypeEnum:
		typ := c.EnumTypeName()

		load := []string{fmt.Sprintf("switch (value[\"%s\"].GetInt()) {", name)}
		for _, e := range c.EnumCases() {
			load = append(load, fmt.Sprintf("case %d: %s = %s::%s; break;", e.Value, name, typ, e.Name))
		}

		load = append(load, "}")

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID}},
			Load:   load,
		}, nil
	case schema.TypeDynamic:
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "JSONValue", Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("%s = value[\"%s\"];", name, name)},
		}, nil
	case schema.TypeRef:
		key := c.RawKeyName()
		keyField := gen.Field{Name: key, Type: "String", Kind: col.TypeID, Private: true}
		getter := "GetString"

		if c.IntegerKeys() {
			keyField.Type, getter = "int", "GetInt"
		}

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: c.TargetTypeName() + "@", Kind: col.TypeID}, keyField},
			Load: []string{
				fmt.Sprintf("@%s = null;", name),
				fmt.Sprintf("%s = value[\"%s\"].%s();", key, name, getter),
			},
			Cleanup: []string{fmt.Sprintf("@%s = null;", name)},
		}, nil
	case schema.TypeList:
		elem := c.ListTypeName()

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "Array<" + elem + "@>", Kind: col.TypeID}},
			Load: []string{
				fmt.Sprintf("JSONValue %sArray = value[\"%s\"];", name, name),
				fmt.Sprintf("for (uint i = 0; i < %sArray.size; ++i) {", name),
				fmt.Sprintf("\t%s@ val = %s();", elem, elem),
				fmt.Sprintf("\tval.Load(%sArray[i]);", name),
				fmt.Sprintf("\t%s.Push(val);", name),
				"}",
			},
			Cleanup: []string{name + ".Clear();"},
		}, nil
	}

	return gen.Mapping{}, gen.ErrUnsupported
}

// EmitResolve binds the first record of the target collection whose key
// equals the raw key.
func (Backend) EmitResolve(step gen.ResolveStep) []string {
	if step.Kind == gen.ResolveList {
		return []string{
			fmt.Sprintf("for (uint i = 0; i < %s.length; ++i)", step.Column),
			fmt.Sprintf("\t%s[i].ResolveReferences(db);", step.Column),
		}
	}

	return []string{
		fmt.Sprintf("for (uint i = 0; i < db.%s.length; ++i) {", step.Collection),
		fmt.Sprintf("\tif (db.%s[i].%s == %s) {", step.Collection, step.KeyColumn, gen.RawKeyName(step.Column)),
		fmt.Sprintf("\t\t@%s = @db.%s[i];", step.Column, step.Collection),
		"\t\tbreak;",
		"\t}",
		"}",
	}
}
