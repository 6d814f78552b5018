package cpp

import (
	"fmt"

	"castledb-generator/internal/gen"
	"castledb-generator/internal/schema"
)

// MapColumn maps a column to its C++ member and the statements reading it
// from a JSONValue named value.
func (Backend) MapColumn(c *gen.ColumnContext) (gen.Mapping, error) {
	col := c.Column
	name := col.Name

	scalar := func(typ, init, getter string) gen.Mapping {
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID, Init: init}},
			Load:   []string{fmt.Sprintf("%s = value[\"%s\"].%s();", name, name, getter)},
		}
	}

	switch col.TypeID {
	case schema.TypeUniqueIdentifier:
		if c.IntegerKeys() {
			return scalar("int", "0", "GetInt"), nil
		}

		return scalar("String", "", "GetString"), nil
	case schema.TypeText, schema.TypeFile, schema.TypeImage:
		return scalar("String", "", "GetString"), nil
	case schema.TypeBoolean:
		return scalar("bool", "false", "GetBool"), nil
	case schema.TypeInteger:
		return scalar("int", "0", "GetInt"), nil
	case schema.TypeFloat:
		return scalar("float", "0.0f", "GetFloat"), nil
	case schema.TypeFlags:
		return scalar("unsigned", "0", "GetUInt"), nil
	case schema.TypeColor:
		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "Color", Kind: col.TypeID}},
			Load:   []string{fmt.Sprintf("%s.FromUInt(value[\"%s\"].GetUInt());", name, name)},
		}, nil
	case schema.TypeEnum:
		typ := c.EnumTypeName()

		load := []string{fmt.Sprintf("switch (value[\"%s\"].GetInt()) {", name)}
		for _, e := range c.EnumCases() {
			load = append(load, fmt.Sprintf("case %d: %s = %s_%s; break;", e.Value, name, typ, e.Name))
		}

		load = append(load, "}")

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: typ, Kind: col.TypeID, Init: typ + "()"}},
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
			keyField.Type, keyField.Init, getter = "int", "0", "GetInt"
		}

		return gen.Mapping{
			Fields: []gen.Field{
				{Name: name, Type: c.TargetTypeName() + "*", Kind: col.TypeID, Init: "nullptr"},
				keyField,
			},
			Load: []string{
				name + " = nullptr;",
				fmt.Sprintf("%s = value[\"%s\"].%s();", key, name, getter),
			},
			Cleanup: []string{name + " = nullptr;"},
		}, nil
	case schema.TypeList:
		elem := c.ListTypeName()

		return gen.Mapping{
			Fields: []gen.Field{{Name: name, Type: "Vector<" + elem + "*>", Kind: col.TypeID}},
			Load: []string{
				fmt.Sprintf("const JSONValue& %sArray = value[\"%s\"];", name, name),
				fmt.Sprintf("for (unsigned i = 0; i < %sArray.Size(); ++i) {", name),
				fmt.Sprintf("\t%s* val = new %s();", elem, elem),
				fmt.Sprintf("\tval->Load(%sArray[i]);", name),
				fmt.Sprintf("\t%s.Push(val);", name),
				"}",
			},
			Cleanup: []string{
				fmt.Sprintf("for (unsigned i = 0; i < %s.Size(); ++i)", name),
				fmt.Sprintf("\tdelete %s[i];", name),
				name + ".Clear();",
			},
		}, nil
	case schema.TypeCustom:
		typ, ok := c.CustomFieldType()
		if !ok {
			return gen.Mapping{}, nil
		}

		f := gen.Field{Name: name, Type: typ, Kind: col.TypeID}
		if isPointer(typ) {
			f.Init = "nullptr"
		}

		return gen.Mapping{Fields: []gen.Field{f}}, nil
	}

	return gen.Mapping{}, gen.ErrUnsupported
}

// EmitResolve scans the target collection for the first record whose key
// equals the raw key.
func (Backend) EmitResolve(step gen.ResolveStep) []string {
	if step.Kind == gen.ResolveList {
		return []string{
			fmt.Sprintf("for (unsigned i = 0; i < %s.Size(); ++i)", step.Column),
			fmt.Sprintf("\t%s[i]->ResolveReferences(db);", step.Column),
		}
	}

	return []string{
		fmt.Sprintf("for (unsigned i = 0; i < db->%s.Size(); ++i) {", step.Collection),
		fmt.Sprintf("\tif (db->%s[i]->%s == %s) {", step.Collection, step.KeyColumn, gen.RawKeyName(step.Column)),
		fmt.Sprintf("\t\t%s = db->%s[i];", step.Column, step.Collection),
		"\t\tbreak;",
		"\t}",
		"}",
	}
}

func isPointer(typ string) bool {
	return len(typ) > 0 && typ[len(typ)-1] == '*'
}
