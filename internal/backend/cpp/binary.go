package cpp

import (
	"fmt"
	"strings"

	"castledb-generator/internal/gen"
	"castledb-generator/internal/schema"
)

// accessors maps member types to their Deserializer/Serializer suffix.
var accessors = map[string]string{
	"String":   "String",
	"int":      "Int",
	"bool":     "Bool",
	"float":    "Float",
	"unsigned": "UInt",
	"Color":    "Color",
}

// BinaryLoad returns the statements reading r's members from a Deserializer
// named source. Reference handles, dynamic values and custom values are not
// serialized.
func (v view) BinaryLoad(r gen.Record) []string {
	var out []string

	for _, f := range r.Fields {
		switch {
		case f.Kind == schema.TypeEnum:
			out = append(out, fmt.Sprintf("%s = (%s)source.ReadInt();", f.Name, f.Type))
		case f.Kind == schema.TypeList:
			elem := listElem(f.Type)
			out = append(out,
				"for (unsigned i = 0, n = source.ReadVLE(); i < n; ++i) {",
				fmt.Sprintf("\t%s* val = new %s();", elem, elem),
				"\tval->Load(source);",
				fmt.Sprintf("\t%s.Push(val);", f.Name),
				"}",
			)
		case f.Kind == schema.TypeRef && !f.Private,
			f.Kind == schema.TypeDynamic,
			f.Kind == schema.TypeCustom:
		default:
			if acc, ok := accessors[f.Type]; ok {
				out = append(out, fmt.Sprintf("%s = source.Read%s();", f.Name, acc))
			}
		}
	}

	return out
}

// BinarySave mirrors BinaryLoad for a Serializer named dest.
func (v view) BinarySave(r gen.Record) []string {
	var out []string

	for _, f := range r.Fields {
		switch {
		case f.Kind == schema.TypeEnum:
			out = append(out, fmt.Sprintf("dest.WriteInt((int)%s);", f.Name))
		case f.Kind == schema.TypeList:
			out = append(out,
				fmt.Sprintf("dest.WriteVLE(%s.Size());", f.Name),
				fmt.Sprintf("for (unsigned i = 0; i < %s.Size(); ++i)", f.Name),
				fmt.Sprintf("\t%s[i]->Save(dest);", f.Name),
			)
		case f.Kind == schema.TypeRef && !f.Private,
			f.Kind == schema.TypeDynamic,
			f.Kind == schema.TypeCustom:
		default:
			if acc, ok := accessors[f.Type]; ok {
				out = append(out, fmt.Sprintf("dest.Write%s(%s);", acc, f.Name))
			}
		}
	}

	return out
}

// listElem extracts T from Vector<T*>.
func listElem(typ string) string {
	return strings.TrimSuffix(strings.TrimPrefix(typ, "Vector<"), "*>")
}
