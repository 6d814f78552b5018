// Package asbinding generates the AngelScript engine registration of the
// C++ record classes emitted by the cpp backend.
package asbinding

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"castledb-generator/internal/config"
	"castledb-generator/internal/gen"
	"castledb-generator/internal/schema"
)

// Name is the registry name of this backend.
const Name = "asbinding"

// RequiredBase is the only base class the bindings can register.
const RequiredBase = "RefCounted"

// fileSuffix keeps the binding files apart from the cpp backend's files
// when both share a base name.
const fileSuffix = "AS"

//go:embed *.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New(Name).Funcs(gen.Funcs()).ParseFS(tmplFS, "*.tmpl"))

func init() {
	gen.Register(Backend{})
}

// Backend is the AngelScript bindings backend.
type Backend struct{}

// Name returns "asbinding".
func (Backend) Name() string {
	return Name
}

// Check requires inherits=RefCounted.
func (Backend) Check(opts config.Options) error {
	if opts.Inherits != RequiredBase {
		return gen.ConfigError("Can only generate AS bindings for %s derived types", RequiredBase)
	}

	return nil
}

type view struct {
	*gen.Model
	RecordsHeader string
	Header        string
}

// Render produces <base>AS.h and <base>AS.cpp.
func (Backend) Render(m *gen.Model) ([]gen.GeneratedFile, error) {
	base := m.BaseName + fileSuffix

	v := view{
		Model:         m,
		RecordsHeader: path.Join(m.Options.HeaderDir, gen.FileName(m.BaseName, ".h")),
		Header:        path.Join(m.Options.HeaderDir, gen.FileName(base, ".h")),
	}

	h, err := gen.Execute(tmpl, "header", v)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	src, err := gen.Execute(tmpl, "source", v)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	return []gen.GeneratedFile{
		{Filename: gen.FileName(base, ".h"), Content: h},
		{Filename: gen.FileName(base, ".cpp"), Content: src},
	}, nil
}

// Getter returns the name of the static list getter of a List member.
func (view) Getter(record, field string) string {
	return record + "Get" + gen.Exported(field)
}

// MapColumn maps a column to the script declaration of the C++ member. Raw
// reference keys are private and not registered.
func (Backend) MapColumn(c *gen.ColumnContext) (gen.Mapping, error) {
	col := c.Column

	field := func(typ string) gen.Mapping {
		return gen.Mapping{Fields: []gen.Field{{Name: col.Name, Type: typ, Kind: col.TypeID}}}
	}

	switch col.TypeID {
	case schema.TypeUniqueIdentifier:
		if c.IntegerKeys() {
			return field("int"), nil
		}

		return field("String"), nil
	case schema.TypeText, schema.TypeFile, schema.TypeImage:
		return field("String"), nil
	case schema.TypeBoolean:
		return field("bool"), nil
	case schema.TypeInteger:
		return field("int"), nil
	case schema.TypeFloat:
		return field("float"), nil
	case schema.TypeFlags:
		return field("uint"), nil
	case schema.TypeColor:
		return field("Color"), nil
	case schema.TypeEnum:
		return field(c.EnumTypeName()), nil
	case schema.TypeDynamic:
		return field("JSONValue"), nil
	case schema.TypeRef:
		keyType := "String"
		if c.IntegerKeys() {
			keyType = "int"
		}

		return gen.Mapping{Fields: []gen.Field{
			{Name: col.Name, Type: c.TargetTypeName() + "@+", Kind: col.TypeID},
			{Name: c.RawKeyName(), Type: keyType, Kind: col.TypeID, Private: true},
		}}, nil
	case schema.TypeList:
		return field(c.ListTypeName()), nil
	case schema.TypeCustom:
		typ, ok := c.CustomFieldType()
		if !ok {
			return gen.Mapping{}, nil
		}

		return field(strings.ReplaceAll(typ, "*", "@+")), nil
	}

	return gen.Mapping{}, gen.ErrUnsupported
}

// EmitResolve emits nothing; resolution runs in the C++ classes.
func (Backend) EmitResolve(gen.ResolveStep) []string {
	return nil
}
