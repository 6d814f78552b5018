package gen

import (
	"strings"
	"unicode"

	"castledb-generator/internal/common"
	"castledb-generator/internal/config"
	"castledb-generator/internal/schema"
)

// MaxFlags is the number of distinct flag bits of the targets' unsigned
// integer type.
const MaxFlags = 32

// ColumnContext is what a backend sees when mapping one column.
type ColumnContext struct {
	Schema  *schema.Schema
	Sheet   *schema.Sheet
	Column  *schema.Column
	Options config.Options
}

// Name returns the column name.
func (c *ColumnContext) Name() string {
	return c.Column.Name
}

// RawKeyName returns the name of the private field holding a Ref's raw key.
func (c *ColumnContext) RawKeyName() string {
	return RawKeyName(c.Column.Name)
}

// EnumTypeName returns the generated enumeration type of an Enum column.
func (c *ColumnContext) EnumTypeName() string {
	return EnumTypeName(c.Column.Name)
}

// EnumCases returns the constants an Enum column's load switch assigns,
// indexed by declaration position.
func (c *ColumnContext) EnumCases() []EnumValue {
	return enumValues(c.Column.Enumerations)
}

// enumValues names the values by position. Blank entries get no constant
// but keep their position.
func enumValues(values []string) []EnumValue {
	out := make([]EnumValue, 0, len(values))

	for i, v := range values {
		if v == "" {
			continue
		}

		out = append(out, EnumValue{Name: EnumValueName(v), Value: i})
	}

	return out
}

// ListTypeName returns the sub-record type of a List column.
func (c *ColumnContext) ListTypeName() string {
	return ListTypeName(c.Sheet, c.Column)
}

// TargetTypeName returns the referenced record type of a Ref column.
func (c *ColumnContext) TargetTypeName() string {
	return schema.TypeName(c.Column.Key)
}

// CustomFieldType returns the declared return type of the first constructor
// of a Custom column's type. ok is false if no field should be declared.
func (c *ColumnContext) CustomFieldType() (typ string, ok bool) {
	ct := c.Schema.CustomType(c.Column.Key)
	if ct == nil {
		return "", false
	}

	ctor, ok := common.First(ct.Constructors)
	if !ok {
		return "", false
	}

	rt := strings.TrimSpace(ctor.ReturnType)
	if rt == "" || rt == schema.VoidReturn {
		return "", false
	}

	return rt, true
}

// IntegerKeys reports whether keys are integers (option id=int).
func (c *ColumnContext) IntegerKeys() bool {
	return c.Options.IntegerIDs
}

// RawKeyName returns the private raw key field name for a Ref column.
func RawKeyName(column string) string {
	return column + "Key"
}

// EnumTypeName returns the enumeration type name for an Enum column.
func EnumTypeName(column string) string {
	return "E_" + Upper(column)
}

// EnumValueName returns the constant name of an enumeration value.
func EnumValueName(value string) string {
	return Upper(value)
}

// FlagName returns the constant name of one flag of a Flags column.
func FlagName(column, value string) string {
	return Upper(column) + "_" + Upper(value)
}

// FlagBit returns the value of the flag at position i.
func FlagBit(i int) uint32 {
	return 1 << uint(i)
}

// ListTypeName returns the sub-record type name of a List column.
func ListTypeName(sheet *schema.Sheet, col *schema.Column) string {
	return schema.TypeName(sheet.Name + schema.NestedSeparator + col.Name)
}

// CollectionName returns the database collection field for a record type.
func CollectionName(typeName string) string {
	return typeName + "List"
}

// Upper turns s into an upper case identifier. Characters that cannot
// appear in identifiers become underscores.
func Upper(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToUpper(r)
		}

		return '_'
	}, s)
}

// Exported upper-cases the first letter of s.
func Exported(s string) string {
	if s == "" {
		return s
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}
