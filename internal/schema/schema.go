package schema

import (
	"strings"
)

// NestedSeparator joins a parent sheet name and a List column name to form
// the name of the sheet holding that column's sub-records.
const NestedSeparator = "@"

// VoidReturn is the custom constructor return type that declares no value.
const VoidReturn = "void"

// Schema is a complete database definition.
type Schema struct {
	// Source is the file name the schema was read from, used in output banners.
	Source string
	// Sheets in declaration order.
	Sheets []*Sheet
	// CustomTypes in declaration order.
	CustomTypes []*CustomType
}

// Sheet is a named record type.
type Sheet struct {
	Name    string
	Columns []*Column
}

// Column is a typed field of a sheet.
type Column struct {
	Name   string
	TypeID TypeID
	// Key names the target sheet (Ref, Layer) or custom type (Custom).
	Key string
	// Enumerations holds the value names of Enum and Flags columns.
	Enumerations []string
}

// CustomType is a user declared type, used by Custom columns.
type CustomType struct {
	Name         string
	Constructors []Constructor
}

// Constructor is one overload of a custom type.
type Constructor struct {
	Name       string
	ReturnType string
	Args       []*Column
}

// Sheet returns the sheet with the given name, or nil.
func (s *Schema) Sheet(name string) *Sheet {
	for _, sh := range s.Sheets {
		if sh.Name == name {
			return sh
		}
	}

	return nil
}

// CustomType returns the custom type with the given name, or nil.
func (s *Schema) CustomType(name string) *CustomType {
	for _, ct := range s.CustomTypes {
		if ct.Name == name {
			return ct
		}
	}

	return nil
}

// TopLevel returns the sheets that are not nested sub-record types, in
// declaration order.
func (s *Schema) TopLevel() []*Sheet {
	var out []*Sheet

	for _, sh := range s.Sheets {
		if !sh.IsNested() {
			out = append(out, sh)
		}
	}

	return out
}

// NestedSheet returns the sub-record sheet of a List column, or nil.
func (s *Schema) NestedSheet(parent *Sheet, col *Column) *Sheet {
	return s.Sheet(parent.Name + NestedSeparator + col.Name)
}

// NeedsResolve reports whether records of sh hold references that must be
// bound after loading, either directly or inside nested List records.
func (s *Schema) NeedsResolve(sh *Sheet) bool {
	return s.needsResolve(sh, map[string]bool{})
}

func (s *Schema) needsResolve(sh *Sheet, seen map[string]bool) bool {
	if sh == nil || seen[sh.Name] {
		return false
	}

	seen[sh.Name] = true

	if sh.HasReferences() {
		return true
	}

	for _, col := range sh.Columns {
		if col.TypeID != TypeList {
			continue
		}

		if s.needsResolve(s.NestedSheet(sh, col), seen) {
			return true
		}
	}

	return false
}

// TypeName returns the sheet name usable as an identifier in generated code.
func (sh *Sheet) TypeName() string {
	return TypeName(sh.Name)
}

// IsNested reports whether sh holds sub-records of another sheet's List column.
func (sh *Sheet) IsNested() bool {
	return strings.Contains(sh.Name, NestedSeparator)
}

// HasReferences reports whether any column of sh is a Ref.
func (sh *Sheet) HasReferences() bool {
	for _, col := range sh.Columns {
		if col.TypeID == TypeRef {
			return true
		}
	}

	return false
}

// KeyColumn returns the primary key column: the first UniqueIdentifier
// column. It returns nil if the sheet has none.
func (sh *Sheet) KeyColumn() *Column {
	for _, col := range sh.Columns {
		if col.TypeID == TypeUniqueIdentifier {
			return col
		}
	}

	return nil
}

// Column returns the column with the given name, or nil.
func (sh *Sheet) Column(name string) *Column {
	for _, col := range sh.Columns {
		if col.Name == name {
			return col
		}
	}

	return nil
}

// TypeStr returns the column's type in .cdb notation, e.g. "6:Team" or
// "5:warrior,mage".
func (c *Column) TypeStr() string {
	payload := c.Key
	if c.TypeID.HasEnumerations() {
		payload = strings.Join(c.Enumerations, ",")
	}

	return TypeStr(c.TypeID, payload)
}

// TypeName turns a sheet name into an identifier by replacing the nested
// separator.
func TypeName(name string) string {
	return strings.ReplaceAll(name, NestedSeparator, "_")
}
