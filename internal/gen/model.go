package gen

import (
	"castledb-generator/internal/config"
	"castledb-generator/internal/schema"
)

// Model is everything a backend renders.
type Model struct {
	// Source is the schema file name, for banners.
	Source string
	// BaseName is the output file name without extension.
	BaseName string
	Options  config.Options
	Schema   *schema.Schema

	// Declared lists every record type name in declaration order, for
	// forward declarations.
	Declared []string
	Enums    []Enum
	Flags    []FlagSet
	// Records in emission order (see OrderSheets).
	Records []Record
	// Tables are the top-level collections in declaration order.
	Tables []Table
}

// Record is one generated record type.
type Record struct {
	Name    string
	Sheet   *schema.Sheet
	Fields  []Field
	Load    []string
	Cleanup []string
	Resolve []string
	// Steps are the resolve steps Resolve was emitted from.
	Steps []ResolveStep
}

// Table is one collection of the aggregate root.
type Table struct {
	// Name is the record type name.
	Name string
	// SheetName is the name matched against the document's sheet entries.
	SheetName string
	// Collection is the collection field name.
	Collection string
	// NeedsResolve is true if its records must be resolved after loading.
	NeedsResolve bool
}

// Enum is a generated enumeration type.
type Enum struct {
	Name   string
	Values []EnumValue
}

// EnumValue is one enumeration constant and its encoded value.
type EnumValue struct {
	Name  string
	Value int
}

// FlagSet is the group of bit constants of one Flags column.
type FlagSet struct {
	Column string
	Values []Flag
}

// Flag is one bit constant.
type Flag struct {
	Name string
	Bit  uint32
}

// ResolvedTables returns the tables whose records need resolution.
func (m *Model) ResolvedTables() []Table {
	var out []Table

	for _, t := range m.Tables {
		if t.NeedsResolve {
			out = append(out, t)
		}
	}

	return out
}
