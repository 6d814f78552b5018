// Package schema provides the in-memory model of a CastleDB database
// definition: sheets, typed columns, enumerations and custom types.
//
// The model is built once (usually by LoadFile or Parse) and is read-only
// afterwards, so it can be shared by any number of concurrent backends.
//
// # Sheets
//
// A sheet is a record type. Sheets whose name contains NestedSeparator
// ("Hero@items") hold the sub-records of a List column on their parent
// sheet and are not top-level collections of the database.
//
// # Column types
//
// TypeID is the closed set of column kinds. Its numeric values follow the
// type codes used in the "typeStr" of a .cdb file, e.g. "6:Team" is a Ref
// to the Team sheet and "5:red,green" an Enum with two values.
package schema
