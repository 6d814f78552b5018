// Package dataset loads the lines of a CastleDB document into generic
// records following the same two-phase protocol as generated code: Load
// fills values and raw reference keys, ResolveReferences then binds every
// reference against the complete collections.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"castledb-generator/internal/schema"
)

// Record is one loaded line.
type Record struct {
	Sheet *schema.Sheet
	// Values holds scalar, enum, flags, dynamic and custom values by column.
	Values map[string]any
	// Lists holds the sub-records of List columns.
	Lists map[string][]*Record
	// Keys holds the raw key captured for each Ref column.
	Keys map[string]any
	refs map[string]*Record
}

func newRecord(sh *schema.Sheet) *Record {
	return &Record{
		Sheet:  sh,
		Values: make(map[string]any),
		Lists:  make(map[string][]*Record),
		Keys:   make(map[string]any),
		refs:   make(map[string]*Record),
	}
}

// Ref returns the record bound to a Ref column, or nil while unbound.
func (r *Record) Ref(column string) *Record {
	return r.refs[column]
}

// Key returns the value of the record's primary key column.
func (r *Record) Key() (any, bool) {
	col := r.Sheet.KeyColumn()
	if col == nil {
		return nil, false
	}

	v, ok := r.Values[col.Name]

	return v, ok
}

// Database holds one collection per top-level sheet.
type Database struct {
	Schema *schema.Schema
	tables map[string][]*Record
}

// New creates an empty database for s.
func New(s *schema.Schema) *Database {
	return &Database{Schema: s, tables: make(map[string][]*Record)}
}

// LoadFile reads a .cdb file and loads it into a database for s.
func LoadFile(s *schema.Schema, path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	return LoadJSON(s, data)
}

// LoadJSON decodes a document and loads it into a database for s.
func LoadJSON(s *schema.Schema, data []byte) (*Database, error) {
	var doc map[string]any

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse data JSON: %w", err)
	}

	db := New(s)
	db.Load(doc)

	return db, nil
}

// Table returns the records of a top-level sheet in load order.
func (db *Database) Table(sheet string) []*Record {
	return db.tables[sheet]
}

// Load appends the lines of every sheet entry of doc to the matching
// collection, then resolves references. Entries naming no top-level sheet
// are ignored.
func (db *Database) Load(doc map[string]any) {
	top := db.Schema.TopLevel()

	for _, entry := range array(doc["sheets"]) {
		sheet := object(entry)
		name, _ := sheet["name"].(string)

		for _, sh := range top {
			if sh.Name != name {
				continue
			}

			for _, line := range array(sheet["lines"]) {
				db.tables[sh.Name] = append(db.tables[sh.Name], db.loadRecord(sh, object(line)))
			}

			break
		}
	}

	db.ResolveReferences()
}

func (db *Database) loadRecord(sh *schema.Sheet, value map[string]any) *Record {
	r := newRecord(sh)

	for _, col := range sh.Columns {
		raw, present := value[col.Name]

		switch col.TypeID {
		case schema.TypeUniqueIdentifier, schema.TypeText, schema.TypeFile, schema.TypeImage:
			if present {
				r.Values[col.Name] = raw
			}
		case schema.TypeInteger:
			r.Values[col.Name] = int(number(raw))
		case schema.TypeFloat:
			r.Values[col.Name] = number(raw)
		case schema.TypeBoolean:
			b, _ := raw.(bool)
			r.Values[col.Name] = b
		case schema.TypeFlags, schema.TypeColor:
			r.Values[col.Name] = uint32(number(raw))
		case schema.TypeEnum:
			i := int(number(raw))
			if i < 0 || i >= len(col.Enumerations) {
				i = 0
			}

			r.Values[col.Name] = i
		case schema.TypeDynamic, schema.TypeCustom:
			if present {
				r.Values[col.Name] = raw
			}
		case schema.TypeRef:
			if present {
				r.Keys[col.Name] = raw
			}
		case schema.TypeList:
			nested := db.Schema.NestedSheet(sh, col)
			if nested == nil {
				continue
			}

			for _, v := range array(raw) {
				r.Lists[col.Name] = append(r.Lists[col.Name], db.loadRecord(nested, object(v)))
			}
		}
	}

	return r
}

// ResolveReferences binds every Ref column of every record, including
// records nested in List columns. Each binding is the first record of the
// target collection whose primary key equals the raw key, or nil.
func (db *Database) ResolveReferences() {
	for _, sh := range db.Schema.TopLevel() {
		if !db.Schema.NeedsResolve(sh) {
			continue
		}

		for _, r := range db.tables[sh.Name] {
			db.resolve(r)
		}
	}
}

func (db *Database) resolve(r *Record) {
	for _, col := range r.Sheet.Columns {
		switch col.TypeID {
		case schema.TypeRef:
			r.refs[col.Name] = db.lookup(col.Key, r.Keys[col.Name])
		case schema.TypeList:
			for _, sub := range r.Lists[col.Name] {
				db.resolve(sub)
			}
		}
	}
}

func (db *Database) lookup(sheet string, key any) *Record {
	if key == nil {
		return nil
	}

	for _, t := range db.tables[sheet] {
		if k, ok := t.Key(); ok && keyEqual(k, key) {
			return t
		}
	}

	return nil
}

// Unresolved is a reference whose raw key matched no record.
type Unresolved struct {
	// Path locates the record, e.g. "Hero[0].items[1]".
	Path   string
	Column string
	Target string
	Key    any
}

func (u Unresolved) String() string {
	return fmt.Sprintf("%s.%s: no %s with key %v", u.Path, u.Column, u.Target, u.Key)
}

// Unresolved returns every reference with a non-empty raw key that is still
// unbound, in collection order.
func (db *Database) Unresolved() []Unresolved {
	var out []Unresolved

	for _, sh := range db.Schema.TopLevel() {
		for i, r := range db.tables[sh.Name] {
			out = db.unresolved(out, r, fmt.Sprintf("%s[%d]", sh.Name, i))
		}
	}

	return out
}

func (db *Database) unresolved(out []Unresolved, r *Record, path string) []Unresolved {
	for _, col := range r.Sheet.Columns {
		switch col.TypeID {
		case schema.TypeRef:
			key, ok := r.Keys[col.Name]
			if !ok || keyString(key) == "" || r.refs[col.Name] != nil {
				continue
			}

			out = append(out, Unresolved{Path: path, Column: col.Name, Target: col.Key, Key: key})
		case schema.TypeList:
			for i, sub := range r.Lists[col.Name] {
				out = db.unresolved(out, sub, fmt.Sprintf("%s.%s[%d]", path, col.Name, i))
			}
		}
	}

	return out
}

// keyEqual compares keys by JSON type and value, the way typed generated
// code does: the string "1" never equals the number 1.
func keyEqual(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	default:
		return false
	}
}

// keyString formats a raw key for reports.
func keyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(k)
	}
}

func number(v any) float64 {
	f, _ := v.(float64)
	return f
}

func array(v any) []any {
	a, _ := v.([]any)
	return a
}

func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
