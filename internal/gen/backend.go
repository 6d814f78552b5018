package gen

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"castledb-generator/internal/config"
	"castledb-generator/internal/schema"
)

var (
	// ErrUnsupported is returned by MapColumn for column kinds the backend
	// cannot represent. The column is skipped with a warning.
	ErrUnsupported = errors.New("unsupported column type")
	// ErrConfig marks fatal configuration errors returned by Check.
	ErrConfig = errors.New("invalid configuration")
)

// Backend is one target language.
type Backend interface {
	// Name returns the backend identifier (e.g., "cpp", "csharp").
	Name() string

	// Check validates the options. An error aborts this backend and no
	// output is written.
	Check(opts config.Options) error

	// MapColumn is the type mapping table: the declared fields, the load
	// statements and the cleanup statements for one column.
	MapColumn(c *ColumnContext) (Mapping, error)

	// EmitResolve returns the statements performing one resolve step.
	EmitResolve(step ResolveStep) []string

	// Render turns the model into output files.
	Render(m *Model) ([]GeneratedFile, error)
}

// MemberNames are the methods every backend generates on a record. A field
// may not take one of these names, nor the record's own type name.
var MemberNames = []string{"Load", "Save", "ResolveReferences", "Release"}

// Mapping is the output of a backend's type mapping table for one column.
type Mapping struct {
	Fields  []Field
	Load    []string
	Cleanup []string
}

// Field is one declared field of a generated record type.
type Field struct {
	// Name is the identifier in the target language.
	Name string
	// Type is the declared type in the target language.
	Type string
	// Kind is the column kind the field was produced for.
	Kind schema.TypeID
	// Private marks bookkeeping fields such as raw reference keys.
	Private bool
	// Init is an optional initializer expression.
	Init string
}

// ResolveKind distinguishes resolve steps.
type ResolveKind int

const (
	// ResolveRef binds a reference handle by scanning the target collection.
	ResolveRef ResolveKind = iota
	// ResolveList forwards resolution to the records of a List column.
	ResolveList
)

// ResolveStep describes one part of a record's ResolveReferences.
type ResolveStep struct {
	Kind ResolveKind
	// Column is the Ref or List column name.
	Column string
	// Target is the type name of the referenced record or list element.
	Target string
	// Collection is the database collection scanned by a ResolveRef step.
	Collection string
	// KeyColumn is the primary key column name of the target sheet.
	KeyColumn string
}

// ConfigError wraps ErrConfig with a message.
func ConfigError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Backend)
)

// Register adds a backend to the registry.
func Register(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[b.Name()] = b
}

// Get retrieves a backend by name.
func Get(name string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}

	return b, nil
}

// Available returns all registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
