// Package config holds generation options and the YAML project file.
//
// Options are usually given as a switch map ("db", "ns", "inherits", "id",
// "bin", "hd"). Unknown keys and invalid values never stop generation; they
// are reported as warnings.
package config

import (
	"fmt"
	"sort"

	"castledb-generator/internal/diagnostic"
	"castledb-generator/internal/match"
)

// DefaultDBName is the aggregate root type name used when "db" is not set.
const DefaultDBName = "GameDatabase"

// Switch keys.
const (
	KeyDB        = "db"
	KeyNamespace = "ns"
	KeyInherits  = "inherits"
	KeyID        = "id"
	KeyBinary    = "bin"
	KeyHeaderDir = "hd"
)

var knownKeys = []string{KeyDB, KeyNamespace, KeyInherits, KeyID, KeyBinary, KeyHeaderDir}

// BinaryMode selects binary load/save bindings.
type BinaryMode string

const (
	BinaryOff  BinaryMode = ""
	BinaryOn   BinaryMode = "on"
	BinaryOnly BinaryMode = "only"
)

// Options holds the recognized generation options.
type Options struct {
	// DBName is the aggregate root type name.
	DBName string
	// Namespace optionally encloses generated code.
	Namespace string
	// Inherits is the base type of generated records for host-engine backends.
	Inherits string
	// IntegerIDs switches key columns and raw reference keys to integers.
	IntegerIDs bool
	// Binary additionally emits binary load/save bindings.
	Binary BinaryMode
	// HeaderDir prefixes the header include path in split outputs.
	HeaderDir string
}

// DefaultOptions returns the options used when no switch is given.
func DefaultOptions() Options {
	return Options{DBName: DefaultDBName}
}

// JSONEnabled reports whether JSON loading should be emitted.
func (o Options) JSONEnabled() bool {
	return o.Binary != BinaryOnly
}

// BinaryEnabled reports whether binary load/save bindings should be emitted.
func (o Options) BinaryEnabled() bool {
	return o.Binary == BinaryOn || o.Binary == BinaryOnly
}

// FromSwitches converts a switch map into Options. Problems are reported as
// warnings and the offending switch is ignored.
func FromSwitches(switches map[string]string) (Options, diagnostic.Diagnostics) {
	opts := DefaultOptions()

	var diags diagnostic.Diagnostics

	keys := make([]string, 0, len(switches))
	for k := range switches {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v := switches[k]

		switch k {
		case KeyDB:
			if v != "" {
				opts.DBName = v
			}
		case KeyNamespace:
			opts.Namespace = v
		case KeyInherits:
			opts.Inherits = v
		case KeyID:
			if v == "int" {
				opts.IntegerIDs = true
			} else {
				diags.AddWarning(diagnostic.CodeInvalidOption,
					fmt.Sprintf("option id=%q ignored, only \"int\" is recognized", v), "", k)
			}
		case KeyBinary:
			switch BinaryMode(v) {
			case BinaryOn, BinaryOnly:
				opts.Binary = BinaryMode(v)
			default:
				diags.AddWarning(diagnostic.CodeInvalidOption,
					fmt.Sprintf("option bin=%q ignored, expected \"on\" or \"only\"", v), "", k)
			}
		case KeyHeaderDir:
			opts.HeaderDir = v
		default:
			diags.AddWarning(diagnostic.CodeUnsupportedOption,
				fmt.Sprintf("unrecognized option %q%s", k, match.Hint(k, knownKeys)), "", k)
		}
	}

	return opts, diags
}

// Switches returns the switch map equivalent of o, omitting defaults.
func (o Options) Switches() map[string]string {
	out := map[string]string{}

	if o.DBName != "" && o.DBName != DefaultDBName {
		out[KeyDB] = o.DBName
	}

	if o.Namespace != "" {
		out[KeyNamespace] = o.Namespace
	}

	if o.Inherits != "" {
		out[KeyInherits] = o.Inherits
	}

	if o.IntegerIDs {
		out[KeyID] = "int"
	}

	if o.Binary != BinaryOff {
		out[KeyBinary] = string(o.Binary)
	}

	if o.HeaderDir != "" {
		out[KeyHeaderDir] = o.HeaderDir
	}

	return out
}
