package schema

import (
	"fmt"
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=TypeID -trimprefix=Type -output=typeid_string.go

// TypeID is the kind of a column. Values match the .cdb type codes.
type TypeID int

const (
	TypeUniqueIdentifier TypeID = iota
	TypeText
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeEnum
	TypeRef
	TypeImage
	TypeList
	TypeCustom
	TypeFlags
	TypeColor
	TypeLayer
	TypeFile
	TypeTilePos
	TypeTileLayer
	TypeDynamic

	// TypeTotal is the number of column kinds.
	TypeTotal = int(iota)
)

// IsValid reports whether t is one of the declared column kinds.
func (t TypeID) IsValid() bool {
	return t >= 0 && int(t) < TypeTotal
}

// HasKey reports whether columns of this kind name another sheet or custom type.
func (t TypeID) HasKey() bool {
	switch t {
	case TypeRef, TypeCustom, TypeLayer:
		return true
	default:
		return false
	}
}

// HasEnumerations reports whether columns of this kind carry a value list.
func (t TypeID) HasEnumerations() bool {
	return t == TypeEnum || t == TypeFlags
}

// ParseTypeStr splits a .cdb "typeStr" into its kind and payload.
//
// For Ref, Custom and Layer the payload is the key, for Enum and Flags it is
// the comma separated value list.
func ParseTypeStr(s string) (TypeID, string, error) {
	code, payload, _ := strings.Cut(s, ":")

	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return 0, "", fmt.Errorf("invalid type code %q: %w", s, err)
	}

	t := TypeID(n)
	if !t.IsValid() {
		return 0, "", fmt.Errorf("unknown type code %d in %q", n, s)
	}

	return t, payload, nil
}

// TypeStr formats t and its payload the way ParseTypeStr reads it.
func TypeStr(t TypeID, payload string) string {
	if payload == "" {
		return strconv.Itoa(int(t))
	}

	return strconv.Itoa(int(t)) + ":" + payload
}
