package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrDuplicateSheet is returned when two sheets share a name.
var ErrDuplicateSheet = errors.New("duplicate sheet name")

type cdbFile struct {
	Sheets      []cdbSheet  `json:"sheets"`
	CustomTypes []cdbCustom `json:"customTypes"`
}

type cdbSheet struct {
	Name    string      `json:"name"`
	Columns []cdbColumn `json:"columns"`
}

type cdbColumn struct {
	Name    string `json:"name"`
	TypeStr string `json:"typeStr"`
}

type cdbCustom struct {
	Name  string    `json:"name"`
	Cases []cdbCase `json:"cases"`
}

type cdbCase struct {
	Name       string      `json:"name"`
	Args       []cdbColumn `json:"args"`
	ReturnType string      `json:"returnType"`
}

// LoadFile loads and parses a .cdb file from the given path.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.Source = filepath.Base(path)

	return s, nil
}

// Parse parses the sheet and custom type definitions of a .cdb document.
// Sheet lines are ignored here; they are data, not schema.
func Parse(data []byte) (*Schema, error) {
	var f cdbFile

	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	s := &Schema{Source: "schema"}
	seen := make(map[string]bool, len(f.Sheets))

	for _, fs := range f.Sheets {
		if seen[fs.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSheet, fs.Name)
		}

		seen[fs.Name] = true

		sh := &Sheet{Name: fs.Name}

		for _, fc := range fs.Columns {
			col, err := parseColumn(fc)
			if err != nil {
				return nil, fmt.Errorf("sheet %s: %w", fs.Name, err)
			}

			sh.Columns = append(sh.Columns, col)
		}

		s.Sheets = append(s.Sheets, sh)
	}

	for _, fc := range f.CustomTypes {
		ct := &CustomType{Name: fc.Name}

		for _, c := range fc.Cases {
			ctor := Constructor{Name: c.Name, ReturnType: c.ReturnType}
			if ctor.ReturnType == "" {
				ctor.ReturnType = fc.Name + "*"
			}

			for _, a := range c.Args {
				arg, err := parseColumn(a)
				if err != nil {
					return nil, fmt.Errorf("custom type %s.%s: %w", fc.Name, c.Name, err)
				}

				ctor.Args = append(ctor.Args, arg)
			}

			ct.Constructors = append(ct.Constructors, ctor)
		}

		s.CustomTypes = append(s.CustomTypes, ct)
	}

	return s, nil
}

func parseColumn(fc cdbColumn) (*Column, error) {
	t, payload, err := ParseTypeStr(fc.TypeStr)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", fc.Name, err)
	}

	col := &Column{Name: fc.Name, TypeID: t}

	switch {
	case t.HasKey():
		col.Key = payload
	case t.HasEnumerations():
		// Values are encoded by position, so blank entries keep their slot.
		if strings.TrimSpace(payload) == "" {
			break
		}

		for _, v := range strings.Split(payload, ",") {
			col.Enumerations = append(col.Enumerations, strings.TrimSpace(v))
		}
	}

	return col, nil
}
