package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"castledb-generator/internal/common"
)

// Funcs returns the template functions shared by backend templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"indent": Indent,
		"upper":  strings.ToUpper,
		"join":   strings.Join,
		"add":    func(a, b int) int { return a + b },
	}
}

// Indent prefixes every line with prefix and joins them with newlines.
// Empty lines stay empty.
func Indent(prefix string, lines []string) string {
	var sb strings.Builder

	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		if line != "" {
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// Execute runs the named template with data.
func Execute(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

// FileName returns base with its extension replaced by ext.
func FileName(base, ext string) string {
	return common.ChangeExt(base, ext)
}
