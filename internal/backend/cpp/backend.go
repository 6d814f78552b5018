// Package cpp generates Urho3D C++ record classes: a header declaring every
// type and a source file with the Load, ResolveReferences and destructor
// bodies.
package cpp

import (
	"embed"
	"fmt"
	"path"
	"text/template"

	"castledb-generator/internal/config"
	"castledb-generator/internal/gen"
)

// Name is the registry name of this backend.
const Name = "cpp"

//go:embed *.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New(Name).Funcs(gen.Funcs()).ParseFS(tmplFS, "*.tmpl"))

// baseIncludes maps known base classes to their Urho3D header.
var baseIncludes = map[string]string{
	"RefCounted": "Urho3D/Container/RefCounted.h",
}

func init() {
	gen.Register(Backend{})
}

// Backend is the C++ backend.
type Backend struct{}

// Name returns "cpp".
func (Backend) Name() string {
	return Name
}

// Check accepts any options.
func (Backend) Check(config.Options) error {
	return nil
}

type view struct {
	*gen.Model
	HeaderPath  string
	BaseInclude string
}

// Render produces <base>.h and <base>.cpp.
func (Backend) Render(m *gen.Model) ([]gen.GeneratedFile, error) {
	header := gen.FileName(m.BaseName, ".h")

	v := view{Model: m, HeaderPath: header, BaseInclude: baseIncludes[m.Options.Inherits]}
	if m.Options.HeaderDir != "" {
		v.HeaderPath = path.Join(m.Options.HeaderDir, header)
	}

	h, err := gen.Execute(tmpl, "header", v)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	src, err := gen.Execute(tmpl, "source", v)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	return []gen.GeneratedFile{
		{Filename: header, Content: h},
		{Filename: gen.FileName(m.BaseName, ".cpp"), Content: src},
	}, nil
}
