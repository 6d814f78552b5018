package gen

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"castledb-generator/internal/config"
	"castledb-generator/internal/diagnostic"
	"castledb-generator/internal/schema"
	"castledb-generator/internal/schema/schematest"
)

// fakeBackend maps every column to a field of the column's kind name.
type fakeBackend struct {
	name      string
	renderErr error
}

func (b fakeBackend) Name() string { return b.name }

func (b fakeBackend) Check(opts config.Options) error {
	if opts.Inherits == "bad" {
		return ConfigError("inherits %q is not supported", opts.Inherits)
	}

	return nil
}

func (b fakeBackend) MapColumn(c *ColumnContext) (Mapping, error) {
	col := c.Column

	switch col.TypeID {
	case schema.TypeLayer, schema.TypeTileLayer, schema.TypeTilePos:
		return Mapping{}, ErrUnsupported
	case schema.TypeRef:
		return Mapping{
			Fields: []Field{
				{Name: col.Name, Type: c.TargetTypeName(), Kind: col.TypeID},
				{Name: c.RawKeyName(), Type: "string", Kind: col.TypeID, Private: true},
			},
			Load: []string{c.RawKeyName() + " = " + col.Name},
		}, nil
	case schema.TypeCustom:
		typ, ok := c.CustomFieldType()
		if !ok {
			return Mapping{}, nil
		}

		return Mapping{Fields: []Field{{Name: col.Name, Type: typ, Kind: col.TypeID}}}, nil
	case schema.TypeList:
		return Mapping{
			Fields:  []Field{{Name: col.Name, Type: "[]" + c.ListTypeName(), Kind: col.TypeID}},
			Load:    []string{col.Name + " = load " + c.ListTypeName()},
			Cleanup: []string{"clear " + col.Name},
		}, nil
	}

	return Mapping{
		Fields: []Field{{Name: col.Name, Type: col.TypeID.String(), Kind: col.TypeID}},
		Load:   []string{col.Name + " = " + col.Name},
	}, nil
}

func (b fakeBackend) EmitResolve(step ResolveStep) []string {
	if step.Kind == ResolveList {
		return []string{"resolve " + step.Column}
	}

	return []string{fmt.Sprintf("bind %s in %s by %s", step.Column, step.Collection, step.KeyColumn)}
}

func (b fakeBackend) Render(m *Model) ([]GeneratedFile, error) {
	if b.renderErr != nil {
		return nil, b.renderErr
	}

	var sb strings.Builder

	for _, r := range m.Records {
		sb.WriteString(r.Name + "\n")
	}

	return []GeneratedFile{{Filename: FileName(m.BaseName, ".txt"), Content: []byte(sb.String())}}, nil
}

func buildModel(t *testing.T, s *schema.Schema) (*Model, diagnostic.Diagnostics) {
	t.Helper()

	var diags diagnostic.Diagnostics

	m := NewGenerator(fakeBackend{name: "fake"}, config.DefaultOptions(), "").BuildModel(s, &diags)

	return m, diags
}

func record(t *testing.T, m *Model, name string) Record {
	t.Helper()

	for _, r := range m.Records {
		if r.Name == name {
			return r
		}
	}

	require.FailNow(t, "record not found", name)

	return Record{}
}

func fieldNames(r Record) []string {
	out := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		out = append(out, f.Name)
	}

	return out
}

func TestBuildModel_Heroes(t *testing.T) {
	m, diags := buildModel(t, schematest.Heroes(t))

	assert.Equal(t, "heroes.cdb", m.Source)
	assert.Equal(t, DefaultBaseName, m.BaseName)
	assert.Equal(t, config.DefaultDBName, m.Options.DBName)
	assert.Equal(t, []string{"Hero", "Hero_items", "Team", "Map"}, m.Declared)

	var order []string
	for _, r := range m.Records {
		order = append(order, r.Name)
	}

	assert.Equal(t, []string{"Team", "Hero", "Hero_items", "Map"}, order)

	hero := record(t, m, "Hero")
	assert.Equal(t, []string{
		"id", "name", "team", "teamKey", "kind", "perks", "level", "speed", "alive",
		"tint", "portrait", "script", "extra", "items", "effect",
	}, fieldNames(hero))
	assert.Equal(t, []string{"clear items"}, hero.Cleanup)
	assert.Equal(t, []string{"bind team in TeamList by id", "resolve items"}, hero.Resolve)
	assert.Equal(t, []ResolveStep{
		{Kind: ResolveRef, Column: "team", Target: "Team", Collection: "TeamList", KeyColumn: "id"},
		{Kind: ResolveList, Column: "items", Target: "Hero_items"},
	}, hero.Steps)

	items := record(t, m, "Hero_items")
	assert.Equal(t, []string{"bind owner in TeamList by id"}, items.Resolve)

	assert.Empty(t, record(t, m, "Team").Resolve)

	assert.Equal(t, []Table{
		{Name: "Hero", SheetName: "Hero", Collection: "HeroList", NeedsResolve: true},
		{Name: "Team", SheetName: "Team", Collection: "TeamList"},
		{Name: "Map", SheetName: "Map", Collection: "MapList"},
	}, m.Tables)
	assert.Equal(t, []Table{m.Tables[0]}, m.ResolvedTables())

	assert.False(t, diags.HasErrors())
	assert.Len(t, diags.Warnings(), 3)
}

func TestBuildModel_LayerColumnIsReportedAndSkipped(t *testing.T) {
	m, diags := buildModel(t, schematest.Heroes(t))

	assert.NotContains(t, fieldNames(record(t, m, "Hero")), "zone")

	var found bool

	for _, d := range diags.Warnings() {
		if d.Location == "Hero.zone" {
			found = true

			assert.Equal(t, diagnostic.CodeUnsupportedType, d.Code)
			assert.Contains(t, d.Message, "Hero")
			assert.Contains(t, d.Message, "zone")
			assert.Contains(t, d.Message, "Layer")
		}
	}

	assert.True(t, found, "no diagnostic for Hero.zone")
}

func TestBuildModel_EnumCases(t *testing.T) {
	m, _ := buildModel(t, schematest.Heroes(t))

	require.Len(t, m.Enums, 1)
	assert.Equal(t, Enum{Name: "E_KIND", Values: []EnumValue{
		{Name: "WARRIOR", Value: 0},
		{Name: "MAGE", Value: 1},
		{Name: "ROGUE", Value: 2},
	}}, m.Enums[0])

	s := schematest.Heroes(t)
	ctx := &ColumnContext{Schema: s, Sheet: s.Sheet("Hero"), Column: s.Sheet("Hero").Column("kind")}

	for i, c := range ctx.EnumCases() {
		assert.Equal(t, i, c.Value)
		assert.Equal(t, m.Enums[0].Values[i], c)
	}
}

func TestBuildModel_FlagBits(t *testing.T) {
	m, _ := buildModel(t, schematest.Heroes(t))

	require.Len(t, m.Flags, 1)
	assert.Equal(t, FlagSet{Column: "perks", Values: []Flag{
		{Name: "PERKS_FAST", Bit: 1},
		{Name: "PERKS_STRONG", Bit: 2},
		{Name: "PERKS_LUCKY", Bit: 4},
	}}, m.Flags[0])
}

func TestBuildModel_BlankValuesKeepPosition(t *testing.T) {
	s := &schema.Schema{Sheets: []*schema.Sheet{
		schematest.Sheet("A",
			schematest.Column("kind", schema.TypeEnum, "", "a", "", "b"),
			schematest.Column("bits", schema.TypeFlags, "", "x", "", "y")),
	}}

	m, _ := buildModel(t, s)

	require.Len(t, m.Enums, 1)
	assert.Equal(t, []EnumValue{{Name: "A", Value: 0}, {Name: "B", Value: 2}}, m.Enums[0].Values)

	require.Len(t, m.Flags, 1)
	assert.Equal(t, []Flag{{Name: "BITS_X", Bit: 1}, {Name: "BITS_Y", Bit: 4}}, m.Flags[0].Values)

	ctx := &ColumnContext{Schema: s, Sheet: s.Sheets[0], Column: s.Sheets[0].Column("kind")}
	assert.Equal(t, m.Enums[0].Values, ctx.EnumCases())
}

func TestBuildModel_FlagsOverflow(t *testing.T) {
	values := make([]string, MaxFlags+2)
	for i := range values {
		values[i] = fmt.Sprintf("f%d", i)
	}

	s := &schema.Schema{Sheets: []*schema.Sheet{
		schematest.Sheet("Wide", schematest.Column("bits", schema.TypeFlags, "", values...)),
	}}

	m, diags := buildModel(t, s)

	require.Len(t, m.Flags, 1)
	require.Len(t, m.Flags[0].Values, MaxFlags)

	seen := make(map[uint32]bool)

	for i, f := range m.Flags[0].Values {
		assert.Equal(t, uint32(1)<<i, f.Bit)
		assert.False(t, seen[f.Bit])

		seen[f.Bit] = true
	}

	require.Len(t, diags.Warnings(), 1)
	assert.Equal(t, diagnostic.CodeFlagsOverflow, diags.Warnings()[0].Code)
}

func TestBuildModel_EnumDeduplication(t *testing.T) {
	s := &schema.Schema{Sheets: []*schema.Sheet{
		schematest.Sheet("A", schematest.Column("kind", schema.TypeEnum, "", "x", "y")),
		schematest.Sheet("B", schematest.Column("kind", schema.TypeEnum, "", "x", "y")),
		schematest.Sheet("C", schematest.Column("kind", schema.TypeEnum, "", "z")),
	}}

	m, diags := buildModel(t, s)

	require.Len(t, m.Enums, 1)
	require.Len(t, diags.Warnings(), 1)
	assert.Equal(t, diagnostic.CodeEnumConflict, diags.Warnings()[0].Code)
	assert.Equal(t, "C.kind", diags.Warnings()[0].Location)
}

func TestBuildModel_ColumnWarnings(t *testing.T) {
	tests := []struct {
		name   string
		sheets []*schema.Sheet
		code   string
		loc    string
	}{
		{
			name: "unknown ref target",
			sheets: []*schema.Sheet{
				schematest.Sheet("A", schematest.Column("b", schema.TypeRef, "Nope")),
			},
			code: diagnostic.CodeUnknownSheet,
			loc:  "A.b",
		},
		{
			name: "missing nested sheet",
			sheets: []*schema.Sheet{
				schematest.Sheet("A", schematest.Column("parts", schema.TypeList, "")),
			},
			code: diagnostic.CodeUnknownSheet,
			loc:  "A.parts",
		},
		{
			name: "unknown custom type",
			sheets: []*schema.Sheet{
				schematest.Sheet("A", schematest.Column("fx", schema.TypeCustom, "Nope")),
			},
			code: diagnostic.CodeUnknownCustomType,
			loc:  "A.fx",
		},
		{
			name: "target without key",
			sheets: []*schema.Sheet{
				schematest.Sheet("A", schematest.Column("b", schema.TypeRef, "B")),
				schematest.Sheet("B", schematest.Column("name", schema.TypeText, "")),
			},
			code: diagnostic.CodeMissingKey,
			loc:  "A.b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, diags := buildModel(t, &schema.Schema{Sheets: tt.sheets})

			require.Len(t, diags.Warnings(), 1)
			assert.Equal(t, tt.code, diags.Warnings()[0].Code)
			assert.Equal(t, tt.loc, diags.Warnings()[0].Location)
			assert.Empty(t, record(t, m, "A").Resolve)
		})
	}
}

func TestBuildModel_UnknownSheetHint(t *testing.T) {
	s := &schema.Schema{Sheets: []*schema.Sheet{
		schematest.Sheet("Hero", schematest.Column("team", schema.TypeRef, "Teem")),
		schematest.Sheet("Team", schematest.Column("id", schema.TypeUniqueIdentifier, "")),
	}}

	_, diags := buildModel(t, s)

	require.Len(t, diags.Warnings(), 1)
	assert.Contains(t, diags.Warnings()[0].Message, `referenced sheet "Teem" does not exist (did you mean "Team"?)`)
}

func TestBuildModel_FieldConflicts(t *testing.T) {
	s := &schema.Schema{Sheets: []*schema.Sheet{
		schematest.Sheet("Team",
			schematest.Column("id", schema.TypeUniqueIdentifier, ""),
			schematest.Column("Load", schema.TypeInteger, ""),
			schematest.Column("Team", schema.TypeText, ""),
			schematest.Column("id", schema.TypeText, ""),
			schematest.Column("name", schema.TypeText, "")),
	}}

	m, diags := buildModel(t, s)

	var names []string
	for _, f := range record(t, m, "Team").Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"id", "name"}, names)

	require.Len(t, diags.Warnings(), 3)

	for _, d := range diags.Warnings() {
		assert.Equal(t, diagnostic.CodeFieldConflict, d.Code)
	}

	assert.Equal(t, "Team.Load", diags.Warnings()[0].Location)
	assert.Equal(t, "Team.Team", diags.Warnings()[1].Location)
	assert.Equal(t, "Team.id", diags.Warnings()[2].Location)
}

func TestBuildModel_VoidCustomTypeDeclaresNoField(t *testing.T) {
	s := &schema.Schema{
		Sheets: []*schema.Sheet{schematest.Sheet("A", schematest.Column("fx", schema.TypeCustom, "Fx"))},
		CustomTypes: []*schema.CustomType{
			{Name: "Fx", Constructors: []schema.Constructor{{Name: "None", ReturnType: "void"}}},
		},
	}

	m, diags := buildModel(t, s)

	assert.Empty(t, record(t, m, "A").Fields)
	assert.Empty(t, diags.Items)
}

func TestBuildModel_CycleIsInfo(t *testing.T) {
	s := &schema.Schema{Sheets: []*schema.Sheet{
		schematest.Sheet("A", schematest.Column("id", schema.TypeUniqueIdentifier, ""),
			schematest.Column("b", schema.TypeRef, "B")),
		schematest.Sheet("B", schematest.Column("id", schema.TypeUniqueIdentifier, ""),
			schematest.Column("a", schema.TypeRef, "A")),
	}}

	m, diags := buildModel(t, s)

	assert.Len(t, m.Records, 2)
	assert.False(t, diags.HasErrors())
	assert.Empty(t, diags.Messages())
	require.Len(t, diags.Items, 1)
	assert.Equal(t, diagnostic.SeverityInfo, diags.Items[0].Severity)
	assert.Equal(t, diagnostic.CodeRefCycle, diags.Items[0].Code)
}

func TestGenerate_ConfigErrorWritesNothing(t *testing.T) {
	opts := config.DefaultOptions()
	opts.Inherits = "bad"

	res := NewGenerator(fakeBackend{name: "fake"}, opts, "Out").Generate(schematest.Heroes(t))

	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, ErrConfig))
	assert.Empty(t, res.Files)
	require.Len(t, res.Diagnostics.Items, 1)
	assert.Equal(t, diagnostic.CodeConfig, res.Diagnostics.Items[0].Code)
	assert.True(t, res.Diagnostics.HasErrors())
}

func TestGenerate_RenderErrorIsDiagnosed(t *testing.T) {
	b := fakeBackend{name: "fake", renderErr: errors.New("template exploded")}

	res := NewGenerator(b, config.DefaultOptions(), "Out").Generate(schematest.Heroes(t))

	require.Error(t, res.Err)
	assert.Empty(t, res.Files)
	assert.True(t, res.Diagnostics.HasErrors())

	errs := res.Diagnostics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostic.CodeRender, errs[0].Code)
	assert.Equal(t, "[fake]: [render] template exploded", errs[0].String())
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(fakeBackend{name: "fake"}, config.DefaultOptions(), "Out")

	first := g.Generate(schematest.Heroes(t))
	second := g.Generate(schematest.Heroes(t))

	require.NoError(t, first.Err)
	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
	require.Len(t, first.Files, 1)
	assert.Equal(t, "Out.txt", first.Files[0].Filename)
}

func TestGenerateAll(t *testing.T) {
	s := schematest.Heroes(t)
	opts := config.DefaultOptions()
	opts.Inherits = "bad"

	results := GenerateAll(s, config.DefaultOptions(), "", []Backend{
		fakeBackend{name: "one"},
		fakeBackend{name: "two"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "one", results[0].Backend)
	assert.Equal(t, "two", results[1].Backend)

	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, "GameData.txt", r.Files[0].Filename)
	}

	failed := GenerateAll(s, opts, "", []Backend{fakeBackend{name: "one"}})
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, ErrConfig)
}

func TestRegistry(t *testing.T) {
	Register(fakeBackend{name: "zz-fake"})

	b, err := Get("zz-fake")
	require.NoError(t, err)
	assert.Equal(t, "zz-fake", b.Name())
	assert.Contains(t, Available(), "zz-fake")

	_, err = Get("nope")
	assert.Error(t, err)
}
