package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"castledb-generator/internal/config"
	"castledb-generator/internal/schema"
	"castledb-generator/internal/schema/schematest"
)

func TestNaming(t *testing.T) {
	assert.Equal(t, "teamKey", RawKeyName("team"))
	assert.Equal(t, "E_KIND", EnumTypeName("kind"))
	assert.Equal(t, "E_HIT_POINTS", EnumTypeName("hit points"))
	assert.Equal(t, "PERKS_FAST", FlagName("perks", "fast"))
	assert.Equal(t, "TeamList", CollectionName("Team"))
	assert.Equal(t, "Name", Exported("name"))
	assert.Equal(t, "", Exported(""))
}

func TestFlagBit(t *testing.T) {
	for i := 0; i < MaxFlags; i++ {
		assert.Equal(t, uint32(1)<<i, FlagBit(i))
	}
}

func TestColumnContext(t *testing.T) {
	s := schematest.Heroes(t)
	hero := s.Sheet("Hero")

	ctx := func(col string) *ColumnContext {
		return &ColumnContext{Schema: s, Sheet: hero, Column: hero.Column(col), Options: config.Options{IntegerIDs: true}}
	}

	assert.Equal(t, "Hero_items", ctx("items").ListTypeName())
	assert.Equal(t, "Team", ctx("team").TargetTypeName())
	assert.Equal(t, "teamKey", ctx("team").RawKeyName())
	assert.True(t, ctx("id").IntegerKeys())

	typ, ok := ctx("effect").CustomFieldType()
	assert.True(t, ok)
	assert.Equal(t, "Effect*", typ)
}

func TestColumnContext_CustomFieldType(t *testing.T) {
	tests := []struct {
		name   string
		ctors  []schema.Constructor
		want   string
		wantOK bool
	}{
		{name: "pointer", ctors: []schema.Constructor{{ReturnType: "Fx*"}}, want: "Fx*", wantOK: true},
		{name: "void", ctors: []schema.Constructor{{ReturnType: "void"}, {ReturnType: "Fx*"}}},
		{name: "blank", ctors: []schema.Constructor{{ReturnType: "  "}}},
		{name: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := schematest.Column("fx", schema.TypeCustom, "Fx")
			s := &schema.Schema{
				Sheets:      []*schema.Sheet{schematest.Sheet("A", col)},
				CustomTypes: []*schema.CustomType{{Name: "Fx", Constructors: tt.ctors}},
			}

			typ, ok := (&ColumnContext{Schema: s, Sheet: s.Sheets[0], Column: col}).CustomFieldType()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, typ)
		})
	}
}
