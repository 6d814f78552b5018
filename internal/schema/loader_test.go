package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heroesCDB = `{
  "sheets": [
    {
      "name": "Hero",
      "columns": [
        {"name": "id", "typeStr": "0"},
        {"name": "team", "typeStr": "6:Team"},
        {"name": "kind", "typeStr": "5:warrior, mage ,rogue"},
        {"name": "perks", "typeStr": "10:fast,strong"},
        {"name": "items", "typeStr": "8"},
        {"name": "effect", "typeStr": "9:Effect"}
      ],
      "lines": [{"id": "h1", "team": "t1"}]
    },
    {
      "name": "Hero@items",
      "columns": [
        {"name": "name", "typeStr": "1"},
        {"name": "count", "typeStr": "3"}
      ]
    },
    {
      "name": "Team",
      "columns": [
        {"name": "id", "typeStr": "0"},
        {"name": "name", "typeStr": "1"}
      ]
    }
  ],
  "customTypes": [
    {
      "name": "Effect",
      "cases": [
        {"name": "Poison", "args": [{"name": "dmg", "typeStr": "3"}]},
        {"name": "Heal", "returnType": "void"}
      ]
    }
  ]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(heroesCDB))
	require.NoError(t, err)
	require.Len(t, s.Sheets, 3)

	hero := s.Sheet("Hero")
	require.NotNil(t, hero)
	require.Len(t, hero.Columns, 6)

	assert.Equal(t, TypeUniqueIdentifier, hero.Columns[0].TypeID)

	team := hero.Column("team")
	require.NotNil(t, team)
	assert.Equal(t, TypeRef, team.TypeID)
	assert.Equal(t, "Team", team.Key)

	kind := hero.Column("kind")
	require.NotNil(t, kind)
	assert.Equal(t, []string{"warrior", "mage", "rogue"}, kind.Enumerations)

	perks := hero.Column("perks")
	require.NotNil(t, perks)
	assert.Equal(t, TypeFlags, perks.TypeID)
	assert.Equal(t, []string{"fast", "strong"}, perks.Enumerations)

	assert.Equal(t, "Effect", hero.Column("effect").Key)

	require.Len(t, s.CustomTypes, 1)
	effect := s.CustomType("Effect")
	require.NotNil(t, effect)
	require.Len(t, effect.Constructors, 2)
	assert.Equal(t, "Effect*", effect.Constructors[0].ReturnType)
	require.Len(t, effect.Constructors[0].Args, 1)
	assert.Equal(t, TypeInteger, effect.Constructors[0].Args[0].TypeID)
	assert.Equal(t, VoidReturn, effect.Constructors[1].ReturnType)
}

func TestParse_BlankEnumerationsKeepPosition(t *testing.T) {
	s, err := Parse([]byte(`{"sheets":[{"name":"A","columns":[
		{"name":"kind","typeStr":"5:a,,b"},
		{"name":"none","typeStr":"5:"}
	]}]}`))
	require.NoError(t, err)

	a := s.Sheet("A")
	assert.Equal(t, []string{"a", "", "b"}, a.Column("kind").Enumerations)
	assert.Empty(t, a.Column("none").Enumerations)
}

func TestParse_DuplicateSheet(t *testing.T) {
	_, err := Parse([]byte(`{"sheets":[{"name":"A","columns":[]},{"name":"A","columns":[]}]}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSheet)
}

func TestParse_InvalidTypeStr(t *testing.T) {
	tests := []struct {
		name    string
		typeStr string
	}{
		{"not a number", "x:Team"},
		{"out of range", "17"},
		{"negative", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"sheets":[{"name":"A","columns":[{"name":"c","typeStr":"` + tt.typeStr + `"}]}]}`
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "sheet A")
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"sheets":`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heroes.cdb")
	require.NoError(t, os.WriteFile(path, []byte(heroesCDB), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "heroes.cdb", s.Source)
	assert.Len(t, s.Sheets, 3)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.cdb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")
}
