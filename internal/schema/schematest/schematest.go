// Package schematest provides schema fixtures for tests.
package schematest

import (
	"testing"

	"castledb-generator/internal/schema"
)

// HeroesCDB is a CastleDB document exercising every column type. It also
// carries lines, so it can be loaded as data.
//
// Hero.team and Hero@items.owner reference Team; Hero.zone is a Layer column
// that no backend supports. The second hero references a team that does
// not exist.
const HeroesCDB = `{
  "sheets": [
    {
      "name": "Hero",
      "columns": [
        {"name": "id", "typeStr": "0"},
        {"name": "name", "typeStr": "1"},
        {"name": "team", "typeStr": "6:Team"},
        {"name": "kind", "typeStr": "5:warrior,mage,rogue"},
        {"name": "perks", "typeStr": "10:fast,strong,lucky"},
        {"name": "level", "typeStr": "3"},
        {"name": "speed", "typeStr": "4"},
        {"name": "alive", "typeStr": "2"},
        {"name": "tint", "typeStr": "11"},
        {"name": "portrait", "typeStr": "7"},
        {"name": "script", "typeStr": "13"},
        {"name": "extra", "typeStr": "16"},
        {"name": "items", "typeStr": "8"},
        {"name": "effect", "typeStr": "9:Effect"},
        {"name": "zone", "typeStr": "12:Team"}
      ],
      "lines": [
        {
          "id": "h1", "name": "Ayla", "team": "t1", "kind": 1, "perks": 5,
          "level": 7, "speed": 1.5, "alive": true, "tint": 16711680,
          "portrait": "ayla.png", "script": "ayla.as", "extra": {"hp": 10},
          "items": [{"name": "sword", "count": 1, "owner": "t2"}],
          "effect": [0, 3]
        },
        {"id": "h2", "name": "Bram", "team": "t9", "kind": 0, "items": []}
      ]
    },
    {
      "name": "Hero@items",
      "columns": [
        {"name": "name", "typeStr": "1"},
        {"name": "count", "typeStr": "3"},
        {"name": "owner", "typeStr": "6:Team"}
      ]
    },
    {
      "name": "Team",
      "columns": [
        {"name": "id", "typeStr": "0"},
        {"name": "name", "typeStr": "1"}
      ],
      "lines": [
        {"id": "t1", "name": "Red"},
        {"id": "t2", "name": "Blue"}
      ]
    },
    {
      "name": "Map",
      "columns": [
        {"name": "id", "typeStr": "0"},
        {"name": "ground", "typeStr": "15"},
        {"name": "spawn", "typeStr": "14"}
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

// Heroes parses HeroesCDB.
func Heroes(tb testing.TB) *schema.Schema {
	tb.Helper()

	s, err := schema.Parse([]byte(HeroesCDB))
	if err != nil {
		tb.Fatalf("parsing fixture: %v", err)
	}

	s.Source = "heroes.cdb"

	return s
}

// Column builds a column.
func Column(name string, typ schema.TypeID, key string, enums ...string) *schema.Column {
	return &schema.Column{Name: name, TypeID: typ, Key: key, Enumerations: enums}
}

// Sheet builds a sheet.
func Sheet(name string, cols ...*schema.Column) *schema.Sheet {
	return &schema.Sheet{Name: name, Columns: cols}
}
