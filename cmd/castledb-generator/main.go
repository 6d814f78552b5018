// Command castledb-generator turns a CastleDB .cdb schema into typed
// data-access code for C++, C#, AngelScript and Go.
//
// Usage:
//
//	castledb-generator gen data/game.cdb -b cpp,asbinding -s inherits=RefCounted
//	castledb-generator gen --config castledb.yaml
//	castledb-generator check data/game.cdb
package main

import (
	"os"

	// Backends register themselves with gen on import.
	_ "castledb-generator/internal/backend/angelscript"
	_ "castledb-generator/internal/backend/asbinding"
	_ "castledb-generator/internal/backend/cpp"
	_ "castledb-generator/internal/backend/csharp"
	_ "castledb-generator/internal/backend/golang"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
