package common

import (
	"path/filepath"
	"strings"
)

// ChangeExt returns p with its extension replaced by ext.
func ChangeExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}

// SplitBase splits an output base path into its directory and file base
// name without extension. "out/GameData" yields ("out", "GameData").
func SplitBase(p string) (dir, base string) {
	dir, file := filepath.Split(p)
	if dir == "" {
		dir = "."
	}

	return filepath.Clean(dir), ChangeExt(file, "")
}
