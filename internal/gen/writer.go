package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// staged is a file written under a temporary name, waiting to be renamed.
type staged struct {
	tmp, path string
}

// WriteFiles writes the files into outputDir, creating it if needed, and
// returns their paths. The files are all written or none is: each is first
// written to a temporary file next to its target and only renamed into
// place once every file was written. A file whose content on disk is
// already identical is left untouched so its modification time does not
// trigger rebuilds.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	if outputDir == "" {
		outputDir = "."
	}

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(files))
	pending := make([]staged, 0, len(files))

	cleanup := func() {
		for _, s := range pending {
			_ = os.Remove(s.tmp)
		}
	}

	for _, f := range files {
		if filepath.Base(f.Filename) != f.Filename {
			cleanup()
			return nil, fmt.Errorf("file name %q must not contain a directory", f.Filename)
		}

		p := filepath.Join(outputDir, f.Filename)
		paths = append(paths, p)

		unchanged, err := sameContent(p, f.Content)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("writing file %s: %w", f.Filename, err)
		}

		if unchanged {
			continue
		}

		tmp, err := stage(outputDir, f)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("writing file %s: %w", f.Filename, err)
		}

		pending = append(pending, staged{tmp: tmp, path: p})
	}

	for i, s := range pending {
		if err := os.Rename(s.tmp, s.path); err != nil {
			pending = pending[i:]
			cleanup()

			return nil, fmt.Errorf("writing file %s: %w", filepath.Base(s.path), err)
		}
	}

	return paths, nil
}

// sameContent reports whether p is a regular file holding content. A
// missing file is not an error; anything but a regular file is.
func sameContent(p string, content []byte) (bool, error) {
	info, err := os.Lstat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%s exists and is not a regular file", p)
	}

	old, err := os.ReadFile(p)
	if err != nil {
		return false, err
	}

	return bytes.Equal(old, content), nil
}

func stage(dir string, f GeneratedFile) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+f.Filename+".*")
	if err != nil {
		return "", err
	}

	_, err = tmp.Write(f.Content)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err == nil {
		err = os.Chmod(tmp.Name(), filePerm)
	}

	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
