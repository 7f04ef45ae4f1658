// Package atomicfile replaces files without leaving partial writes behind.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by WriteFileWith when NoClobber is set and the
// target already exists.
var ErrExists = errors.New("file already exists")

// Options control WriteFileWith.
type Options struct {
	// Perm is the mode of the written file. Zero keeps the mode of an
	// existing file, or uses 0644 for a new one.
	Perm os.FileMode

	// MkdirAll creates missing parent directories with DirPerm (0755 when zero).
	MkdirAll bool
	DirPerm  os.FileMode

	// NoClobber refuses to replace an existing file.
	NoClobber bool
}

// WriteFile writes data to path through a temporary file in the same
// directory that is renamed into place.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteFileWith(path, data, Options{Perm: perm})
}

// WriteFileWith is WriteFile with options.
func WriteFileWith(path string, data []byte, opts Options) error {
	dir := filepath.Dir(path)
	if opts.MkdirAll {
		dirPerm := opts.DirPerm
		if dirPerm == 0 {
			dirPerm = 0o755
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	perm := opts.Perm
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	// Some filesystems do not support chmod.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if opts.NoClobber {
		// Link fails if path exists, so a file created since the caller
		// checked is never replaced.
		if err := os.Link(tmpPath, path); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%s: %w", path, ErrExists)
			}
			return fmt.Errorf("link temp file: %w", err)
		}
		return nil
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Windows cannot rename over an existing file.
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}
	return nil
}
