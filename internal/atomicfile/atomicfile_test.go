package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteFileReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	if err := WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFile(path, []byte("new\n"), 0); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new\n" {
		t.Fatalf("content = %q, want %q", got, "new\n")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, found %d entries", len(entries))
	}
}

func TestWriteFileWithPerm(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteFileWith(path, []byte("token = \"x\"\n"), Options{Perm: 0o600}); err != nil {
		t.Fatalf("WriteFileWith: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", st.Mode().Perm())
	}
}

func TestWriteFileWithMkdirAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")

	if err := WriteFile(path, []byte("{}"), 0o644); err == nil {
		t.Fatalf("expected an error without MkdirAll")
	}
	if err := WriteFileWith(path, []byte("{}"), Options{MkdirAll: true}); err != nil {
		t.Fatalf("WriteFileWith: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestWriteFileWithNoClobber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")

	if err := WriteFileWith(path, []byte("first\n"), Options{NoClobber: true}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	err := WriteFileWith(path, []byte("second\n"), Options{NoClobber: true})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("second write error = %v, want ErrExists", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "first\n" {
		t.Fatalf("content = %q, want the first write kept", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %d entries", len(entries))
	}
}
