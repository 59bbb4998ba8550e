package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// CreateFile writes a regular file with the given content and mode,
// creating parent directories as needed.
func CreateFile(t *testing.T, path, content string, perm fs.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	// WriteFile is subject to the umask
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// CreateDir creates a directory (and parents) with the given mode.
func CreateDir(t *testing.T, path string, perm fs.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
}

// CreateSymlink creates a symlink at path pointing at target.
func CreateSymlink(t *testing.T, path, target string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("symlink %s -> %s: %v", path, target, err)
	}
}

// Entry is one snapshotted tree node. Content is set for regular files,
// Target for symlinks, Mode for files and directories.
type Entry struct {
	Type    string
	Content string
	Target  string
	Mode    fs.FileMode
}

// SnapshotTree walks root and returns a map from slash-separated relative
// path to Entry. The root itself is excluded. Comparing two snapshots
// with go-cmp gives a recursive tree diff over names, types, symlink
// targets, contents and permission bits.
func SnapshotTree(t *testing.T, root string) map[string]Entry {
	t.Helper()
	snapshot := make(map[string]Entry)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := os.Lstat(path)
		if err != nil {
			return err
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snapshot[filepath.ToSlash(rel)] = Entry{Type: "symlink", Target: target}
		case info.IsDir():
			snapshot[filepath.ToSlash(rel)] = Entry{Type: "dir", Mode: info.Mode().Perm()}
		case info.Mode().IsRegular():
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			snapshot[filepath.ToSlash(rel)] = Entry{Type: "file", Content: string(content), Mode: info.Mode().Perm()}
		default:
			snapshot[filepath.ToSlash(rel)] = Entry{Type: "other"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return snapshot
}
