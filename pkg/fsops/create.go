package fsops

import (
	"io/fs"
	"os"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// CreateRegularFile creates a new empty regular file with the given
// permission bits. An existing entry at the path fails with
// ALREADY_EXISTS.
func CreateRegularFile(p paths.Path, perm fs.FileMode) error {
	f, err := os.OpenFile(p.String(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.FromOSf(err, "cannot create file %s", p)
	}
	// creation is subject to the umask; restore the exact bits
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return errors.FromOSf(err, "cannot set mode on %s", p)
	}
	if err := f.Close(); err != nil {
		return errors.FromOSf(err, "cannot close %s", p)
	}
	return nil
}

// CreateDir creates a new directory with the given permission bits. The
// parent must exist and be writable and searchable.
func CreateDir(p paths.Path, perm fs.FileMode) error {
	if err := os.Mkdir(p.String(), perm); err != nil {
		return errors.FromOSf(err, "cannot create directory %s", p)
	}
	if err := os.Chmod(p.String(), perm); err != nil {
		return errors.FromOSf(err, "cannot set mode on directory %s", p)
	}
	return nil
}

// CreateSymlink creates a symlink at p pointing at target. The target is
// stored verbatim and may dangle.
func CreateSymlink(p paths.Path, target string) error {
	if target == "" {
		return errors.New(errors.ErrInvalidInput, "symlink target cannot be empty")
	}
	if err := os.Symlink(target, p.String()); err != nil {
		return errors.FromOSf(err, "cannot create symlink %s", p)
	}
	return nil
}
