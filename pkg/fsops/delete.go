package fsops

import (
	stderrors "errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/logging"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// DeleteFile unlinks a regular file or symlink. Directories are rejected
// with INAPPROPRIATE_TYPE.
func DeleteFile(p paths.Path) error {
	info, err := os.Lstat(p.String())
	if err != nil {
		return errors.FromOSf(err, "cannot stat %s", p)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInappropriateType, "%s is a directory, not a file", p)
	}
	if err := unix.Unlink(p.String()); err != nil {
		return errors.FromOSf(err, "cannot unlink %s", p)
	}
	return nil
}

// DeleteDir removes an empty directory. A non-empty directory fails with
// DIR_NOT_EMPTY.
func DeleteDir(p paths.Path) error {
	if err := unix.Rmdir(p.String()); err != nil {
		return errors.FromOSf(err, "cannot remove directory %s", p)
	}
	return nil
}

// DeleteDirRecursive removes a directory and everything below it. The
// source must be a true directory: a symlink-to-directory or a regular
// file is rejected with INAPPROPRIATE_TYPE. A plain removal is attempted
// first; only a non-empty directory triggers the recursive teardown.
// Devices, pipes and sockets encountered in the tree are skipped.
func DeleteDirRecursive(p paths.Path) error {
	logger := logging.GetLogger("fsops.delete")

	info, err := os.Lstat(p.String())
	if err != nil {
		return errors.FromOSf(err, "cannot stat %s", p)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return errors.Newf(errors.ErrInappropriateType, "%s is a symbolic link, not a directory", p)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInappropriateType, "%s is not a directory", p)
	}

	logger.Debug().Str("path", p.String()).Msg("Starting recursive delete")
	return deleteDirContents(p)
}

func deleteDirContents(p paths.Path) error {
	err := unix.Rmdir(p.String())
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, unix.ENOTEMPTY) && !stderrors.Is(err, unix.EEXIST) {
		return errors.FromOSf(err, "cannot remove directory %s", p)
	}

	names, err := readDirNames(p)
	if err != nil {
		return err
	}
	for _, name := range names {
		child, err := p.Join(name)
		if err != nil {
			return err
		}
		info, err := os.Lstat(child.String())
		if err != nil {
			// entry vanished under us; fine, we were deleting it anyway
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.FromOSf(err, "cannot stat %s", child)
		}
		switch typeFromMode(info.Mode()) {
		case Directory:
			if err := deleteDirContents(child); err != nil {
				return err
			}
		case RegularFile, SymbolicLink:
			if err := unix.Unlink(child.String()); err != nil && !stderrors.Is(err, unix.ENOENT) {
				return errors.FromOSf(err, "cannot unlink %s", child)
			}
		default:
			// devices, pipes and sockets are skipped
		}
	}

	if err := unix.Rmdir(p.String()); err != nil {
		return errors.FromOSf(err, "cannot remove directory %s", p)
	}
	return nil
}

// EasyDelete classifies the path and dispatches: directories are removed
// recursively, regular files and symlinks unlinked, anything else is
// silently ignored.
func EasyDelete(p paths.Path) error {
	ft, err := GetFileType(p)
	if err != nil {
		return err
	}
	switch ft {
	case Directory:
		return DeleteDirRecursive(p)
	case RegularFile, SymbolicLink:
		return DeleteFile(p)
	default:
		return nil
	}
}
