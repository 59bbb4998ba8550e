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

// RecreateSymlink reads the link target of src and creates a new symlink
// at dst with the same target. src must itself be a symlink. Under Strict
// mode an occupied destination fails with ALREADY_EXISTS; under Overwrite
// mode a writable existing file, symlink or empty directory is deleted
// first. An occupied destination that is not writable fails with
// PERMISSION before any create is attempted, rather than falling through
// to the create and reporting ALREADY_EXISTS. The delete-then-create
// window is not atomic: a crash in between loses the destination.
func RecreateSymlink(src, dst paths.Path, mode CopyMode) error {
	logger := logging.GetLogger("fsops.symlink")

	info, err := os.Lstat(src.String())
	if err != nil {
		return errors.FromOSf(err, "cannot stat source %s", src)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return errors.Newf(errors.ErrInvalidArgument, "source %s is not a symbolic link", src)
	}

	same, err := isSameFileNoFollow(src.String(), dst.String())
	if err != nil {
		return err
	}
	if same {
		return errors.Newf(errors.ErrSameFile, "source and destination are the same link: %s", src)
	}

	target, err := os.Readlink(src.String())
	if err != nil {
		return errors.FromOSf(err, "cannot read link target of %s", src)
	}

	if mode == Overwrite {
		if err := displaceForSymlink(dst); err != nil {
			return err
		}
	}

	if err := os.Symlink(target, dst.String()); err != nil {
		return errors.FromOSf(err, "cannot create symlink %s", dst)
	}

	logger.Debug().
		Str("source", src.String()).
		Str("destination", dst.String()).
		Str("target", target).
		Msg("Recreated symlink")
	return nil
}

// displaceForSymlink clears an existing destination entry ahead of an
// overwrite: files and symlinks are unlinked, an empty directory is
// removed, a non-empty directory blocks the overwrite. The destination
// must be writable.
func displaceForSymlink(dst paths.Path) error {
	info, err := os.Lstat(dst.String())
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.FromOSf(err, "cannot stat destination %s", dst)
	}

	if !isWritable(dst.String()) {
		return errors.Newf(errors.ErrPermission, "destination %s is not writable", dst)
	}

	if info.IsDir() {
		if err := unix.Rmdir(dst.String()); err != nil {
			if stderrors.Is(err, unix.ENOTEMPTY) {
				return errors.Newf(errors.ErrDirNotEmpty, "destination directory %s is not empty", dst)
			}
			return errors.FromOSf(err, "cannot remove destination directory %s", dst)
		}
		return nil
	}

	if err := unix.Unlink(dst.String()); err != nil {
		return errors.FromOSf(err, "cannot remove destination %s", dst)
	}
	return nil
}
