package fsops

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/logging"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// RenameFile atomically renames src to dst on the same device. It fails
// with SAME_FILE if both paths name one object, ALREADY_EXISTS if the
// destination is occupied, and CROSS_DEVICE if src and dst live on
// different filesystems.
func RenameFile(src, dst paths.Path) error {
	if _, err := os.Lstat(src.String()); err != nil {
		return errors.FromOSf(err, "cannot stat source %s", src)
	}

	same, err := isSameFileNoFollow(src.String(), dst.String())
	if err != nil {
		return err
	}
	if same {
		return errors.Newf(errors.ErrSameFile, "source and destination are the same file: %s", src)
	}

	if _, err := os.Lstat(dst.String()); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "destination %s already exists", dst)
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.FromOSf(err, "cannot stat destination %s", dst)
	}

	if err := os.Rename(src.String(), dst.String()); err != nil {
		return errors.FromOSf(err, "cannot rename %s to %s", src, dst)
	}
	return nil
}

// MoveFile moves src to dst. A same-device rename is attempted first;
// a cross-device failure falls back to copy (fail-early) followed by
// delete of the source. The fallback is inherently non-atomic: a failed
// copy can leave a partial destination next to the intact source, and a
// failed delete leaves both trees in place.
//
// Under Overwrite mode a writable destination of the same type class is
// deleted first: files and symlinks are unlinked, directories removed
// non-recursively, so a non-empty destination directory blocks the move.
func MoveFile(src, dst paths.Path, mode CopyMode) error {
	logger := logging.GetLogger("fsops.move")

	if mode == Overwrite {
		if err := displaceForMove(src, dst); err != nil {
			return err
		}
	}

	err := RenameFile(src, dst)
	if err == nil {
		logger.Debug().
			Str("source", src.String()).
			Str("destination", dst.String()).
			Msg("Renamed in place")
		return nil
	}
	if errors.GetErrorCode(err) != errors.ErrCrossDevice {
		return err
	}

	logger.Debug().
		Str("source", src.String()).
		Str("destination", dst.String()).
		Msg("Cross-device move, falling back to copy and delete")

	if err := EasyCopy(src, dst, Strict, FailEarly); err != nil {
		return err
	}
	return EasyDelete(src)
}

// displaceForMove clears the destination ahead of an Overwrite move when
// it exists, is writable, and matches the source's type class (directory
// vs non-directory). A mismatched or unwritable destination is left
// alone; the Strict rename will then report it.
func displaceForMove(src, dst paths.Path) error {
	srcType, err := GetFileType(src)
	if err != nil {
		return err
	}

	dstType, err := GetFileType(dst)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrNotFound {
			return nil
		}
		return err
	}

	if (srcType == Directory) != (dstType == Directory) {
		return nil
	}
	if !isWritable(dst.String()) {
		return nil
	}

	if dstType == Directory {
		return DeleteDir(dst)
	}
	return DeleteFile(dst)
}
