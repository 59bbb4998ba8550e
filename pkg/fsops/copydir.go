package fsops

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/logging"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// CopyDirRecursive copies the directory tree rooted at src to dst.
//
// Sanity checks run once, at the top level only, and always fail early
// regardless of the error mode: src must exist and be a real directory
// (not a symlink to one), src and dst must not be the same file, and dst
// must not lie inside src. Deeper symlink-based cycles introduced
// mid-tree are deliberately not detected.
//
// Per directory level the destination directory is created with the
// source's permission bits before any contents are copied, then each
// entry is classified and dispatched: symlinks are recreated, regular
// files copied, subdirectories recursed into. Devices, pipes and sockets
// are silently skipped. Under Overwrite mode an existing destination
// directory is merged: its mode bits are reset to the source's and extra
// entries are left untouched.
func CopyDirRecursive(src, dst paths.Path, mode CopyMode, errMode RecursiveErrorMode) error {
	logger := logging.GetLogger("fsops.copydir")

	info, err := os.Lstat(src.String())
	if err != nil {
		return errors.FromOSf(err, "cannot stat source %s", src)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return errors.Newf(errors.ErrInvalidArgument, "source %s is a symbolic link, not a directory", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInappropriateType, "source %s is not a directory", src)
	}

	same, err := isSameFile(src.String(), dst.String())
	if err != nil {
		return err
	}
	if same {
		return errors.Newf(errors.ErrSameFile, "source and destination are the same directory: %s", src)
	}
	if destInSource(src, dst) {
		return errors.Newf(errors.ErrDestinationInSource, "destination %s is inside source %s", dst, src)
	}

	logger.Debug().
		Str("source", src.String()).
		Str("destination", dst.String()).
		Stringer("copyMode", mode).
		Stringer("errorMode", errMode).
		Msg("Starting recursive directory copy")

	c := &collector{mode: errMode, logger: logger}
	if err := copyDirLevel(src, dst, info.Mode().Perm(), mode, c); err != nil {
		return err
	}
	return c.finish()
}

// copyDirLevel copies one directory level: enumerate, create the
// destination directory, then dispatch each entry. A failed enumeration
// or directory creation skips the whole subtree, so no per-entry records
// are produced for its descendants.
func copyDirLevel(src, dst paths.Path, perm fs.FileMode, mode CopyMode, c *collector) error {
	names, err := readDirNames(src)
	if err != nil {
		return c.record(ReadContentsFailed, src, dst, err)
	}

	if err := makeDestDir(dst, perm, mode); err != nil {
		return c.record(CreateDirFailed, src, dst, err)
	}

	for _, name := range names {
		s, err := src.Join(name)
		if err != nil {
			if rerr := c.record(ReadContentsFailed, src, dst, err); rerr != nil {
				return rerr
			}
			continue
		}
		d := dst.MustJoin(name)

		entryInfo, err := os.Lstat(s.String())
		if err != nil {
			if rerr := c.record(ReadContentsFailed, s, d, errors.FromOSf(err, "cannot stat %s", s)); rerr != nil {
				return rerr
			}
			continue
		}

		switch typeFromMode(entryInfo.Mode()) {
		case SymbolicLink:
			if err := RecreateSymlink(s, d, mode); err != nil {
				if rerr := c.record(RecreateSymlinkFailed, s, d, err); rerr != nil {
					return rerr
				}
			}
		case Directory:
			if err := copyDirLevel(s, d, entryInfo.Mode().Perm(), mode, c); err != nil {
				return err
			}
		case RegularFile:
			if err := CopyFile(s, d, mode); err != nil {
				if rerr := c.record(CopyFileFailed, s, d, err); rerr != nil {
					return rerr
				}
			}
		default:
			// devices, pipes and sockets are skipped without a record
		}
	}
	return nil
}

// makeDestDir creates the destination directory with the source's
// permission bits. Under Overwrite mode an existing directory is kept and
// only its mode bits are reset; its contents are merged, never pruned.
func makeDestDir(dst paths.Path, perm fs.FileMode, mode CopyMode) error {
	err := os.Mkdir(dst.String(), perm)
	if err == nil {
		// mkdir is subject to the umask; restore the exact source bits
		if cerr := os.Chmod(dst.String(), perm); cerr != nil {
			return errors.FromOSf(cerr, "cannot set mode on directory %s", dst)
		}
		return nil
	}

	if mode == Overwrite && stderrors.Is(err, fs.ErrExist) {
		if cerr := os.Chmod(dst.String(), perm); cerr != nil {
			return errors.FromOSf(cerr, "cannot set mode on existing directory %s", dst)
		}
		return nil
	}

	return errors.FromOSf(err, "cannot create directory %s", dst)
}

// EasyCopy classifies src and dispatches to the matching copy operation:
// symlinks are recreated, directories copied recursively, regular files
// copied. Devices, pipes and sockets are silently ignored.
func EasyCopy(src, dst paths.Path, mode CopyMode, errMode RecursiveErrorMode) error {
	ft, err := GetFileType(src)
	if err != nil {
		return err
	}
	switch ft {
	case SymbolicLink:
		return RecreateSymlink(src, dst, mode)
	case Directory:
		return CopyDirRecursive(src, dst, mode, errMode)
	case RegularFile:
		return CopyFile(src, dst, mode)
	default:
		return nil
	}
}
