package fsops

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// statDevIno returns the device and inode of a path. follow decides
// whether a trailing symlink is resolved. A missing path reports
// exists=false rather than an error.
func statDevIno(path string, follow bool) (dev, ino uint64, exists bool, err error) {
	var st unix.Stat_t
	var serr error
	if follow {
		serr = unix.Stat(path, &st)
	} else {
		serr = unix.Lstat(path, &st)
	}
	if serr != nil {
		if stderrors.Is(serr, unix.ENOENT) {
			return 0, 0, false, nil
		}
		return 0, 0, false, errors.FromOSf(serr, "cannot stat %s", path)
	}
	return uint64(st.Dev), uint64(st.Ino), true, nil
}

// isSameFile reports whether two paths resolve to the same underlying
// filesystem object (same device and inode, following symlinks). If
// either path does not exist the answer is false.
func isSameFile(a, b string) (bool, error) {
	return sameDevIno(a, b, true)
}

// isSameFileNoFollow is isSameFile on the link entries themselves.
func isSameFileNoFollow(a, b string) (bool, error) {
	return sameDevIno(a, b, false)
}

func sameDevIno(a, b string, follow bool) (bool, error) {
	adev, aino, aok, err := statDevIno(a, follow)
	if err != nil {
		return false, err
	}
	if !aok {
		return false, nil
	}
	bdev, bino, bok, err := statDevIno(b, follow)
	if err != nil {
		return false, err
	}
	if !bok {
		return false, nil
	}
	return adev == bdev && aino == bino, nil
}

// isWritable probes write permission on the entry itself, without
// following a trailing symlink.
func isWritable(path string) bool {
	return unix.Faccessat(unix.AT_FDCWD, path, unix.W_OK, unix.AT_SYMLINK_NOFOLLOW) == nil
}

// destInSource reports whether dst lies inside the src tree. This is a
// lexical prefix comparison of the cleaned paths, not a filesystem
// canonicalization walk, so symlink-based cycles introduced mid-tree are
// out of its reach on purpose.
func destInSource(src, dst paths.Path) bool {
	s := src.String()
	d := dst.String()
	// the root path already ends in a separator; appending another
	// would make the prefix unmatchable
	prefix := s
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return d != s && strings.HasPrefix(d, prefix)
}

// readDirNames enumerates a directory's immediate entries. "." and ".."
// are excluded and no ordering is guaranteed.
func readDirNames(p paths.Path) ([]string, error) {
	f, err := os.Open(p.String())
	if err != nil {
		return nil, errors.FromOSf(err, "cannot open directory %s", p)
	}
	defer func() { _ = f.Close() }()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, errors.FromOSf(err, "cannot read directory %s", p)
	}
	return names, nil
}

// GetDirsFiles returns the immediate children of a directory as joined
// paths, in unspecified order.
func GetDirsFiles(p paths.Path) ([]paths.Path, error) {
	names, err := readDirNames(p)
	if err != nil {
		return nil, err
	}
	children := make([]paths.Path, 0, len(names))
	for _, name := range names {
		child, err := p.Join(name)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
