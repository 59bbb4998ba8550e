package errors

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// FromOS translates an error returned by the os/syscall layer into an
// HPathError carrying the matching taxonomy code. The underlying error is
// preserved via Wrapped so callers can still reach the original
// *fs.PathError or errno. A nil input returns nil.
func FromOS(err error, message string) *HPathError {
	if err == nil {
		return nil
	}
	return Wrap(err, CodeFromOS(err), message)
}

// FromOSf is FromOS with a formatted message.
func FromOSf(err error, format string, args ...interface{}) *HPathError {
	if err == nil {
		return nil
	}
	return Wrapf(err, CodeFromOS(err), format, args...)
}

// CodeFromOS maps an OS error to its taxonomy code without wrapping it.
// Errno values are extracted through the errors.As chain, so wrapped
// *fs.PathError and *os.LinkError values classify correctly.
func CodeFromOS(err error) ErrorCode {
	if err == nil {
		return ErrUnknown
	}

	var hpathErr *HPathError
	if errors.As(err, &hpathErr) {
		return hpathErr.Code
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		switch errno {
		case unix.ENOENT:
			return ErrNotFound
		case unix.EACCES, unix.EPERM:
			return ErrPermission
		case unix.EEXIST:
			return ErrAlreadyExists
		case unix.EINVAL, unix.ELOOP:
			return ErrInvalidArgument
		case unix.ENOTDIR, unix.EISDIR:
			return ErrInappropriateType
		case unix.ENOTEMPTY:
			return ErrDirNotEmpty
		case unix.EXDEV:
			return ErrCrossDevice
		}
	}

	// Portable sentinel checks for errors that did not surface an errno
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	case errors.Is(err, fs.ErrExist):
		return ErrAlreadyExists
	case errors.Is(err, fs.ErrInvalid):
		return ErrInvalidArgument
	}

	return ErrUnknown
}
