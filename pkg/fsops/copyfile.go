package fsops

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/logging"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// copyBufferSize is the buffer used by the read/write fallback loop.
const copyBufferSize = 8192

// CopyFile copies one regular file's bytes and permission mode bits from
// src to dst. Neither side may be a symlink. Under Strict mode an existing
// destination fails with ALREADY_EXISTS; under Overwrite mode it is
// truncated, or deleted and recreated if truncation is denied but the
// destination is writable. A kernel-assisted transfer is attempted first,
// falling back to a buffered read/write loop where the platform does not
// support it for this descriptor pair. On any failure after the
// destination descriptor was created the destination file is removed, so
// no partial file is left behind.
func CopyFile(src, dst paths.Path, mode CopyMode) error {
	logger := logging.GetLogger("fsops.copyfile")

	same, err := isSameFile(src.String(), dst.String())
	if err != nil {
		return err
	}
	if same {
		return errors.Newf(errors.ErrSameFile, "source and destination are the same file: %s", src)
	}

	info, err := os.Lstat(src.String())
	if err != nil {
		return errors.FromOSf(err, "cannot stat source %s", src)
	}
	switch typeFromMode(info.Mode()) {
	case RegularFile:
	case Socket:
		return errors.Newf(errors.ErrNotFound, "source %s is a socket", src)
	default:
		return errors.Newf(errors.ErrInvalidArgument, "source %s is a %s, not a regular file", src, typeFromMode(info.Mode()))
	}

	in, err := os.OpenFile(src.String(), os.O_RDONLY|unix.O_NOFOLLOW, 0)
	if err != nil {
		return errors.FromOSf(err, "cannot open source %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := openDestination(dst, mode, info.Mode().Perm())
	if err != nil {
		return err
	}

	// From here on the destination exists; remove it on every error path.
	if err := out.Chmod(info.Mode().Perm()); err != nil {
		_ = out.Close()
		_ = os.Remove(dst.String())
		return errors.FromOSf(err, "cannot set mode on destination %s", dst)
	}

	if err := transfer(out, in, info.Size()); err != nil {
		_ = out.Close()
		_ = os.Remove(dst.String())
		return err
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dst.String())
		return errors.FromOSf(err, "cannot close destination %s", dst)
	}

	logger.Debug().
		Str("source", src.String()).
		Str("destination", dst.String()).
		Int64("bytes", info.Size()).
		Msg("Copied file")
	return nil
}

// openDestination opens the destination descriptor according to the copy
// mode. Strict uses exclusive create. Overwrite truncates in place; if
// truncation is denied but the destination exists and is writable, the
// destination is deleted and the open retried in Strict mode.
func openDestination(dst paths.Path, mode CopyMode, perm fs.FileMode) (*os.File, error) {
	if mode == Strict {
		out, err := os.OpenFile(dst.String(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err != nil {
			return nil, errors.FromOSf(err, "cannot create destination %s", dst)
		}
		return out, nil
	}

	out, err := os.OpenFile(dst.String(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC|unix.O_NOFOLLOW, perm)
	if err == nil {
		return out, nil
	}
	if errors.CodeFromOS(err) == errors.ErrPermission {
		if _, lerr := os.Lstat(dst.String()); lerr == nil && isWritable(dst.String()) {
			if rerr := os.Remove(dst.String()); rerr == nil {
				return openDestination(dst, Strict, perm)
			}
		}
	}
	return nil, errors.FromOSf(err, "cannot open destination %s", dst)
}

// transfer moves size bytes from in to out. The zero-copy primitive is
// tried first; if its very first attempt reports the descriptor pair as
// unsupported, the buffered loop takes over. A fast-path failure after
// bytes were already written is fatal, not retried.
func transfer(out, in *os.File, size int64) error {
	written, err := sendfileCopy(out, in, size)
	if err == nil {
		return nil
	}
	if written == 0 && fastPathUnsupported(err) {
		return bufferCopy(out, in)
	}
	return errors.FromOSf(err, "zero-copy transfer failed after %d bytes", written)
}

// fastPathUnsupported reports whether the error means the platform cannot
// run the zero-copy primitive for this descriptor pair.
func fastPathUnsupported(err error) bool {
	return stderrors.Is(err, unix.EINVAL) ||
		stderrors.Is(err, unix.ENOSYS) ||
		stderrors.Is(err, unix.EOPNOTSUPP)
}

// bufferCopy is the fallback read/write loop. It reads fixed-size chunks
// until a zero-length read signals end-of-file. A short write is fatal.
func bufferCopy(out, in *os.File) error {
	buf := make([]byte, copyBufferSize)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			w, werr := out.Write(buf[:n])
			if werr != nil {
				return errors.FromOS(werr, "write to destination failed")
			}
			if w != n {
				return errors.New(errors.ErrInternal, "wrong size write to destination")
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return errors.FromOS(rerr, "read from source failed")
		}
	}
}
