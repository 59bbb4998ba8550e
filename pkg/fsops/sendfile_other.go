//go:build !linux

package fsops

import (
	"os"

	"golang.org/x/sys/unix"
)

// sendfileCopy reports the zero-copy primitive as unsupported on
// platforms without sendfile(2) between regular files, which routes the
// caller onto the buffered read/write loop.
func sendfileCopy(out, in *os.File, size int64) (int64, error) {
	return 0, unix.EOPNOTSUPP
}
