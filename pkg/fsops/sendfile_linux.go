//go:build linux

package fsops

import (
	"os"

	"golang.org/x/sys/unix"
)

// sendfile(2) caps a single call at roughly 2GB; stay well under it.
const maxSendfileChunk = 1 << 30

// sendfileCopy transfers size bytes from in to out with sendfile(2),
// avoiding a user-space buffer round-trip. It returns how many bytes were
// actually moved alongside any error, so the caller can tell an
// unsupported descriptor pair (zero bytes, EINVAL/ENOSYS/EOPNOTSUPP) from
// a mid-transfer failure.
func sendfileCopy(out, in *os.File, size int64) (int64, error) {
	var total int64
	for total < size {
		chunk := size - total
		if chunk > maxSendfileChunk {
			chunk = maxSendfileChunk
		}
		n, err := unix.Sendfile(int(out.Fd()), int(in.Fd()), nil, int(chunk))
		if n > 0 {
			total += int64(n)
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			// source shrank under us; treat what we have as complete
			break
		}
	}
	return total, nil
}
