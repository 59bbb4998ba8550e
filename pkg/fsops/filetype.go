package fsops

import (
	"io/fs"
	"os"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// FileType is the closed set of filesystem object types an entry can
// classify as. Classification is a point-in-time lstat; it is not cached
// and not observed transactionally with later operations on the same path.
type FileType int

const (
	Directory FileType = iota
	RegularFile
	SymbolicLink
	BlockDevice
	CharacterDevice
	NamedPipe
	Socket
)

func (t FileType) String() string {
	switch t {
	case Directory:
		return "directory"
	case RegularFile:
		return "regular file"
	case SymbolicLink:
		return "symbolic link"
	case BlockDevice:
		return "block device"
	case CharacterDevice:
		return "character device"
	case NamedPipe:
		return "named pipe"
	case Socket:
		return "socket"
	default:
		return "unknown"
	}
}

// GetFileType stats the path without following a trailing symlink and
// returns its FileType. It has no side effects.
func GetFileType(p paths.Path) (FileType, error) {
	info, err := os.Lstat(p.String())
	if err != nil {
		return 0, errors.FromOSf(err, "cannot stat %s", p)
	}
	return typeFromMode(info.Mode()), nil
}

// typeFromMode maps lstat mode bits to a FileType. Character devices set
// both ModeDevice and ModeCharDevice, so they are checked first.
func typeFromMode(m fs.FileMode) FileType {
	switch {
	case m&fs.ModeSymlink != 0:
		return SymbolicLink
	case m.IsDir():
		return Directory
	case m&fs.ModeCharDevice != 0:
		return CharacterDevice
	case m&fs.ModeDevice != 0:
		return BlockDevice
	case m&fs.ModeNamedPipe != 0:
		return NamedPipe
	case m&fs.ModeSocket != 0:
		return Socket
	default:
		return RegularFile
	}
}
