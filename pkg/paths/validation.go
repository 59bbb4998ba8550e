package paths

import (
	"strings"

	"github.com/pranaysashank/hpath/pkg/errors"
)

// maxPathLen is the common filesystem path length limit.
const maxPathLen = 4096

// Validate performs the checks every Path must satisfy:
// - not empty
// - no embedded NUL bytes
// - not longer than the common filesystem limit
func Validate(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > maxPathLen {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateComponent ensures a string is usable as a single path component.
// Components must:
// - Not be empty
// - Not contain path separators or NUL bytes
// - Not be the reserved names . or ..
func ValidateComponent(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "path component cannot be empty")
	}

	if strings.ContainsAny(name, "/\x00") {
		return errors.New(errors.ErrInvalidInput, "path component cannot contain separators or null bytes")
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "path component cannot be '.' or '..'")
	}

	return nil
}
