package fsops

import (
	"github.com/pranaysashank/hpath/pkg/errors"
)

// CopyMode decides what happens when a copy or move finds its destination
// already occupied.
type CopyMode int

const (
	// Strict fails with ALREADY_EXISTS if any destination target exists.
	Strict CopyMode = iota
	// Overwrite replaces existing destination entries. Files and symlinks
	// are deleted and recreated; directories are merged without pruning,
	// so the destination may keep entries the source does not have.
	Overwrite
)

func (m CopyMode) String() string {
	if m == Overwrite {
		return "overwrite"
	}
	return "strict"
}

// ParseCopyMode converts a configuration string to a CopyMode.
func ParseCopyMode(s string) (CopyMode, error) {
	switch s {
	case "strict":
		return Strict, nil
	case "overwrite":
		return Overwrite, nil
	default:
		return Strict, errors.Newf(errors.ErrInvalidInput, "unknown copy mode: %q", s)
	}
}

// RecursiveErrorMode decides how a recursive operation reacts to
// sub-operation failures.
type RecursiveErrorMode int

const (
	// FailEarly aborts the whole recursive operation on the first
	// sub-operation failure.
	FailEarly RecursiveErrorMode = iota
	// CollectFailures records sub-operation failures and continues the
	// walk, raising one aggregate error at the end. Top-level sanity
	// failures still abort immediately.
	CollectFailures
)

func (m RecursiveErrorMode) String() string {
	if m == CollectFailures {
		return "collect"
	}
	return "fail-early"
}

// ParseErrorMode converts a configuration string to a RecursiveErrorMode.
func ParseErrorMode(s string) (RecursiveErrorMode, error) {
	switch s {
	case "fail-early":
		return FailEarly, nil
	case "collect":
		return CollectFailures, nil
	default:
		return FailEarly, errors.Newf(errors.ErrInvalidInput, "unknown recursive error mode: %q", s)
	}
}
