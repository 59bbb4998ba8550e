package fsops

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pranaysashank/hpath/pkg/errors"
	"github.com/pranaysashank/hpath/pkg/paths"
)

// FailureHint identifies which sub-operation of a recursive walk failed.
type FailureHint int

const (
	ReadContentsFailed FailureHint = iota
	CreateDirFailed
	RecreateSymlinkFailed
	CopyFileFailed
)

func (h FailureHint) String() string {
	switch h {
	case ReadContentsFailed:
		return "read-contents"
	case CreateDirFailed:
		return "create-dir"
	case RecreateSymlinkFailed:
		return "recreate-symlink"
	case CopyFileFailed:
		return "copy-file"
	default:
		return "unknown"
	}
}

// Failure records one failed sub-operation of a recursive walk: which
// operation failed, on which source/destination pair, and the underlying
// error.
type Failure struct {
	Hint FailureHint
	Src  string
	Dst  string
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s (%s -> %s): %v", f.Hint, f.Src, f.Dst, f.Err)
}

// RecursiveError aggregates the failures of a best-effort recursive
// operation run in CollectFailures mode. The order of Failures is
// unspecified.
type RecursiveError struct {
	Failures []Failure
}

func (e *RecursiveError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("1 sub-operation failed: %s", e.Failures[0])
	}
	return fmt.Sprintf("%d sub-operations failed, first: %s", len(e.Failures), e.Failures[0])
}

// Unwrap exposes the underlying errors to errors.Is/As chains.
func (e *RecursiveError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// collector accumulates sub-operation failures for one top-level recursive
// call. It is never shared between calls and never accessed concurrently.
type collector struct {
	mode     RecursiveErrorMode
	logger   zerolog.Logger
	failures []Failure
}

// record handles one sub-operation failure according to the error mode.
// Under FailEarly it returns the failure wrapped with its hint, aborting
// the walk; under CollectFailures it appends to the list and returns nil
// so the walk continues.
func (c *collector) record(hint FailureHint, src, dst paths.Path, err error) error {
	if c.mode == FailEarly {
		wrapped := errors.Wrapf(err, errors.CodeFromOS(err), "%s failed", hint)
		wrapped.WithDetail("source", src.String())
		wrapped.WithDetail("destination", dst.String())
		return wrapped
	}

	c.logger.Warn().
		Stringer("hint", hint).
		Str("source", src.String()).
		Str("destination", dst.String()).
		Err(err).
		Msg("Recorded sub-operation failure, continuing walk")

	c.failures = append(c.failures, Failure{
		Hint: hint,
		Src:  src.String(),
		Dst:  dst.String(),
		Err:  err,
	})
	return nil
}

// finish converts the accumulated failures into one aggregate error, or
// nil if the walk was clean.
func (c *collector) finish() error {
	if len(c.failures) == 0 {
		return nil
	}
	return errors.Wrapf(
		&RecursiveError{Failures: c.failures},
		errors.ErrRecursiveFailure,
		"recursive operation had %d failures", len(c.failures),
	)
}
