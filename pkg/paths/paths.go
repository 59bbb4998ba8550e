package paths

import (
	"path/filepath"

	"github.com/pranaysashank/hpath/pkg/errors"
)

// Kind tags a Path as absolute or relative.
type Kind int

const (
	// Absolute paths start at the filesystem root.
	Absolute Kind = iota
	// Relative paths are resolved against the process working directory.
	Relative
)

func (k Kind) String() string {
	if k == Absolute {
		return "absolute"
	}
	return "relative"
}

// Path is a validated, cleaned filesystem path. The zero value is not a
// valid Path; use one of the constructors.
type Path struct {
	name string
	kind Kind
}

// NewAbs validates s as an absolute path.
func NewAbs(s string) (Path, error) {
	if err := Validate(s); err != nil {
		return Path{}, err
	}
	if !filepath.IsAbs(s) {
		return Path{}, errors.Newf(errors.ErrInvalidInput, "not an absolute path: %s", s)
	}
	return Path{name: filepath.Clean(s), kind: Absolute}, nil
}

// NewRel validates s as a relative path.
func NewRel(s string) (Path, error) {
	if err := Validate(s); err != nil {
		return Path{}, err
	}
	if filepath.IsAbs(s) {
		return Path{}, errors.Newf(errors.ErrInvalidInput, "not a relative path: %s", s)
	}
	return Path{name: filepath.Clean(s), kind: Relative}, nil
}

// Parse validates s and infers its kind from a leading separator.
func Parse(s string) (Path, error) {
	if filepath.IsAbs(s) {
		return NewAbs(s)
	}
	return NewRel(s)
}

// MustParse is Parse that panics on invalid input. Intended for constants
// and tests.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the cleaned path string.
func (p Path) String() string {
	return p.name
}

// Kind reports whether the path is absolute or relative.
func (p Path) Kind() Kind {
	return p.kind
}

// IsAbs reports whether the path is absolute.
func (p Path) IsAbs() bool {
	return p.kind == Absolute
}

// IsZero reports whether p is the invalid zero value.
func (p Path) IsZero() bool {
	return p.name == ""
}

// Join appends a single child component to the path. The component must
// be a bare name: no separators, no NUL bytes, not "." or "..".
func (p Path) Join(name string) (Path, error) {
	if err := ValidateComponent(name); err != nil {
		return Path{}, err
	}
	return Path{name: filepath.Join(p.name, name), kind: p.kind}, nil
}

// MustJoin is Join that panics on an invalid component.
func (p Path) MustJoin(name string) Path {
	child, err := p.Join(name)
	if err != nil {
		panic(err)
	}
	return child
}

// Base returns the last component of the path.
func (p Path) Base() string {
	return filepath.Base(p.name)
}

// Dir returns the path's parent directory, same kind as p.
func (p Path) Dir() Path {
	return Path{name: filepath.Dir(p.name), kind: p.kind}
}

// Equal reports whether two paths have the same kind and cleaned string.
// This is a lexical comparison; it says nothing about whether the paths
// resolve to the same filesystem object.
func (p Path) Equal(other Path) bool {
	return p.kind == other.kind && p.name == other.name
}
