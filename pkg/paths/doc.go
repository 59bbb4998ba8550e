// Package paths provides the typed, validated filesystem path used by the
// rest of hpath. A Path is a plain value: once constructed it is known to
// be non-empty, free of NUL bytes, cleaned of redundant separators, and
// tagged as absolute or relative. The operation layer only accepts Path
// values, which keeps ad-hoc strings out of syscall call sites.
package paths
