// Package config loads the hpath CLI configuration. Values are layered:
// built-in defaults, then an optional TOML file in the XDG config
// directory, then HPATH_* environment variables. The library core does
// not read configuration; only the application layer consumes this.
package config
