// Package schema provides the principal schematics for all other packages. It
// defines the optional path argument type and provides implementations for
// handling (Unix-based) operating system syscalls. The package serves as a
// foundational layer for the query handlers throughout the codebase.
package schema

// Path is an optional path argument. The zero value is the absent path, a
// valid input that every operation must reject with a stable error code
// rather than dereference. A present-but-empty path is not absent; it goes
// to the platform and fails there like any other unresolvable name.
type Path struct {
	value   string
	present bool
}

// PathOf returns a present [Path] holding the given name.
func PathOf(value string) Path {
	return Path{value: value, present: true}
}

// Value returns the path string and whether the path was present at all.
func (p Path) Value() (string, bool) {
	return p.value, p.present
}

// String implements [fmt.Stringer] for logging of path arguments.
func (p Path) String() string {
	if !p.present {
		return "<absent>"
	}

	return p.value
}
