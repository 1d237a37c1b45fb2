// Package classify implements the path classification predicates of the
// platform abstraction layer. Each predicate takes an optional path, performs
// exactly one metadata query and returns a boolean together with a structured
// error carrying a stable numeric code when the query itself failed. A
// definite negative answer ("exists, but is not a directory") is not an
// error; the error is non-nil only when the question could not be answered.
package classify

import (
	"errors"
	"syscall"

	"github.com/palfs/palfs/internal/palcode"
	"github.com/palfs/palfs/internal/schema"
	"golang.org/x/sys/unix"
)

type unixProvider interface {
	Access(path string, mode uint32) error
	Lstat(path string, stat *unix.Stat_t) error
	Stat(path string, stat *unix.Stat_t) error
}

// Handler exposes the classification predicates. It holds no state beyond
// its providers and is safe for concurrent use.
type Handler struct {
	unixHandler unixProvider
}

// NewHandler returns a [Handler] using the given syscall provider.
func NewHandler(unixHandler unixProvider) *Handler {
	return &Handler{
		unixHandler: unixHandler,
	}
}

// IsFile reports whether the path names an existing filesystem entry.
//
// Historical contract, preserved exactly: the predicate is an lstat-based
// existence probe, not a POSIX regular-file test. The root directory, any
// other directory and even a dangling symlink all classify as true, because
// the metadata query succeeds for them. Callers wanting the conventional
// meaning of "regular file" use [Handler.IsFileStrict] instead.
//
// An absent path yields ERROR_INVALID_PARAMETER, a nonexistent one
// ERROR_FILE_NOT_FOUND; any other platform failure maps into the closed
// code enumeration of [palcode].
func (c *Handler) IsFile(path schema.Path) (bool, error) {
	name, ok := path.Value()
	if !ok {
		return false, palcode.NewError("classify-isfile", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := c.unixHandler.Lstat(name, &stat); err != nil {
		return false, palcode.StatError("classify-isfile", err)
	}

	return true, nil
}

// IsFileStrict reports whether the path resolves (following symlinks) to a
// regular file. This is the conventional predicate that IsFile deviates
// from; both are kept so that callers can choose the semantics explicitly.
func (c *Handler) IsFileStrict(path schema.Path) (bool, error) {
	name, ok := path.Value()
	if !ok {
		return false, palcode.NewError("classify-isfilestrict", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := c.unixHandler.Stat(name, &stat); err != nil {
		return false, palcode.StatError("classify-isfilestrict", err)
	}

	return stat.Mode&unix.S_IFMT == unix.S_IFREG, nil
}

// IsDirectory reports whether the path resolves (following symlinks) to a
// directory.
func (c *Handler) IsDirectory(path schema.Path) (bool, error) {
	name, ok := path.Value()
	if !ok {
		return false, palcode.NewError("classify-isdir", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := c.unixHandler.Stat(name, &stat); err != nil {
		return false, palcode.StatError("classify-isdir", err)
	}

	return stat.Mode&unix.S_IFMT == unix.S_IFDIR, nil
}

// IsSymLink reports whether the path itself (not its target) is a symbolic
// link.
func (c *Handler) IsSymLink(path schema.Path) (bool, error) {
	name, ok := path.Value()
	if !ok {
		return false, palcode.NewError("classify-issymlink", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := c.unixHandler.Lstat(name, &stat); err != nil {
		return false, palcode.StatError("classify-issymlink", err)
	}

	return stat.Mode&unix.S_IFMT == unix.S_IFLNK, nil
}

// IsExecutable reports whether the calling process may execute the path.
// A plain permission refusal is a definite "no" rather than a failure;
// every other platform error maps into the closed code enumeration.
func (c *Handler) IsExecutable(path schema.Path) (bool, error) {
	name, ok := path.Value()
	if !ok {
		return false, palcode.NewError("classify-isexec", palcode.InvalidParameter)
	}

	if err := c.unixHandler.Access(name, unix.X_OK); err != nil {
		if errors.Is(err, syscall.EACCES) {
			return false, nil
		}

		return false, palcode.StatError("classify-isexec", err)
	}

	return true, nil
}
