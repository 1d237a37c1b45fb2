// Package fslink implements the link services of the platform abstraction
// layer: creating hard and symbolic links, resolving a symbolic link to its
// target and retrieving the hard link count of a file.
package fslink

import (
	"path/filepath"

	"github.com/palfs/palfs/internal/palcode"
	"github.com/palfs/palfs/internal/schema"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	Readlink(name string) (string, error)
}

type unixProvider interface {
	Link(oldpath, newpath string) error
	Lstat(path string, stat *unix.Stat_t) error
	Symlink(oldpath, newpath string) error
}

// Handler exposes the link operations; it is stateless and safe for
// concurrent use.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
}

// NewHandler returns a [Handler] using the given providers.
func NewHandler(osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// CreateHardLink creates newlink as a hard link to target. Both arguments
// are mandatory; an absent one yields ERROR_INVALID_PARAMETER.
func (l *Handler) CreateHardLink(newlink schema.Path, target schema.Path) error {
	linkName, ok := newlink.Value()
	if !ok {
		return palcode.NewError("fslink-hardlink", palcode.InvalidParameter)
	}

	targetName, ok := target.Value()
	if !ok {
		return palcode.NewError("fslink-hardlink", palcode.InvalidParameter)
	}

	if err := l.unixHandler.Link(targetName, linkName); err != nil {
		return palcode.HardlinkError("fslink-hardlink", err)
	}

	return nil
}

// CreateSymLink creates newlink as a symbolic link pointing at target. The
// target needs not exist; both arguments are mandatory.
func (l *Handler) CreateSymLink(newlink schema.Path, target schema.Path) error {
	linkName, ok := newlink.Value()
	if !ok {
		return palcode.NewError("fslink-symlink", palcode.InvalidParameter)
	}

	targetName, ok := target.Value()
	if !ok {
		return palcode.NewError("fslink-symlink", palcode.InvalidParameter)
	}

	if err := l.unixHandler.Symlink(targetName, linkName); err != nil {
		return palcode.SymlinkError("fslink-symlink", err)
	}

	return nil
}

// FollowSymLink resolves a symbolic link. A fully resolvable link yields its
// canonical target; a dangling link yields the raw link text. A path that
// exists but is not a symbolic link yields ERROR_INVALID_NAME, matching the
// readlink contract for non-links.
func (l *Handler) FollowSymLink(path schema.Path) (string, error) {
	name, ok := path.Value()
	if !ok {
		return "", palcode.NewError("fslink-follow", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := l.unixHandler.Lstat(name, &stat); err != nil {
		return "", palcode.StatError("fslink-follow", err)
	}

	if stat.Mode&unix.S_IFMT != unix.S_IFLNK {
		return "", palcode.NewError("fslink-follow", palcode.InvalidName)
	}

	// Full resolution first, raw link text as the fallback for dangling links.
	if resolved, err := filepath.EvalSymlinks(name); err == nil {
		return resolved, nil
	}

	target, err := l.osHandler.Readlink(name)
	if err != nil {
		return "", palcode.ReadlinkError("fslink-follow", err)
	}

	return target, nil
}

// LinkCount returns the number of hard links of the path itself.
func (l *Handler) LinkCount(path schema.Path) (uint64, error) {
	name, ok := path.Value()
	if !ok {
		return 0, palcode.NewError("fslink-count", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := l.unixHandler.Lstat(name, &stat); err != nil {
		return 0, palcode.StatError("fslink-count", err)
	}

	return uint64(stat.Nlink), nil
}
