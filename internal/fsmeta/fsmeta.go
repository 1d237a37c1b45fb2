// Package fsmeta implements the metadata layer of the platform abstraction
// layer: single-syscall stat and lstat queries decoded into a portable
// [Metadata] structure, plus the file owner lookup built on top of them.
package fsmeta

import (
	"os/user"
	"strconv"

	"github.com/palfs/palfs/internal/palcode"
	"github.com/palfs/palfs/internal/schema"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	Readlink(name string) (string, error)
}

type unixProvider interface {
	Lstat(path string, stat *unix.Stat_t) error
	Stat(path string, stat *unix.Stat_t) error
}

type userProvider interface {
	LookupID(uid string) (*user.User, error)
}

const (
	unixBasePerms = 0o777
)

// Metadata is the decoded result of a single metadata query.
type Metadata struct {
	Inode      uint64
	Nlink      uint64
	Perms      uint32
	UID        uint32
	GID        uint32
	AccessedAt unix.Timespec
	ModifiedAt unix.Timespec
	Size       uint64
	IsDir      bool
	IsRegular  bool
	IsSymlink  bool
	SymlinkTo  string
}

// Handler exposes the metadata queries; it is stateless and safe for
// concurrent use.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
	userHandler userProvider
}

// NewHandler returns a [Handler] using the given providers.
func NewHandler(osHandler osProvider, unixHandler unixProvider, userHandler userProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
		userHandler: userHandler,
	}
}

// Stat queries metadata for the path, following symbolic links.
func (f *Handler) Stat(path schema.Path) (*Metadata, error) {
	name, ok := path.Value()
	if !ok {
		return nil, palcode.NewError("fsmeta-stat", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := f.unixHandler.Stat(name, &stat); err != nil {
		return nil, palcode.StatError("fsmeta-stat", err)
	}

	return f.decode(name, &stat)
}

// Lstat queries metadata for the path itself, not following symbolic links.
func (f *Handler) Lstat(path schema.Path) (*Metadata, error) {
	name, ok := path.Value()
	if !ok {
		return nil, palcode.NewError("fsmeta-lstat", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := f.unixHandler.Lstat(name, &stat); err != nil {
		return nil, palcode.StatError("fsmeta-lstat", err)
	}

	return f.decode(name, &stat)
}

// Owner returns the username owning the path (following symbolic links).
// An owning uid without a user database entry yields ERROR_NO_SUCH_USER.
func (f *Handler) Owner(path schema.Path) (string, error) {
	name, ok := path.Value()
	if !ok {
		return "", palcode.NewError("fsmeta-owner", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := f.unixHandler.Stat(name, &stat); err != nil {
		return "", palcode.StatError("fsmeta-owner", err)
	}

	owner, err := f.userHandler.LookupID(strconv.FormatUint(uint64(stat.Uid), 10))
	if err != nil {
		return "", &palcode.Error{Op: "fsmeta-owner", Code: palcode.NoSuchUser, Err: err}
	}

	return owner.Username, nil
}

func (f *Handler) decode(name string, stat *unix.Stat_t) (*Metadata, error) {
	metadata := &Metadata{
		Inode:      stat.Ino,
		Nlink:      uint64(stat.Nlink),
		Perms:      stat.Mode & unixBasePerms,
		UID:        stat.Uid,
		GID:        stat.Gid,
		AccessedAt: stat.Atim,
		ModifiedAt: stat.Mtim,
		Size:       handleSize(stat.Size),
		IsDir:      (stat.Mode & unix.S_IFMT) == unix.S_IFDIR,
		IsRegular:  (stat.Mode & unix.S_IFMT) == unix.S_IFREG,
		IsSymlink:  (stat.Mode & unix.S_IFMT) == unix.S_IFLNK,
	}

	if metadata.IsSymlink {
		symlinkTarget, err := f.osHandler.Readlink(name)
		if err != nil {
			return nil, palcode.ReadlinkError("fsmeta-readlink", err)
		}
		metadata.SymlinkTo = symlinkTarget
	}

	return metadata, nil
}

// handleSize converts an int64 filesize to a uint64 filesize (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
