// Package digest implements the file fingerprint service: a BLAKE3 content
// digest of a regular file, used by the host to compare file contents
// without shipping them across the boundary.
package digest

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/palfs/palfs/internal/palcode"
	"github.com/palfs/palfs/internal/schema"
	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	Open(name string) (*os.File, error)
}

type unixProvider interface {
	Stat(path string, stat *unix.Stat_t) error
}

// Handler exposes the digest service.
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

// FileDigest returns the hex BLAKE3 digest of the file contents, following
// symbolic links. Entries that resolve to anything but a regular file yield
// ERROR_INVALID_NAME; digesting a directory or device is never meaningful.
func (d *Handler) FileDigest(path schema.Path) (string, error) {
	name, ok := path.Value()
	if !ok {
		return "", palcode.NewError("digest-file", palcode.InvalidParameter)
	}

	var stat unix.Stat_t
	if err := d.unixHandler.Stat(name, &stat); err != nil {
		return "", palcode.StatError("digest-file", err)
	}

	if stat.Mode&unix.S_IFMT != unix.S_IFREG {
		return "", palcode.NewError("digest-file", palcode.InvalidName)
	}

	f, err := d.osHandler.Open(name)
	if err != nil {
		return "", palcode.StatError("digest-file", err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", &palcode.Error{Op: "digest-file", Code: palcode.GenFailure, Err: err}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
