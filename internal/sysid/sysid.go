// Package sysid implements the identity queries of the platform abstraction
// layer: the current user, arbitrary uid lookups, the host name and its fully
// qualified form, process ids and the owner of a running process.
package sysid

import (
	"fmt"
	"os/user"
	"strconv"
	"strings"

	"github.com/palfs/palfs/internal/palcode"
	"github.com/palfs/palfs/internal/schema"
)

type osProvider interface {
	Getpid() int
	Hostname() (string, error)
}

type userProvider interface {
	Current() (*user.User, error)
	LookupID(uid string) (*user.User, error)
}

type netProvider interface {
	LookupCNAME(host string) (string, error)
}

type ownerProvider interface {
	Owner(path schema.Path) (string, error)
}

// Handler exposes the identity queries; it is stateless and safe for
// concurrent use.
type Handler struct {
	osHandler    osProvider
	userHandler  userProvider
	netHandler   netProvider
	ownerHandler ownerProvider
}

// NewHandler returns a [Handler] using the given providers. The owner
// provider is the metadata layer's owner lookup, reused for process owners.
func NewHandler(osHandler osProvider, userHandler userProvider, netHandler netProvider, ownerHandler ownerProvider) *Handler {
	return &Handler{
		osHandler:    osHandler,
		userHandler:  userHandler,
		netHandler:   netHandler,
		ownerHandler: ownerHandler,
	}
}

// UserName returns the name of the user the calling process runs as.
func (s *Handler) UserName() (string, error) {
	current, err := s.userHandler.Current()
	if err != nil {
		return "", &palcode.Error{Op: "sysid-username", Code: palcode.NoSuchUser, Err: err}
	}

	return current.Username, nil
}

// UserNameForUID returns the username for a numeric user id. A uid without
// a user database entry yields ERROR_NO_SUCH_USER.
func (s *Handler) UserNameForUID(uid uint32) (string, error) {
	entry, err := s.userHandler.LookupID(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", &palcode.Error{Op: "sysid-uid", Code: palcode.NoSuchUser, Err: err}
	}

	return entry.Username, nil
}

// ComputerName returns the short host name.
func (s *Handler) ComputerName() (string, error) {
	name, err := s.osHandler.Hostname()
	if err != nil {
		return "", &palcode.Error{Op: "sysid-hostname", Code: palcode.GenFailure, Err: err}
	}

	return name, nil
}

// FullyQualifiedName returns the fully qualified host name. A short name
// that already carries a domain is returned as is; otherwise the resolver
// supplies the canonical name, with failures mapping to ERROR_BAD_NET_NAME.
func (s *Handler) FullyQualifiedName() (string, error) {
	name, err := s.ComputerName()
	if err != nil {
		return "", err
	}

	if strings.Contains(name, ".") {
		return name, nil
	}

	cname, err := s.netHandler.LookupCNAME(name)
	if err != nil {
		return "", &palcode.Error{Op: "sysid-fqdn", Code: palcode.BadNetName, Err: err}
	}

	return strings.TrimSuffix(cname, "."), nil
}

// UserFromPid returns the name of the user owning the given process, read
// from the effective owner of its procfs entry.
func (s *Handler) UserFromPid(pid int) (string, error) {
	if pid <= 0 {
		return "", palcode.NewError("sysid-pid", palcode.InvalidParameter)
	}

	owner, err := s.ownerHandler.Owner(schema.PathOf(fmt.Sprintf("/proc/%d", pid)))
	if err != nil {
		return "", fmt.Errorf("(sysid-pid) %w", err)
	}

	return owner, nil
}

// CurrentProcessID returns the pid of the calling process.
func (s *Handler) CurrentProcessID() int {
	return s.osHandler.Getpid()
}
