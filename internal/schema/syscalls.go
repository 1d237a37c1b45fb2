package schema

import (
	"net"
	"os"
	"os/user"

	"golang.org/x/sys/unix"
)

// OS is an implementation wrapping operating system functions.
type OS struct{}

// Readlink wraps around [os.Readlink].
func (*OS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

// Open wraps around [os.Open].
func (*OS) Open(name string) (*os.File, error) {
	return os.Open(name)
}

// Stat wraps around [os.Stat].
func (*OS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Hostname wraps around [os.Hostname].
func (*OS) Hostname() (string, error) {
	return os.Hostname()
}

// Getpid wraps around [os.Getpid].
func (*OS) Getpid() int {
	return os.Getpid()
}

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Stat wraps around [unix.Stat].
func (*Unix) Stat(path string, stat *unix.Stat_t) error {
	return unix.Stat(path, stat)
}

// Lstat wraps around [unix.Lstat].
func (*Unix) Lstat(path string, stat *unix.Stat_t) error {
	return unix.Lstat(path, stat)
}

// Access wraps around [unix.Access].
func (*Unix) Access(path string, mode uint32) error {
	return unix.Access(path, mode)
}

// Link wraps around [unix.Link].
func (*Unix) Link(oldpath, newpath string) error {
	return unix.Link(oldpath, newpath)
}

// Symlink wraps around [unix.Symlink].
func (*Unix) Symlink(oldpath, newpath string) error {
	return unix.Symlink(oldpath, newpath)
}

// Settimeofday wraps around [unix.Settimeofday].
func (*Unix) Settimeofday(tv *unix.Timeval) error {
	return unix.Settimeofday(tv)
}

// User is an implementation wrapping user database lookups.
type User struct{}

// Current wraps around [user.Current].
func (*User) Current() (*user.User, error) {
	return user.Current()
}

// LookupID wraps around [user.LookupId].
func (*User) LookupID(uid string) (*user.User, error) {
	return user.LookupId(uid)
}

// Net is an implementation wrapping name resolution functions.
type Net struct{}

// LookupCNAME wraps around [net.LookupCNAME].
func (*Net) LookupCNAME(host string) (string, error) {
	return net.LookupCNAME(host)
}
