package palcode

import (
	"errors"
	"syscall"
)

// The translation tables mirror the errno switches of the original native
// layer one-to-one, including its historical oddities (a stat ENOMEM maps
// to NoSuchUser, a stat ENAMETOOLONG to GenFailure). Callers depend on the
// exact codes, so the tables are not "fixed" to more obvious mappings.

var statErrnos = map[syscall.Errno]Code{
	syscall.EACCES:       AccessDenied,
	syscall.EBADF:        FileNotFound,
	syscall.EFAULT:       InvalidAddress,
	syscall.ELOOP:        StoppedOnSymlink,
	syscall.ENAMETOOLONG: GenFailure,
	syscall.ENOENT:       FileNotFound,
	syscall.ENOMEM:       NoSuchUser,
	syscall.ENOTDIR:      InvalidName,
	syscall.EOVERFLOW:    BufferOverflow,
}

var hardlinkErrnos = map[syscall.Errno]Code{
	syscall.EACCES:       AccessDenied,
	syscall.EDQUOT:       DiskFull,
	syscall.EEXIST:       FileExists,
	syscall.EFAULT:       InvalidAddress,
	syscall.EIO:          GenFailure,
	syscall.ELOOP:        TooManyLinks,
	syscall.EMLINK:       TooManyLinks,
	syscall.ENAMETOOLONG: BadPathName,
	syscall.ENOENT:       FileNotFound,
	syscall.ENOMEM:       OutOfMemory,
	syscall.ENOTDIR:      InvalidName,
	syscall.ENOSPC:       DiskFull,
	syscall.EPERM:        AccessDenied,
	syscall.EROFS:        AccessDenied,
	syscall.EXDEV:        GenFailure,
}

var symlinkErrnos = map[syscall.Errno]Code{
	syscall.EACCES:       AccessDenied,
	syscall.EDQUOT:       DiskFull,
	syscall.EEXIST:       FileExists,
	syscall.EFAULT:       InvalidAddress,
	syscall.EIO:          GenFailure,
	syscall.ELOOP:        StoppedOnSymlink,
	syscall.ENAMETOOLONG: BadPathName,
	syscall.ENOENT:       FileNotFound,
	syscall.ENOMEM:       OutOfMemory,
	syscall.ENOTDIR:      InvalidName,
	syscall.ENOSPC:       DiskFull,
	syscall.EPERM:        GenFailure,
}

var readlinkErrnos = map[syscall.Errno]Code{
	syscall.EACCES:       AccessDenied,
	syscall.EFAULT:       InvalidAddress,
	syscall.EINVAL:       InvalidName,
	syscall.EIO:          GenFailure,
	syscall.ELOOP:        StoppedOnSymlink,
	syscall.ENAMETOOLONG: BadPathName,
	syscall.ENOENT:       FileNotFound,
	syscall.ENOMEM:       OutOfMemory,
	syscall.ENOTDIR:      BadPathName,
}

func translate(table map[syscall.Errno]Code, err error) Code {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if code, ok := table[errno]; ok {
			return code
		}
	}

	return InvalidFunction
}

// StatError translates a stat/lstat failure into a pal [Error].
func StatError(op string, err error) *Error {
	return &Error{Op: op, Code: translate(statErrnos, err), Err: err}
}

// HardlinkError translates a link(2) failure into a pal [Error].
func HardlinkError(op string, err error) *Error {
	return &Error{Op: op, Code: translate(hardlinkErrnos, err), Err: err}
}

// SymlinkError translates a symlink(2) failure into a pal [Error].
func SymlinkError(op string, err error) *Error {
	return &Error{Op: op, Code: translate(symlinkErrnos, err), Err: err}
}

// ReadlinkError translates a readlink(2) failure into a pal [Error].
func ReadlinkError(op string, err error) *Error {
	return &Error{Op: op, Code: translate(readlinkErrnos, err), Err: err}
}
