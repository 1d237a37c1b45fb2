// Package palcode implements the stable numeric error contract of the
// platform abstraction layer. Operations never surface a raw platform errno;
// every failure is translated into a closed set of OS-style codes that a
// managed caller can branch on across the language boundary.
package palcode

// Code is a stable numeric error code. The values follow the Win32 numbering
// convention that the managed host consumes, regardless of the platform the
// query actually ran on.
type Code uint32

const (
	// InvalidFunction is the catch-all code for platform errors that have
	// no mapping of their own.
	InvalidFunction Code = 0x00000001

	// FileNotFound signals that a path (or a component of it) does not
	// resolve to any existing filesystem entry.
	FileNotFound Code = 0x00000002

	TooManyOpenFiles   Code = 0x00000004
	AccessDenied       Code = 0x00000005
	BadEnvironment     Code = 0x0000000A
	OutOfMemory        Code = 0x0000000E
	GenFailure         Code = 0x0000001F
	BadNetName         Code = 0x00000043
	FileExists         Code = 0x00000050
	InsufficientBuffer Code = 0x0000007A
	InvalidName        Code = 0x0000007B

	// InvalidParameter signals that a required argument was absent.
	InvalidParameter Code = 0x00000057

	BufferOverflow   Code = 0x0000006F
	DiskFull         Code = 0x00000070
	BadPathName      Code = 0x000000A1
	InvalidAddress   Code = 0x000001E7
	StoppedOnSymlink Code = 0x000002A9
	TooManyLinks     Code = 0x00000476
	NoAssociation    Code = 0x00000483
	NoSuchUser       Code = 0x00000525
)

// String returns the symbolic name of a [Code] for logs and CLI output.
func (c Code) String() string {
	switch c {
	case InvalidFunction:
		return "ERROR_INVALID_FUNCTION"
	case FileNotFound:
		return "ERROR_FILE_NOT_FOUND"
	case TooManyOpenFiles:
		return "ERROR_TOO_MANY_OPEN_FILES"
	case AccessDenied:
		return "ERROR_ACCESS_DENIED"
	case BadEnvironment:
		return "ERROR_BAD_ENVIRONMENT"
	case OutOfMemory:
		return "ERROR_OUTOFMEMORY"
	case GenFailure:
		return "ERROR_GEN_FAILURE"
	case BadNetName:
		return "ERROR_BAD_NET_NAME"
	case FileExists:
		return "ERROR_FILE_EXISTS"
	case InvalidParameter:
		return "ERROR_INVALID_PARAMETER"
	case InsufficientBuffer:
		return "ERROR_INSUFFICIENT_BUFFER"
	case InvalidName:
		return "ERROR_INVALID_NAME"
	case BufferOverflow:
		return "ERROR_BUFFER_OVERFLOW"
	case DiskFull:
		return "ERROR_DISK_FULL"
	case BadPathName:
		return "ERROR_BAD_PATH_NAME"
	case InvalidAddress:
		return "ERROR_INVALID_ADDRESS"
	case StoppedOnSymlink:
		return "ERROR_STOPPED_ON_SYMLINK"
	case TooManyLinks:
		return "ERROR_TOO_MANY_LINKS"
	case NoAssociation:
		return "ERROR_NO_ASSOCIATION"
	case NoSuchUser:
		return "ERROR_NO_SUCH_USER"
	default:
		return "ERROR_UNKNOWN"
	}
}
