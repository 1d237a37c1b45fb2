// Package clock implements the system date service of the platform
// abstraction layer. Setting the clock needs superuser rights; the refusal
// surfaces as ERROR_ACCESS_DENIED like every other mapped platform failure.
package clock

import (
	"errors"
	"syscall"
	"time"

	"github.com/palfs/palfs/internal/palcode"
	"golang.org/x/sys/unix"
)

type timeProvider interface {
	Settimeofday(tv *unix.Timeval) error
}

// DateInfo is a civil date and time in the local timezone, the shape the
// managed host marshals across the boundary.
type DateInfo struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	DST    bool
}

// Handler exposes the system date service.
type Handler struct {
	timeHandler timeProvider
}

// NewHandler returns a [Handler] using the given provider.
func NewHandler(timeHandler timeProvider) *Handler {
	return &Handler{
		timeHandler: timeHandler,
	}
}

// SetDate sets the local system clock to the given civil time. A date that
// does not name a real calendar moment yields ERROR_INVALID_PARAMETER; a
// permission refusal yields ERROR_ACCESS_DENIED.
func (c *Handler) SetDate(info DateInfo) error {
	when := time.Date(info.Year, time.Month(info.Month), info.Day, info.Hour, info.Minute, info.Second, 0, time.Local)

	// time.Date normalizes out-of-range components instead of failing, so
	// a round trip is the validity check.
	if when.Year() != info.Year || when.Month() != time.Month(info.Month) || when.Day() != info.Day ||
		when.Hour() != info.Hour || when.Minute() != info.Minute || when.Second() != info.Second {
		return palcode.NewError("clock-setdate", palcode.InvalidParameter)
	}

	tv := unix.NsecToTimeval(when.UnixNano())

	if err := c.timeHandler.Settimeofday(&tv); err != nil {
		if errors.Is(err, syscall.EPERM) {
			return &palcode.Error{Op: "clock-setdate", Code: palcode.AccessDenied, Err: err}
		}

		return &palcode.Error{Op: "clock-setdate", Code: palcode.GenFailure, Err: err}
	}

	return nil
}
