//go:build unix && !linux

package eunix

import (
	"time"

	"golang.org/x/sys/unix"
)

// golang.org/x/sys/unix only wraps pselect(2) on Linux; elsewhere we fall back
// to select(2). Emulating the signal mask with a sigprocmask pair around the
// wait would reintroduce the very race pselect exists to close, so a non-nil
// sigmask is rejected instead.
func pselect(nfd int, r, w, e *FdSet, timeout time.Duration, sigmask *unix.Sigset_t) (int, error) {
	if sigmask != nil {
		return -1, unix.ENOSYS
	}
	var ptv *unix.Timeval
	if timeout >= 0 {
		tv := unix.NsecToTimeval(int64(timeout))
		ptv = &tv
	}
	return unix.Select(nfd, r.s(), w.s(), e.s(), ptv)
}
