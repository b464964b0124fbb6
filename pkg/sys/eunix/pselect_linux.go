package eunix

import (
	"time"

	"golang.org/x/sys/unix"
)

// pselect calls pselect(2). A negative timeout blocks indefinitely. If sigmask
// is non-nil, the kernel atomically installs it for the duration of the wait
// and restores the original mask before returning.
func pselect(nfd int, r, w, e *FdSet, timeout time.Duration, sigmask *unix.Sigset_t) (int, error) {
	var pts *unix.Timespec
	if timeout >= 0 {
		ts := unix.NsecToTimespec(int64(timeout))
		pts = &ts
	}
	return unix.Pselect(nfd, r.s(), w.s(), e.s(), pts, sigmask)
}
