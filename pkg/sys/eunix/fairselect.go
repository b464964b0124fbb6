//go:build unix

package eunix

import (
	"time"

	"golang.org/x/sys/unix"
)

// Swapped out in tests to script wait outcomes.
var pselectFn = pselect

// FairSelect waits like pselect(2), but gives signals and descriptor readiness
// equal, first-come-first-served priority. A signal that arrives before or
// during the wait makes pselect abort with EINTR and throw away any readiness
// it had gathered; FairSelect absorbs the EINTR and retries with a zero
// timeout, recovering the pending readiness without blocking again.
//
// The returned count and the contents of r, w and e always reflect a single
// underlying wait, never a merge of several. The interrupted result reports
// whether any attempt was aborted by a signal, even when descriptors
// eventually turned out to be ready. Any error other than EINTR is returned
// immediately and unchanged, with no retry.
//
// A negative timeout blocks indefinitely. The timeout bounds the first attempt
// only; it is not decremented across retries, and the caller's value is never
// modified. If sigmask is non-nil it is installed atomically for the duration
// of each wait (Linux only; see NewSigset).
//
// A sustained stream of signals can in principle keep interrupting even the
// zero-timeout retries. The loop then busy-retries rather than blocking; there
// is no retry cap, since giving up would leak an EINTR the caller was promised
// not to see.
func FairSelect(nfd int, r, w, e *FdSet, timeout time.Duration, sigmask *unix.Sigset_t) (n int, interrupted bool, err error) {
	for {
		n, err = pselectFn(nfd, r, w, e, timeout, sigmask)
		if err != unix.EINTR {
			return n, interrupted, err
		}
		interrupted = true
		timeout = 0
	}
}
