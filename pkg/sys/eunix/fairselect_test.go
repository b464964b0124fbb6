//go:build unix

package eunix

import (
	"testing"
	"time"

	"github.com/fairwait/fairwait/pkg/must"
	"github.com/fairwait/fairwait/pkg/testutil"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sys/unix"
)

// An outcome of one scripted pselect call.
type outcome struct {
	n   int
	err error
}

// scriptPselect replaces the underlying pselect with one that plays back the
// given outcomes in order. It returns a pointer to the timeouts each call was
// made with.
func scriptPselect(t *testing.T, outcomes ...outcome) *[]time.Duration {
	t.Helper()
	timeouts := &[]time.Duration{}
	i := 0
	testutil.Set(t, &pselectFn,
		func(nfd int, r, w, e *FdSet, timeout time.Duration, sigmask *unix.Sigset_t) (int, error) {
			if i >= len(outcomes) {
				t.Fatalf("pselect called %v times, only %v outcomes scripted", i+1, len(outcomes))
			}
			*timeouts = append(*timeouts, timeout)
			o := outcomes[i]
			i++
			return o.n, o.err
		})
	return timeouts
}

func TestFairSelect_UninterruptedSuccess(t *testing.T) {
	timeouts := scriptPselect(t, outcome{3, nil})

	n, interrupted, err := FairSelect(4, NewFdSet(0), nil, nil, time.Second, nil)
	if n != 3 || interrupted || err != nil {
		t.Errorf("FairSelect -> (%v, %v, %v), want (3, false, <nil>)", n, interrupted, err)
	}
	if len(*timeouts) != 1 || (*timeouts)[0] != time.Second {
		t.Errorf("underlying timeouts = %v, want [1s]", *timeouts)
	}
}

func TestFairSelect_PureTimeout(t *testing.T) {
	scriptPselect(t, outcome{0, nil})

	n, interrupted, err := FairSelect(1, NewFdSet(0), nil, nil, 10*time.Millisecond, nil)
	if n != 0 || interrupted || err != nil {
		t.Errorf("FairSelect -> (%v, %v, %v), want (0, false, <nil>)", n, interrupted, err)
	}
}

func TestFairSelect_InterruptionRecoversReadiness(t *testing.T) {
	timeouts := scriptPselect(t, outcome{-1, unix.EINTR}, outcome{2, nil})

	n, interrupted, err := FairSelect(4, NewFdSet(0), nil, nil, time.Second, nil)
	if n != 2 || !interrupted || err != nil {
		t.Errorf("FairSelect -> (%v, %v, %v), want (2, true, <nil>)", n, interrupted, err)
	}
	want := []time.Duration{time.Second, 0}
	if diff := cmp.Diff(want, *timeouts); diff != "" {
		t.Errorf("underlying timeouts (-want +got):\n%v", diff)
	}
}

func TestFairSelect_InterruptionThenNothingReady(t *testing.T) {
	scriptPselect(t, outcome{-1, unix.EINTR}, outcome{0, nil})

	n, interrupted, err := FairSelect(1, NewFdSet(0), nil, nil, time.Second, nil)
	if n != 0 || !interrupted || err != nil {
		t.Errorf("FairSelect -> (%v, %v, %v), want (0, true, <nil>)", n, interrupted, err)
	}
}

func TestFairSelect_RepeatedInterruption(t *testing.T) {
	timeouts := scriptPselect(t,
		outcome{-1, unix.EINTR},
		outcome{-1, unix.EINTR},
		outcome{3, nil})

	n, interrupted, err := FairSelect(4, NewFdSet(0), nil, nil, 250*time.Millisecond, nil)
	if n != 3 || !interrupted || err != nil {
		t.Errorf("FairSelect -> (%v, %v, %v), want (3, true, <nil>)", n, interrupted, err)
	}
	want := []time.Duration{250 * time.Millisecond, 0, 0}
	if diff := cmp.Diff(want, *timeouts); diff != "" {
		t.Errorf("underlying timeouts (-want +got):\n%v", diff)
	}
}

func TestFairSelect_IndefiniteTimeoutOnlyBlocksOnce(t *testing.T) {
	timeouts := scriptPselect(t, outcome{-1, unix.EINTR}, outcome{1, nil})

	_, _, err := FairSelect(1, NewFdSet(0), nil, nil, -1, nil)
	if err != nil {
		t.Errorf("FairSelect -> error %v, want <nil>", err)
	}
	want := []time.Duration{-1, 0}
	if diff := cmp.Diff(want, *timeouts); diff != "" {
		t.Errorf("underlying timeouts (-want +got):\n%v", diff)
	}
}

func TestFairSelect_OtherErrorIsNotRetried(t *testing.T) {
	timeouts := scriptPselect(t, outcome{-1, unix.EBADF})

	n, interrupted, err := FairSelect(1, NewFdSet(0), nil, nil, time.Second, nil)
	if n != -1 || interrupted || err != unix.EBADF {
		t.Errorf("FairSelect -> (%v, %v, %v), want (-1, false, EBADF)", n, interrupted, err)
	}
	if len(*timeouts) != 1 {
		t.Errorf("pselect called %v times, want 1", len(*timeouts))
	}
}

func TestFairSelect_ErrorAfterInterruptionIsPropagated(t *testing.T) {
	scriptPselect(t, outcome{-1, unix.EINTR}, outcome{-1, unix.EBADF})

	n, interrupted, err := FairSelect(1, NewFdSet(0), nil, nil, time.Second, nil)
	if n != -1 || !interrupted || err != unix.EBADF {
		t.Errorf("FairSelect -> (%v, %v, %v), want (-1, true, EBADF)", n, interrupted, err)
	}
}

func TestFairSelect_RealPipe(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	w.WriteString("x")

	fd := int(r.Fd())
	fdset := NewFdSet(fd)
	n, interrupted, err := FairSelect(fd+1, fdset, nil, nil, -1, nil)
	if err != nil {
		t.Fatalf("FairSelect errors: %v", err)
	}
	if n != 1 {
		t.Errorf("FairSelect -> %v ready, want 1", n)
	}
	if interrupted {
		t.Errorf("FairSelect reports interruption, want none")
	}
	if !fdset.IsSet(fd) {
		t.Errorf("fd %v not in readiness set", fd)
	}
}
