package eunix

import (
	"os"
	"reflect"
	"syscall"

	"golang.org/x/sys/unix"
)

var nSigBits = (uint)(reflect.TypeOf(unix.Sigset_t{}.Val[0]).Size() * 8)

// NewSigset builds a signal mask containing the given signals, suitable for
// passing to FairSelect. Signals that are not syscall.Signal values are
// ignored.
func NewSigset(sigs ...os.Signal) *unix.Sigset_t {
	var set unix.Sigset_t
	for _, sig := range sigs {
		s, ok := sig.(syscall.Signal)
		if !ok || s <= 0 {
			continue
		}
		u := uint(s) - 1
		set.Val[u/nSigBits] |= 1 << (u % nSigBits)
	}
	return &set
}
