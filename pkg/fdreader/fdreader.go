//go:build unix

// Package fdreader reads bytes from a file with a timeout and an out-of-band
// stop, built on the signal-fair wait in pkg/sys/eunix.
package fdreader

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fairwait/fairwait/pkg/logutil"
	"github.com/fairwait/fairwait/pkg/sys/eunix"
)

var logger = logutil.GetLogger("[fdreader] ")

// ErrStopped is returned by ReadByteWithTimeout when the read was aborted by
// Stop.
var ErrStopped = errors.New("read stopped")

// ErrTimeout is returned by ReadByteWithTimeout when no byte arrived in time.
var ErrTimeout = errors.New("read timed out")

// Reader reads single bytes from a file. Reads can be bounded by a timeout and
// aborted from another goroutine with Stop.
type Reader struct {
	file  *os.File
	rStop *os.File
	wStop *os.File
	// Held while a read is in progress.
	mutex sync.Mutex
}

// New creates a Reader for the given file. The caller retains ownership of the
// file; Close only releases resources the Reader itself allocated.
func New(file *os.File) (*Reader, error) {
	rStop, wStop, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &Reader{file: file, rStop: rStop, wStop: wStop}, nil
}

// ReadByteWithTimeout reads a byte, waiting at most timeout. A negative
// timeout means waiting indefinitely. It returns ErrTimeout if the timeout
// elapsed, and ErrStopped if Stop was called while waiting. A signal arriving
// during the wait does not abort it; pending readiness is recovered and the
// read proceeds.
func (r *Reader) ReadByteWithTimeout(timeout time.Duration) (byte, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	fd := int(r.file.Fd())
	stopFd := int(r.rStop.Fd())
	nfd := fd + 1
	if stopFd >= fd {
		nfd = stopFd + 1
	}
	fdset := eunix.NewFdSet(fd, stopFd)
	_, interrupted, err := eunix.FairSelect(nfd, fdset, nil, nil, timeout, nil)
	if err != nil {
		return 0, err
	}
	if interrupted {
		logger.Println("wait interrupted by signal; pending readiness recovered")
	}
	if fdset.IsSet(stopFd) {
		var b [1]byte
		r.rStop.Read(b[:])
		return 0, ErrStopped
	}
	if !fdset.IsSet(fd) {
		return 0, ErrTimeout
	}
	var b [1]byte
	nr, err := r.file.Read(b[:])
	if err != nil {
		return 0, err
	}
	if nr != 1 {
		return 0, io.ErrNoProgress
	}
	return b[0], nil
}

// Stop aborts any ongoing read with ErrStopped. It blocks until the read
// returns.
func (r *Reader) Stop() error {
	_, err := r.wStop.Write([]byte{'q'})
	r.mutex.Lock()
	r.mutex.Unlock()
	return err
}

// Close releases the resources allocated by the Reader. It does not close the
// underlying file.
func (r *Reader) Close() {
	r.rStop.Close()
	r.wStop.Close()
}
