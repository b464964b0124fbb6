//go:build unix

// Package fdwait implements the fdwait program, which blocks until file
// descriptors become ready for I/O and reports which ones did.
package fdwait

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fairwait/fairwait/pkg/logutil"
	"github.com/fairwait/fairwait/pkg/prog"
	"github.com/fairwait/fairwait/pkg/sys"
	"github.com/fairwait/fairwait/pkg/sys/eunix"
)

var logger = logutil.GetLogger("[fdwait] ")

// Program is the fdwait program.
type Program struct {
	timeout   time.Duration
	write     bool
	except    bool
	reportSig bool
}

func (p *Program) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&p.timeout, "t", -1,
		"give up after this long; negative means wait forever")
	fs.BoolVar(&p.write, "w", false,
		"wait for writability instead of readability")
	fs.BoolVar(&p.except, "e", false,
		"also wait for exceptional conditions")
	fs.BoolVar(&p.reportSig, "sig", false,
		"report on stderr when a signal interrupted the wait")
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if len(args) == 0 {
		return prog.BadUsage("need at least one file descriptor")
	}
	fdList := make([]int, 0, len(args))
	nfd := 0
	for _, arg := range args {
		fd, err := strconv.Atoi(arg)
		if err != nil || fd < 0 {
			return prog.BadUsage("invalid file descriptor: " + arg)
		}
		fdList = append(fdList, fd)
		if fd >= nfd {
			nfd = fd + 1
		}
	}
	for _, fd := range fdList {
		logger.Printf("waiting on fd %v (tty=%v)", fd, sys.IsATTY(uintptr(fd)))
	}

	set := eunix.NewFdSet(fdList...)
	var r, w, e *eunix.FdSet
	if p.write {
		w = set
	} else {
		r = set
	}
	if p.except {
		e = eunix.NewFdSet(fdList...)
	}

	n, interrupted, err := eunix.FairSelect(nfd, r, w, e, p.timeout, nil)
	if err != nil {
		return fmt.Errorf("fdwait: %w", err)
	}
	if p.reportSig && interrupted {
		fmt.Fprintln(fds[2], "signal observed while waiting")
	}
	if n == 0 {
		logger.Println("wait timed out")
		return prog.Exit(1)
	}

	cond := "readable"
	if p.write {
		cond = "writable"
	}
	for _, fd := range fdList {
		if set.IsSet(fd) {
			fmt.Fprintln(fds[1], fd, cond)
		}
		if e != nil && e.IsSet(fd) {
			fmt.Fprintln(fds[1], fd, "exceptional")
		}
	}
	return nil
}
