//go:build unix

// Fdwait blocks until file descriptors become ready for I/O, a timeout
// elapses, or an error occurs, and reports which descriptors are ready. A
// signal arriving during the wait never discards pending readiness.
package main

import (
	"os"

	"github.com/fairwait/fairwait/pkg/fdwait"
	"github.com/fairwait/fairwait/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		&fdwait.Program{}))
}
