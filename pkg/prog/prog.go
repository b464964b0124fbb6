// Package prog provides the entry point to fdwait: flag parsing, logging
// setup and exit status handling shared by the main function and tests.
package prog

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fairwait/fairwait/pkg/logutil"
)

// Program represents the program to run.
type Program interface {
	// RegisterFlags registers program-specific flags.
	RegisterFlags(fs *flag.FlagSet)
	// Run runs the program with the three standard files and the remaining
	// non-flag arguments.
	Run(fds [3]*os.File, args []string) error
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: fdwait [flags] fd...")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the program. It returns the exit
// status of the process.
func Run(fds [3]*os.File, args []string, p Program) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	logPath := fs.String("log", "", "a file to write debug log to")
	help := fs.Bool("help", false, "show usage help and quit")
	p.RegisterFlags(fs)

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. We define -help but not -h, so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if *logPath != "" {
		err = logutil.SetOutputFile(*logPath)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if *help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
