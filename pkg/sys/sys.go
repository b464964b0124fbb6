// Package sys provides system utilities with the same API across OSes.
//
// The subpackage eunix provides Unix-specific utilities.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 256

// NotifySignals returns a channel on which all signals get delivered.
func NotifySignals() chan os.Signal { return notifySignals() }

// IsATTY reports whether the given file descriptor is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
