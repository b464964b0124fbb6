// Package eunix provides Unix-specific utilities for waiting on file
// descriptor readiness.
//
// Its centerpiece is FairSelect, a wrapper around pselect(2) that keeps signal
// delivery from silently discarding pending descriptor readiness.
package eunix
