// Package assert provides heapdb's programmer-error boundary, in the
// shape of the teacher's common.SH_Assert: a condition that must hold,
// or the process panics with a formatted message. These are not
// recoverable I/O failures (see package heap's error returns); they mark
// invariant violations spec.md §7 calls programmer errors.
package assert

import "fmt"

// Assert panics with a formatted message if cond is false.
func Assert(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(msg, args...))
	}
}
