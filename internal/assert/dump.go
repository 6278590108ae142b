package assert

import (
	"runtime"

	"github.com/devlights/gomy/output"
)

// DumpInvariant writes the current goroutine's stack to stdout under the
// given label before an Assert call panics, mirroring the teacher's
// lib/common/assert.go RuntimeStack helper. Callers use it at the few
// invariant boundaries spec.md §7 names as programmer errors, where a
// stack dump is worth more than a bare panic message.
func DumpInvariant(label string) {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			output.Stdoutl(label, string(buf[:n]))
			return
		}
		buf = make([]byte, 2*len(buf))
	}
}
