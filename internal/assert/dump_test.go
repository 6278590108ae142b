package assert

import "testing"

func TestDumpInvariantDoesNotPanic(t *testing.T) {
	DumpInvariant("test: sanity dump")
}
