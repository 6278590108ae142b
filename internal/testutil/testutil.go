// Package testutil holds small fatal-on-error test helpers, in the
// plain helper-function style of the teacher's testing_util package
// (no assertion framework, no reflection-based deep-equal matcher).
package testutil

import "testing"

// RequireNoError fails the test immediately if err is non-nil.
func RequireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// RequireTrue fails the test with msg if cond is false.
func RequireTrue(t *testing.T, cond bool, msg string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(msg, args...)
	}
}

// RequireInt32Equal fails the test if got != want.
func RequireInt32Equal(t *testing.T, got, want int32, msg string) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %d, want %d", msg, got, want)
	}
}
