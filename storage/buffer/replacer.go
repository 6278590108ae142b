// Package buffer implements the replacement-policy capability contract
// spec.md §4.3 names (LRU, MRU, CLOCK) and the BufferManager (spec.md
// §4.4) that drives it. Grounded on the teacher's storage/buffer
// package: clock_replacer.go and circular_list.go for the CLOCK
// mechanics, buffer_pool_manager.go for the fetch/evict/install
// ordering.
package buffer

import "heapdb/internal/assert"

// Offset identifies a cached page by its byte offset in the data file.
type Offset int64

// ReplacementPolicy is a state machine the BufferManager drives through
// three events: a successful access, an eviction, and a request to
// choose the next victim. The BufferManager owns exactly one instance
// and never inspects which concrete variant it holds (spec.md §9).
type ReplacementPolicy interface {
	// Init resets the policy to empty.
	Init()
	// NotifyAccess is called on every buffer-pool hit, and once more
	// after a miss has installed the new page.
	NotifyAccess(o Offset)
	// NotifyEvict is called after the BufferManager has removed a
	// frame from its table.
	NotifyEvict(o Offset)
	// ChooseVictim returns an offset currently held by the policy.
	// Called only when the pool is full; panics (a programmer error,
	// per spec.md §7) if the policy holds no entries.
	ChooseVictim() Offset
	// Name identifies the policy for observability.
	Name() string
}

// assertNonEmpty is the shared empty-victim programmer-error boundary
// spec.md §7 and §4.3.1/4.3.2 name: the BufferManager only ever calls
// ChooseVictim when the pool is at capacity, so an empty policy here
// means a bug in the caller, not a normal miss.
func assertNonEmpty(cond bool, policyName string) {
	assert.Assert(cond, "%s: ChooseVictim called on an empty policy", policyName)
}
