package buffer

import "heapdb/internal/assert"

// MRU evicts the single most-recently-accessed offset. State is just
// that offset plus an initialized flag (spec.md §4.3.2); the
// BufferManager's ChooseVictim -> NotifyEvict -> NotifyAccess(new page)
// ordering restores the invariant that mostRecent is resident whenever
// initialized is true.
type MRU struct {
	mostRecent  Offset
	initialized bool
}

// NewMRU returns an empty MRU policy.
func NewMRU() *MRU {
	m := &MRU{}
	m.Init()
	return m
}

func (m *MRU) Init() {
	m.mostRecent = 0
	m.initialized = false
}

func (m *MRU) NotifyAccess(o Offset) {
	m.mostRecent = o
	m.initialized = true
}

func (m *MRU) NotifyEvict(o Offset) {
	if m.initialized && o == m.mostRecent {
		m.initialized = false
	}
}

func (m *MRU) ChooseVictim() Offset {
	assert.Assert(m.initialized, "MRU: ChooseVictim called before any NotifyAccess")
	return m.mostRecent
}

func (m *MRU) Name() string {
	return "MRU"
}
