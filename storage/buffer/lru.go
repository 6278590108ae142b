package buffer

// LRU evicts the least-recently-accessed resident offset. State is an
// ordered sequence of offsets from least- to most-recently accessed
// (spec.md §4.3.1). The teacher ships no LRU replacer of its own (only
// CLOCK); this follows the same NotifyAccess/NotifyEvict/ChooseVictim
// shape as the teacher's ClockReplacer, built on a slice in MRU-tail
// order rather than the teacher's circularList, since LRU has no ref
// bit to track.
type LRU struct {
	order []Offset
}

// NewLRU returns an empty LRU policy.
func NewLRU() *LRU {
	l := &LRU{}
	l.Init()
	return l
}

func (l *LRU) Init() {
	l.order = nil
}

func (l *LRU) NotifyAccess(o Offset) {
	l.remove(o)
	l.order = append(l.order, o)
}

func (l *LRU) NotifyEvict(o Offset) {
	l.remove(o)
}

func (l *LRU) ChooseVictim() Offset {
	assertNonEmpty(len(l.order) > 0, l.Name())
	return l.order[0]
}

func (l *LRU) Name() string {
	return "LRU"
}

func (l *LRU) remove(o Offset) {
	for i, cur := range l.order {
		if cur == o {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}
