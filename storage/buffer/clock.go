package buffer

// clockEntry is one slot in Clock's circular array: an offset and its
// reference bit. Grounded on the teacher's circularList node, adapted
// from a linked-list-of-nodes to a plain slice since Clock (unlike the
// teacher's pin-based ClockReplacer) only ever needs index-based
// iteration, not pointer-stable node removal from arbitrary positions.
type clockEntry struct {
	offset Offset
	ref    bool
}

// Clock approximates LRU with a circular array of (offset, ref bit)
// entries and a hand, per spec.md §4.3.3. Open question #1 (spec.md
// §9): the teacher's ClockReplacer.Victim leaves clockHand pointing at
// a node captured before removal, which can run off the end of the
// list once the removed entry was last; Clock instead always clamps
// hand modulo the current length immediately after any removal.
type Clock struct {
	capacity int
	entries  []clockEntry
	hand     int
}

// NewClock returns an empty CLOCK policy with room for capacity
// resident offsets.
func NewClock(capacity int) *Clock {
	c := &Clock{capacity: capacity}
	c.Init()
	return c
}

func (c *Clock) Init() {
	c.entries = nil
	c.hand = 0
}

// NotifyAccess sets the ref bit if o is already present; otherwise, if
// room remains, appends it with the ref bit set. The BufferManager
// guarantees room by evicting before installing a new page, so the
// "no room" branch is inert in normal operation (spec.md §4.3.3).
func (c *Clock) NotifyAccess(o Offset) {
	for i := range c.entries {
		if c.entries[i].offset == o {
			c.entries[i].ref = true
			return
		}
	}
	if len(c.entries) < c.capacity {
		c.entries = append(c.entries, clockEntry{offset: o, ref: true})
	}
}

// NotifyEvict removes the entry for o, if present, clamping hand back
// into range.
func (c *Clock) NotifyEvict(o Offset) {
	for i := range c.entries {
		if c.entries[i].offset == o {
			c.removeAt(i)
			return
		}
	}
}

// ChooseVictim sweeps from hand, clearing ref bits it finds set and
// removing the first entry it finds with ref false. Terminates within
// two full passes since every entry's ref bit is cleared at most once
// per pass before it can be chosen.
func (c *Clock) ChooseVictim() Offset {
	assertNonEmpty(len(c.entries) > 0, c.Name())

	for {
		if c.entries[c.hand].ref {
			c.entries[c.hand].ref = false
			c.hand = (c.hand + 1) % len(c.entries)
			continue
		}
		victim := c.entries[c.hand].offset
		c.removeAt(c.hand)
		return victim
	}
}

func (c *Clock) Name() string {
	return "CLOCK"
}

// removeAt deletes entries[i] and clamps hand into the new, shorter
// range. hand stays pointing at the same index — now the entry that
// was at i+1 — matching spec.md §4.3.3's "hand stays at the same
// index, now pointing at the next entry".
func (c *Clock) removeAt(i int) {
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	if len(c.entries) == 0 {
		c.hand = 0
		return
	}
	if c.hand >= len(c.entries) {
		c.hand %= len(c.entries)
	}
}
