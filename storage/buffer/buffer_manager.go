package buffer

import (
	"fmt"

	"heapdb/internal/assert"
	"heapdb/internal/config"
	"heapdb/storage/disk"
	"heapdb/storage/page"
)

// frame is a buffer-pool cell: a loaded Page plus its offset and dirty
// bit (spec.md §3's PageFrame).
type frame struct {
	offset Offset
	page   *page.Page
	dirty  bool
}

// Manager is the fixed-capacity, offset-keyed page cache spec.md §4.4
// names. It is the sole writer of data pages; the HeapFile that owns it
// is the sole writer of the directory file (spec.md §5). There is no
// pin count: operations are single-threaded and never retain a *Page
// across a subsequent call into Manager on the same instance, so any
// non-requested frame is free to be evicted (spec.md §5). Grounded on
// the teacher's BufferPoolManager (storage/buffer/buffer_pool_manager.go),
// adapted from its free-list-plus-pin-count design to the pin-free
// hit/miss accounting contract spec.md §4.4 specifies.
type Manager struct {
	disk     disk.Manager
	policy   ReplacementPolicy
	poolSize int
	table    map[Offset]*frame

	hits          uint64
	misses        uint64
	diskReadCount uint64
	diskWriteCnt  uint64
}

// New returns a Manager backed by d, caching up to poolSize pages
// through policy.
func New(d disk.Manager, poolSize int, policy ReplacementPolicy) *Manager {
	policy.Init()
	return &Manager{
		disk:     d,
		policy:   policy,
		poolSize: poolSize,
		table:    make(map[Offset]*frame, poolSize),
	}
}

// GetPage returns the Page resident at offset, loading it from disk on
// a miss. The returned pointer aliases the Manager's own frame and is
// only valid until the next call into Manager; callers that mutate it
// must call MarkDirty before making another call on this Manager
// (spec.md §9's "owned-by-instance mutable state").
func (m *Manager) GetPage(offset Offset) (*page.Page, error) {
	if f, ok := m.table[offset]; ok {
		m.hits++
		m.policy.NotifyAccess(offset)
		return f.page, nil
	}
	m.misses++

	if len(m.table) >= m.poolSize {
		if err := m.evictOne(); err != nil {
			return nil, err
		}
	}

	var buf [config.PageSize]byte
	if err := m.disk.ReadPage(int64(offset), buf[:]); err != nil {
		return nil, fmt.Errorf("buffer: read page at offset %d: %w", offset, err)
	}
	m.diskReadCount++

	p := page.FromBytes(buf)
	m.table[offset] = &frame{offset: offset, page: p, dirty: false}
	m.policy.NotifyAccess(offset)
	return p, nil
}

// WritePageDirect writes buf to the underlying disk.Manager at offset,
// bypassing the page table entirely. HeapFile uses this for exactly one
// case (spec.md §5): writing a brand-new page's zero-filled image
// synchronously when it allocates a page, before that page has ever
// been fetched through the pool.
func (m *Manager) WritePageDirect(offset int64, buf [config.PageSize]byte) error {
	if err := m.disk.WritePage(offset, buf[:]); err != nil {
		return fmt.Errorf("buffer: direct write at offset %d: %w", offset, err)
	}
	m.diskWriteCnt++
	return nil
}

// evictOne chooses a victim, writes it back if dirty, and removes it
// from the table, per spec.md §4.4's ordering: choose_victim -> remove
// from table -> write-back if dirty -> notify_evict.
func (m *Manager) evictOne() error {
	victim := m.policy.ChooseVictim()
	f, ok := m.table[victim]
	if !ok {
		assert.DumpInvariant("buffer: evictOne")
	}
	assert.Assert(ok, "buffer: policy chose victim offset %d not held by the pool", victim)

	delete(m.table, victim)
	if f.dirty {
		buf := f.page.ToBytes()
		if err := m.disk.WritePage(int64(f.offset), buf[:]); err != nil {
			return fmt.Errorf("buffer: write back offset %d: %w", f.offset, err)
		}
		m.diskWriteCnt++
	}
	m.policy.NotifyEvict(victim)
	return nil
}

// MarkDirty sets the dirty flag on the resident frame at offset. Open
// question #3 (spec.md §9): unlike the teacher-adjacent silent no-op on
// a non-resident offset, this panics — HeapFile never marks dirty an
// offset it has not just fetched.
func (m *Manager) MarkDirty(offset Offset) {
	f, ok := m.table[offset]
	assert.Assert(ok, "buffer: MarkDirty on non-resident offset %d", offset)
	f.dirty = true
}

// FlushAll writes back every dirty resident frame and clears its dirty
// bit, without evicting anything.
func (m *Manager) FlushAll() error {
	for _, f := range m.table {
		if !f.dirty {
			continue
		}
		buf := f.page.ToBytes()
		if err := m.disk.WritePage(int64(f.offset), buf[:]); err != nil {
			return fmt.Errorf("buffer: flush offset %d: %w", f.offset, err)
		}
		m.diskWriteCnt++
		f.dirty = false
	}
	return nil
}

// CurrentPoolSize returns the number of frames currently resident.
func (m *Manager) CurrentPoolSize() int {
	return len(m.table)
}

// HitCount, MissCount, DiskReadCount and DiskWriteCount return the
// respective lifetime counters since the last Reset*.
func (m *Manager) HitCount() uint64       { return m.hits }
func (m *Manager) MissCount() uint64      { return m.misses }
func (m *Manager) DiskReadCount() uint64  { return m.diskReadCount }
func (m *Manager) DiskWriteCount() uint64 { return m.diskWriteCnt }

// HitRatio returns hits/(hits+misses), or 0 if neither has occurred.
func (m *Manager) HitRatio() float64 {
	total := m.hits + m.misses
	if total == 0 {
		return 0
	}
	return float64(m.hits) / float64(total)
}

// ResetCounters zeroes the hit/miss/disk-read/disk-write counters
// without disturbing pool contents.
func (m *Manager) ResetCounters() {
	m.hits = 0
	m.misses = 0
	m.diskReadCount = 0
	m.diskWriteCnt = 0
}

// ReplacementPolicyName returns the name of the policy in use.
func (m *Manager) ReplacementPolicyName() string {
	return m.policy.Name()
}
