package page

import (
	"heapdb/internal/assert"
	"heapdb/internal/config"
)

// Page is a fixed-size (config.PageSize bytes) slotted container of
// config.SlotCount record slots. The on-disk image is self-describing:
// a leading used-slot bitmap followed by the slots' raw record bytes.
// Decoding is total and round-trips the used-slot set and record
// contents; bytes belonging to unused slots have no defined value.
type Page struct {
	used [config.SlotCount]bool
	data [config.SlotCount][config.SlotWidth]byte
}

// New returns an empty page: no slot used.
func New() *Page {
	return &Page{}
}

// IsSlotUsed reports whether slot i currently holds a record.
func (p *Page) IsSlotUsed(i SlotID) bool {
	return p.used[i]
}

// FreeSlotCount returns the number of currently-unused slots.
func (p *Page) FreeSlotCount() int {
	n := 0
	for _, u := range p.used {
		if !u {
			n++
		}
	}
	return n
}

// FirstFreeSlot returns the lowest-indexed free slot and true, or
// (0, false) if the page is full.
func (p *Page) FirstFreeSlot() (SlotID, bool) {
	for i, u := range p.used {
		if !u {
			return SlotID(i), true
		}
	}
	return 0, false
}

// GetRecordBytes returns the raw record bytes stored at slot i. Reading
// an unused slot is a programmer error (spec.md §4.1).
func (p *Page) GetRecordBytes(i SlotID) [config.SlotWidth]byte {
	assert.Assert(p.used[i], "page: read of unused slot %d", i)
	return p.data[i]
}

// InsertRecordBytes stores rec at slot i and marks it used. Inserting
// into an already-used slot is a programmer error (spec.md §4.1).
func (p *Page) InsertRecordBytes(i SlotID, rec [config.SlotWidth]byte) {
	assert.Assert(!p.used[i], "page: insert into used slot %d", i)
	p.data[i] = rec
	p.used[i] = true
}

// DeleteRecord clears slot i and marks it free. Deleting an already-free
// slot is a programmer error.
func (p *Page) DeleteRecord(i SlotID) {
	assert.Assert(p.used[i], "page: delete of unused slot %d", i)
	p.used[i] = false
	p.data[i] = [config.SlotWidth]byte{}
}

// ToBytes encodes the page into its exact PageSize-byte on-disk image:
// a leading bitmap (one bit per slot, LSB-first within each byte)
// followed by each slot's record bytes in order.
func (p *Page) ToBytes() [config.PageSize]byte {
	var out [config.PageSize]byte
	for i := 0; i < config.SlotCount; i++ {
		if p.used[i] {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	offset := config.BitmapBytes
	for i := 0; i < config.SlotCount; i++ {
		copy(out[offset:offset+config.SlotWidth], p.data[i][:])
		offset += config.SlotWidth
	}
	return out
}

// FromBytes decodes a PageSize-byte on-disk image into a Page. Total:
// every possible input produces a Page, and FromBytes(p.ToBytes()) has
// the same used-slot set and record contents as p.
func FromBytes(buf [config.PageSize]byte) *Page {
	p := New()
	for i := 0; i < config.SlotCount; i++ {
		p.used[i] = (buf[i/8]>>(uint(i)%8))&1 == 1
	}
	offset := config.BitmapBytes
	for i := 0; i < config.SlotCount; i++ {
		copy(p.data[i][:], buf[offset:offset+config.SlotWidth])
		offset += config.SlotWidth
	}
	return p
}
