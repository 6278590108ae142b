// Package directory implements the persistent, ordered catalog of pages
// spec.md §4.2 names: PageInfo{Offset, FreeSlots} entries, one per page,
// dense by construction (page i has offset i*PageSize). Unlike the
// teacher, which derives page count purely from the data file's size
// (storage/disk/disk_manager_impl.go's NewDiskManagerImpl), heapdb
// tracks free-slot counts explicitly and persists them to a sidecar
// file in the little-endian format committed to by SPEC_FULL.md §4.
package directory

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"heapdb/internal/assert"
	"heapdb/internal/config"
	"heapdb/storage/page"
)

// PageInfo is one page's directory entry.
type PageInfo struct {
	Offset    int64
	FreeSlots int
}

// Directory is the ordered sequence of PageInfo; PageID i's offset is
// always i*PageSize (the density invariant spec.md §3 names).
type Directory struct {
	pages []PageInfo
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{}
}

// AddPage appends a new entry. The caller guarantees info.Offset ==
// len(pages)*PageSize; this is not re-validated (spec.md §4.2).
func (d *Directory) AddPage(info PageInfo) {
	d.pages = append(d.pages, info)
}

// GetPages exposes the ordered sequence for iteration. Callers must not
// mutate the returned slice in place; use UpdatePageInfo instead.
func (d *Directory) GetPages() []PageInfo {
	return d.pages
}

// PageCount returns the number of pages currently catalogued.
func (d *Directory) PageCount() int {
	return len(d.pages)
}

// UpdatePageInfo replaces the entry whose offset matches info.Offset.
// Open question #2 (spec.md §9): unlike the teacher-adjacent silent
// no-op on an unknown offset, this panics — every call site in package
// heap passes an offset it just read from the directory, so an unknown
// offset here is a programmer error, not a normal miss.
func (d *Directory) UpdatePageInfo(info PageInfo) {
	for i := range d.pages {
		if d.pages[i].Offset == info.Offset {
			d.pages[i] = info
			return
		}
	}
	assert.Assert(false, "directory: update of unknown offset %d", info.Offset)
}

// PageIDForOffset converts a byte offset to its page identifier.
func PageIDForOffset(offset int64) page.ID {
	return page.ID(offset / config.PageSize)
}

// ToBytes serializes the directory: a little-endian u32 count followed
// by that many (u64 offset, u32 free_slots) records.
func (d *Directory) ToBytes() []byte {
	buf := make([]byte, 4+len(d.pages)*12)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(d.pages)))
	off := 4
	for _, p := range d.pages {
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(p.Offset))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], uint32(p.FreeSlots))
		off += 12
	}
	return buf
}

// FromBytes decodes a directory previously produced by ToBytes. Total
// over any well-formed input; returns an error on a truncated buffer
// (spec.md §7's decoding-failure class).
func FromBytes(buf []byte) (*Directory, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("directory: truncated header (%d bytes)", len(buf))
	}
	count := binary.LittleEndian.Uint32(buf[0:4])
	want := 4 + int(count)*12
	if len(buf) < want {
		return nil, fmt.Errorf("directory: truncated body, want %d bytes, got %d", want, len(buf))
	}
	d := &Directory{pages: make([]PageInfo, count)}
	off := 4
	for i := 0; i < int(count); i++ {
		offset := int64(binary.LittleEndian.Uint64(buf[off : off+8]))
		freeSlots := int(binary.LittleEndian.Uint32(buf[off+8 : off+12]))
		d.pages[i] = PageInfo{Offset: offset, FreeSlots: freeSlots}
		off += 12
	}
	return d, nil
}

// Load reads a directory from its sidecar file, opening and closing the
// file for this call only (spec.md §5's scoped acquisition). A missing
// file is not an error: it means an empty directory.
func Load(filename string) (*Directory, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("directory: open %s: %w", filename, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("directory: read %s: %w", filename, err)
	}
	if len(buf) == 0 {
		return New(), nil
	}
	d, err := FromBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("directory: decode %s: %w", filename, err)
	}
	return d, nil
}

// Save overwrites the sidecar file in full with the directory's current
// contents, opening and closing the file for this call only.
func (d *Directory) Save(filename string) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("directory: open %s: %w", filename, err)
	}
	defer f.Close()

	if _, err := f.Write(d.ToBytes()); err != nil {
		return fmt.Errorf("directory: write %s: %w", filename, err)
	}
	return nil
}
