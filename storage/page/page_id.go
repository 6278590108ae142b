// Package page implements the fixed-size slotted page format: a leading
// used-slot bitmap followed by SlotCount fixed-width record slots, total
// and round-tripping encode/decode. Grounded on the teacher's
// storage/page/hash_table_block_page.go (bitmap + fixed-width array
// layout) and storage/page/page.go (PageID), storage/page/rid.go (RID).
package page

// ID identifies a page by its index in the page directory. Offset in
// the data file is ID * PageSize.
type ID int32

// SlotID identifies a slot within a page.
type SlotID uint32

// RID (record identifier) locates a record by page and slot.
type RID struct {
	PageID ID
	Slot   SlotID
}
