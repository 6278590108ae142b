// Package disk implements the data-file side of heapdb's storage: a
// DiskManager abstraction with a file-backed implementation (scoped
// open/close per call, per spec.md §5) and an in-memory implementation
// for tests. Grounded on the teacher's storage/disk/disk_manager.go
// (interface shape) and storage/disk/disk_manager_impl.go /
// storage/disk/virtual_disk_manager_impl.go (the two implementations).
package disk

// Manager reads and writes fixed-size pages at byte offsets that are
// always multiples of config.PageSize, and exposes the counters
// spec.md §6 requires for observability.
type Manager interface {
	// ReadPage reads exactly len(buf) bytes at offset into buf.
	ReadPage(offset int64, buf []byte) error
	// WritePage writes buf at offset, extending the file if needed.
	WritePage(offset int64, buf []byte) error
	// Size returns the current size, in bytes, of the backing file.
	Size() (int64, error)
	// ReadCount and WriteCount return the number of page reads/writes
	// performed since construction.
	ReadCount() uint64
	WriteCount() uint64
}
