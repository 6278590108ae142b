// Package config gathers the compile-time constants a build of heapdb is
// fixed to, the way the teacher's common/config.go gathers PageSize,
// BucketSize and friends in one place.
package config

// PageSize is the fixed size, in bytes, of every page on disk.
const PageSize = 4096

// SlotCount is the fixed number of record slots per page.
const SlotCount = 32

// RecordPayloadSize is the fixed payload width, in bytes, of the demo
// Record type in package record. It is sized so that SlotCount records
// plus their used-bit bitmap fit in PageSize bytes.
const RecordPayloadSize = 100

// SlotWidth is the fixed number of bytes Page reserves for each slot's
// record bytes: a 4-byte key plus the record payload. Package record's
// Encode/Decode must produce/consume exactly this many bytes.
const SlotWidth = 4 + RecordPayloadSize

// BitmapBytes is the number of bytes Page reserves for its leading
// used-slot bitmap, one bit per slot.
const BitmapBytes = (SlotCount + 7) / 8

