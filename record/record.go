// Package record provides a concrete, fixed-width Record implementation
// for the demo driver and test suite. spec.md treats Record as an
// external collaborator: anything exposing Key() int32 and a total,
// fixed-width byte codec fits Page's slot contract. This is one such
// implementation, not part of the core.
package record

import (
	"encoding/binary"

	"heapdb/internal/config"
)

// Size is the exact number of bytes Encode always produces and Decode
// always consumes: a 4-byte key followed by a fixed-width payload.
const Size = config.SlotWidth

// Record is a fixed-schema record keyed by a signed 32-bit integer, with
// an opaque fixed-size payload.
type Record struct {
	key     int32
	payload [config.RecordPayloadSize]byte
}

// New builds a Record from a key and a payload. Payloads longer than
// RecordPayloadSize are truncated; shorter ones are zero-padded.
func New(key int32, payload []byte) Record {
	r := Record{key: key}
	copy(r.payload[:], payload)
	return r
}

// Key returns the record's primary key.
func (r Record) Key() int32 {
	return r.key
}

// Payload returns the record's fixed-width payload bytes.
func (r Record) Payload() []byte {
	return r.payload[:]
}

// Encode writes the record's total, fixed-width byte image.
func (r Record) Encode() [Size]byte {
	var buf [Size]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(r.key))
	copy(buf[4:], r.payload[:])
	return buf
}

// Decode is the inverse of Encode; total over any Size-byte input.
func Decode(buf [Size]byte) Record {
	var r Record
	r.key = int32(binary.LittleEndian.Uint32(buf[0:4]))
	copy(r.payload[:], buf[4:])
	return r
}
