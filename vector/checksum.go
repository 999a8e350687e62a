package vector

import (
	"encoding/binary"
	"fmt"
)

// Vector table layout constants.
const (
	// NumVectors is the number of table entries covered by the checksum
	NumVectors = 8

	// WordBytes is the size of a single table entry in bytes
	WordBytes = 4

	// TableBytes is the size of the checksummed table region in bytes
	TableBytes = NumVectors * WordBytes

	// SlotLPC17xx is the checksum slot used by the LPC17xx, LPC43xx and
	// most other LPC families. This is the usual default.
	SlotLPC17xx = 7

	// SlotLPC2000 is the checksum slot used by the LPC2000 family
	SlotLPC2000 = 5
)

// Table is a working copy of the first NumVectors entries of an interrupt
// vector table. It is a value type; mutate it freely and write it back with
// Bytes.
type Table [NumVectors]uint32

// Checksum computes the value that slot must hold for the table to pass the
// LPC boot ROM self-check: the two's complement of the sum of all entries
// whose index is not slot. Addition wraps modulo 2^32; overflow is part of
// the algorithm, not an error.
//
// The caller is responsible for slot validity (see CheckSlot). For any valid
// slot, storing the result at table[slot] makes Sum return 0.
func Checksum(t Table, slot int) uint32 {
	var sum uint32
	for i, w := range t {
		if i != slot {
			sum += w
		}
	}
	// Two's complement: the value that cancels the partial sum.
	return 0 - sum
}

// CheckSlot validates a checksum slot index. Returns an *InvalidSlotError
// unless 0 <= slot < NumVectors.
func CheckSlot(slot int) error {
	if slot < 0 || slot >= NumVectors {
		return &InvalidSlotError{Slot: slot}
	}
	return nil
}

// TableFromBytes decodes the first TableBytes bytes of b as NumVectors
// little-endian 32-bit words. The input is copied; mutating the returned
// Table does not alias b.
func TableFromBytes(b []byte) (Table, error) {
	var t Table
	if len(b) < TableBytes {
		return t, fmt.Errorf("vector table needs %d bytes, got %d", TableBytes, len(b))
	}
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(b[i*WordBytes:])
	}
	return t, nil
}

// Bytes encodes the table as TableBytes little-endian bytes, the wire form
// written back over the start of the vector-table section.
func (t Table) Bytes() []byte {
	b := make([]byte, TableBytes)
	for i, w := range t {
		binary.LittleEndian.PutUint32(b[i*WordBytes:], w)
	}
	return b
}

// Sum returns the unsigned 32-bit wraparound sum of all table entries.
// A correctly checksummed table sums to 0.
func (t Table) Sum() uint32 {
	var sum uint32
	for _, w := range t {
		sum += w
	}
	return sum
}
