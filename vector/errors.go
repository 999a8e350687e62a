package vector

import "fmt"

// InvalidSlotError indicates a checksum slot index outside [0, NumVectors).
// Returned by CheckSlot before any file is touched.
type InvalidSlotError struct {
	Slot int
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("checksum slot %d is out of range: valid slots are 0-%d (7 for LPC17xx/LPC43xx, 5 for LPC2000)",
		e.Slot, NumVectors-1)
}
