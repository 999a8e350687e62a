// Package patcher patches the LPC boot checksum into ARM ELF firmware
// images.
//
// # Pipeline
//
// A patch run is one linear pass: open the image, verify it targets ARM,
// find the section holding the interrupt vector table, recompute the
// checksum word, write it back and commit. The vector-table section is the
// first section that is allocated, executable, loaded at address 0 and at
// least 32 bytes long — first match wins, the scan stops there, and at most
// one section is ever modified. On success exactly 4 bytes of the file
// change; every other byte, headers included, is preserved.
//
// # Usage
//
//	p := patcher.New()
//	result, err := p.Patch("firmware.elf", vector.SlotLPC17xx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("old checksum: %08x\n", result.OldChecksum)
//	fmt.Printf("new checksum: %08x\n", result.NewChecksum)
//
// Verify performs the same lookup without modifying the file:
//
//	result, err := p.Verify("firmware.elf", vector.SlotLPC17xx)
//
// # Error Handling
//
// Each failure class has its own error type: *vector.InvalidSlotError (bad
// slot index, detected before any file I/O), *elfio.OpenError,
// *elfio.ParseError, *UnsupportedArchitectureError, *SectionNotFoundError,
// *EmptySectionError, *elfio.CommitError, and *ChecksumMismatchError from
// Verify. No failure before commit mutates the file.
package patcher
