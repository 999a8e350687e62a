package patcher

import (
	"debug/elf"
	"fmt"
)

// UnsupportedArchitectureError indicates that the ELF image does not target
// ARM. No mutation is performed.
type UnsupportedArchitectureError struct {
	Machine elf.Machine
}

func (e *UnsupportedArchitectureError) Error() string {
	return fmt.Sprintf("unsupported architecture %s: LPC vector-table checksums only exist in ARM binaries", e.Machine)
}

// SectionNotFoundError indicates that no section matches the vector-table
// shape (allocated, executable, load address 0, at least 32 bytes).
type SectionNotFoundError struct {
	Path string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("no vector-table section in %s: need an allocated, executable section at load address 0 with at least 32 bytes", e.Path)
}

// EmptySectionError indicates that the matching section has no file-backed
// data to patch.
type EmptySectionError struct {
	Section string
}

func (e *EmptySectionError) Error() string {
	return fmt.Sprintf("section %s matches the vector-table shape but has no data", e.Section)
}

// ChecksumMismatchError indicates that a verified image does not carry the
// checksum its table requires.
type ChecksumMismatchError struct {
	Section string
	Want    uint32
	Got     uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch in section %s: expected 0x%08X, found 0x%08X",
		e.Section, e.Want, e.Got)
}
