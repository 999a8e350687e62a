package elfio

import (
	"debug/elf"
	"fmt"
)

// Section is one contiguous named region of a Container. The exported
// fields mirror the section header; the raw byte buffer is loaded lazily
// through Data.
type Section struct {
	// Name is the section name from the string table, e.g. ".text"
	Name string

	// Type is the section type (SHT_PROGBITS, SHT_NOBITS, ...)
	Type elf.SectionType

	// Flags holds the section flags (SHF_ALLOC, SHF_EXECINSTR, ...)
	Flags elf.SectionFlag

	// Addr is the virtual address the section is loaded at
	Addr uint64

	// Size is the declared section size in bytes
	Size uint64

	offset int64
	file   readerAt
	data   []byte
	dirty  bool
}

// readerAt is the slice of *os.File the section loader needs.
type readerAt interface {
	ReadAt(p []byte, off int64) (int, error)
}

// Allocated reports whether the section occupies memory at runtime.
func (s *Section) Allocated() bool {
	return s.Flags&elf.SHF_ALLOC != 0
}

// Executable reports whether the section contains executable instructions.
func (s *Section) Executable() bool {
	return s.Flags&elf.SHF_EXECINSTR != 0
}

// Data returns the section's raw byte buffer, reading it from the file on
// first call and caching it. Sections with no file-backed bytes (SHT_NOBITS,
// zero size) return nil without error.
//
// The returned slice is the container's working buffer: mutate it in place
// and call MarkDirty to have Commit write it back.
func (s *Section) Data() ([]byte, error) {
	if s.Type == elf.SHT_NOBITS || s.Size == 0 {
		return nil, nil
	}
	if s.data == nil {
		buf := make([]byte, s.Size)
		if _, err := s.file.ReadAt(buf, s.offset); err != nil {
			return nil, fmt.Errorf("read section %s: %w", s.Name, err)
		}
		s.data = buf
	}
	return s.data, nil
}

// MarkDirty flags the section's buffer for write-back on the next Commit.
// Mutations without MarkDirty are silently dropped.
func (s *Section) MarkDirty() {
	s.dirty = true
}
