package patcher

import (
	"debug/elf"
	"fmt"

	"github.com/moffa90/go-lpcelf/elfio"
	"github.com/moffa90/go-lpcelf/vector"
)

// Patcher patches and verifies LPC vector-table checksums in ARM ELF
// firmware images. A zero-configured Patcher from New is ready to use; each
// call operates on one file and holds no state between calls.
type Patcher struct {
	config Config
}

// New creates a Patcher with the given options.
//
// Example:
//
//	p := patcher.New(patcher.WithLogger(myLogger))
func New(opts ...Option) *Patcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Patcher{config: cfg}
}

// Result describes the outcome of a Patch or Verify call.
type Result struct {
	// Section is the name of the vector-table section that was selected
	Section string

	// Addr is the section's virtual load address (always 0 by selection)
	Addr uint64

	// Slot is the vector-table slot holding the checksum
	Slot int

	// OldChecksum is the word found at the slot before patching
	OldChecksum uint32

	// NewChecksum is the computed checksum. After a successful Patch this
	// is what the slot holds on disk.
	NewChecksum uint32
}

// Unchanged reports whether the image already carried the correct checksum,
// i.e. the patch was a byte-identical rewrite.
func (r *Result) Unchanged() bool {
	return r.OldChecksum == r.NewChecksum
}

// Patch rewrites the checksum slot of the vector table in the ELF image at
// path so that the first 8 table words sum to zero modulo 2^32, as the LPC
// boot ROM requires. The slot index is validated before any file I/O; no
// failure prior to the final commit modifies the file.
//
// Example:
//
//	result, err := p.Patch("firmware.elf", vector.SlotLPC17xx)
func (p *Patcher) Patch(path string, slot int) (*Result, error) {
	if err := vector.CheckSlot(slot); err != nil {
		return nil, err
	}

	c, err := elfio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	section, data, err := p.locateVectorTable(c)
	if err != nil {
		p.logError("vector-table lookup failed", "file", path, "err", err)
		return nil, err
	}

	// Work on a copy of the table, then write the whole block back.
	table, err := vector.TableFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", section.Name, err)
	}

	old := table[slot]
	table[slot] = vector.Checksum(table, slot)
	copy(data[:vector.TableBytes], table.Bytes())
	section.MarkDirty()

	if err := c.Commit(); err != nil {
		p.logError("checksum write-back failed", "file", path, "err", err)
		return nil, err
	}

	p.logInfo("patched vector-table checksum",
		"file", path,
		"section", section.Name,
		"slot", slot,
		"old", fmt.Sprintf("0x%08X", old),
		"new", fmt.Sprintf("0x%08X", table[slot]),
	)

	return &Result{
		Section:     section.Name,
		Addr:        section.Addr,
		Slot:        slot,
		OldChecksum: old,
		NewChecksum: table[slot],
	}, nil
}

// Verify checks whether the image at path already carries a correct
// checksum at the given slot. The file is opened read-only and never
// modified. A wrong stored checksum is reported as a
// *ChecksumMismatchError alongside a Result describing what was found.
//
// Example:
//
//	result, err := p.Verify("firmware.elf", vector.SlotLPC17xx)
//	if err == nil {
//	    fmt.Println("checksum is valid")
//	}
func (p *Patcher) Verify(path string, slot int) (*Result, error) {
	if err := vector.CheckSlot(slot); err != nil {
		return nil, err
	}

	c, err := elfio.OpenRead(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	section, data, err := p.locateVectorTable(c)
	if err != nil {
		p.logError("vector-table lookup failed", "file", path, "err", err)
		return nil, err
	}

	table, err := vector.TableFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", section.Name, err)
	}

	result := &Result{
		Section:     section.Name,
		Addr:        section.Addr,
		Slot:        slot,
		OldChecksum: table[slot],
		NewChecksum: vector.Checksum(table, slot),
	}

	if !result.Unchanged() {
		err := &ChecksumMismatchError{
			Section: section.Name,
			Want:    result.NewChecksum,
			Got:     result.OldChecksum,
		}
		p.logError("checksum verification failed", "file", path, "err", err)
		return result, err
	}

	p.logDebug("vector-table checksum is valid",
		"file", path,
		"section", section.Name,
		"checksum", fmt.Sprintf("0x%08X", result.OldChecksum),
	)

	return result, nil
}

// locateVectorTable scans the container's sections in order and returns the
// first one matching the vector-table shape: allocated, executable, loaded
// at address 0 and large enough to hold the 8-word table. The scan stops at
// the first match even if later sections would also qualify; typical LPC
// firmware has exactly one such section and the first is the one the boot
// ROM sees.
func (p *Patcher) locateVectorTable(c *elfio.Container) (*elfio.Section, []byte, error) {
	if c.Machine() != elf.EM_ARM {
		return nil, nil, &UnsupportedArchitectureError{Machine: c.Machine()}
	}

	for _, s := range c.Sections() {
		if !s.Allocated() || !s.Executable() {
			continue
		}
		if s.Addr != 0 || s.Size < vector.TableBytes {
			continue
		}

		data, err := s.Data()
		if err != nil {
			return nil, nil, err
		}
		if len(data) == 0 {
			return nil, nil, &EmptySectionError{Section: s.Name}
		}

		p.logDebug("vector-table section located",
			"section", s.Name,
			"size", s.Size,
		)
		return s, data, nil
	}

	return nil, nil, &SectionNotFoundError{Path: c.Path()}
}

// logDebug logs a debug message if a logger is configured.
func (p *Patcher) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Patcher) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Patcher) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
