// Package elfio provides read-write access to ELF firmware images with a
// strict preserve-layout guarantee.
//
// # Why not debug/elf alone
//
// The standard library's debug/elf package parses ELF containers but cannot
// write them back. Package elfio layers a minimal mutation model on top of
// it: a Container keeps the underlying file open, hands out the raw byte
// buffer of each Section, and on Commit writes back only the buffers that
// were explicitly marked dirty, at their original file offsets.
//
// Nothing else is ever rewritten. ELF headers, section headers, program
// headers and every untouched section stay byte-identical, so the on-disk
// layout survives the round trip by construction. This matters for firmware
// images: re-laying-out an ARM binary can break it.
//
// # Lifecycle
//
// A Container is scoped to one operation: open, mutate, commit, close.
//
//	c, err := elfio.Open("firmware.elf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	for _, s := range c.Sections() {
//	    data, err := s.Data()
//	    // ... mutate data in place ...
//	    s.MarkDirty()
//	}
//
//	if err := c.Commit(); err != nil {
//	    log.Fatal(err)
//	}
//
// Close is safe on every exit path, including after a failed Commit.
//
// # Error Handling
//
// Open failures are reported as *OpenError (file inaccessible) or
// *ParseError (not well-formed ELF); Commit failures as *CommitError. All
// three unwrap to the underlying cause.
package elfio
