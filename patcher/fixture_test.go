package patcher

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/moffa90/go-lpcelf/vector"
)

// fixtureSection describes one section of a hand-built test image.
type fixtureSection struct {
	name  string
	typ   elf.SectionType
	flags elf.SectionFlag
	addr  uint32
	size  uint32 // only used for SHT_NOBITS; otherwise len(data)
	data  []byte
}

// vectorSection returns an executable section at address 0 starting with
// the given table words, padded with 0xFF to 64 bytes like real flash.
func vectorSection(name string, words vector.Table) fixtureSection {
	data := make([]byte, 64)
	for i := range data {
		data[i] = 0xFF
	}
	copy(data, words.Bytes())
	return fixtureSection{
		name:  name,
		typ:   elf.SHT_PROGBITS,
		flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR,
		addr:  0,
		data:  data,
	}
}

// buildELF32 serializes a minimal little-endian ELF32 executable with the
// given machine type and sections, plus the mandatory null section and a
// trailing .shstrtab.
func buildELF32(machine elf.Machine, secs []fixtureSection) []byte {
	const (
		ehsize  = 52
		shentsz = 40
	)

	strtab := []byte{0}
	nameOff := make([]uint32, len(secs))
	for i, s := range secs {
		nameOff[i] = uint32(len(strtab))
		strtab = append(strtab, s.name...)
		strtab = append(strtab, 0)
	}
	shstrNameOff := uint32(len(strtab))
	strtab = append(strtab, ".shstrtab"...)
	strtab = append(strtab, 0)

	var buf bytes.Buffer
	buf.Write(make([]byte, ehsize))

	pad := func() {
		for buf.Len()%4 != 0 {
			buf.WriteByte(0)
		}
	}

	type shdr struct {
		name, typ, flags, addr, off, size, align uint32
	}
	hdrs := []shdr{{}} // SHN_UNDEF

	for i, s := range secs {
		size := uint32(len(s.data))
		if s.typ == elf.SHT_NOBITS {
			size = s.size
		}
		hdrs = append(hdrs, shdr{
			name: nameOff[i], typ: uint32(s.typ), flags: uint32(s.flags),
			addr: s.addr, off: uint32(buf.Len()), size: size, align: 4,
		})
		if s.typ != elf.SHT_NOBITS {
			buf.Write(s.data)
		}
		pad()
	}

	hdrs = append(hdrs, shdr{
		name: shstrNameOff, typ: uint32(elf.SHT_STRTAB),
		off: uint32(buf.Len()), size: uint32(len(strtab)), align: 1,
	})
	buf.Write(strtab)
	pad()

	shoff := uint32(buf.Len())
	for _, h := range hdrs {
		var sh [shentsz]byte
		binary.LittleEndian.PutUint32(sh[0:], h.name)
		binary.LittleEndian.PutUint32(sh[4:], h.typ)
		binary.LittleEndian.PutUint32(sh[8:], h.flags)
		binary.LittleEndian.PutUint32(sh[12:], h.addr)
		binary.LittleEndian.PutUint32(sh[16:], h.off)
		binary.LittleEndian.PutUint32(sh[20:], h.size)
		binary.LittleEndian.PutUint32(sh[32:], h.align)
		buf.Write(sh[:])
	}

	out := buf.Bytes()
	copy(out, []byte{0x7F, 'E', 'L', 'F', 1, 1, 1}) // ELF32, little-endian, current version
	binary.LittleEndian.PutUint16(out[16:], uint16(elf.ET_EXEC))
	binary.LittleEndian.PutUint16(out[18:], uint16(machine))
	binary.LittleEndian.PutUint32(out[20:], 1) // e_version
	binary.LittleEndian.PutUint32(out[32:], shoff)
	binary.LittleEndian.PutUint16(out[40:], ehsize)
	binary.LittleEndian.PutUint16(out[46:], shentsz)
	binary.LittleEndian.PutUint16(out[48:], uint16(len(hdrs)))
	binary.LittleEndian.PutUint16(out[50:], uint16(len(hdrs)-1)) // .shstrtab is last
	return out
}

// writeFixture writes a built image to a temp file and returns its path.
func writeFixture(t *testing.T, machine elf.Machine, secs []fixtureSection) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "firmware.elf")
	if err := os.WriteFile(path, buildELF32(machine, secs), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// readSection reopens the image with debug/elf and returns the named
// section's bytes.
func readSection(t *testing.T, path, name string) []byte {
	t.Helper()
	f, err := elf.Open(path)
	if err != nil {
		t.Fatalf("reopen %s: %v", path, err)
	}
	defer f.Close()

	s := f.Section(name)
	if s == nil {
		t.Fatalf("section %s not found in %s", name, path)
	}
	data, err := s.Data()
	if err != nil {
		t.Fatalf("read section %s: %v", name, err)
	}
	return data
}
