package elfio

import (
	"debug/elf"
	"errors"
	"os"
)

// Container is an open ELF image. It owns the underlying file for the
// duration of one open-mutate-commit-close cycle and must not be shared
// between goroutines.
type Container struct {
	path     string
	file     *os.File
	hdr      elf.FileHeader
	sections []*Section
	writable bool
	closed   bool
}

// Open opens the ELF image at path for read-write access.
// Returns an *OpenError if the file cannot be opened and a *ParseError if
// its content is not a well-formed ELF container.
func Open(path string) (*Container, error) {
	return open(path, true)
}

// OpenRead opens the ELF image at path read-only. Commit on the resulting
// container fails; everything else behaves as with Open.
func OpenRead(path string) (*Container, error) {
	return open(path, false)
}

func open(path string, writable bool) (*Container, error) {
	mode := os.O_RDONLY
	if writable {
		mode = os.O_RDWR
	}

	f, err := os.OpenFile(path, mode, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	ef, err := elf.NewFile(f)
	if err != nil {
		_ = f.Close()
		return nil, &ParseError{Path: path, Err: err}
	}

	c := &Container{
		path:     path,
		file:     f,
		hdr:      ef.FileHeader,
		writable: writable,
	}
	for _, s := range ef.Sections {
		c.sections = append(c.sections, &Section{
			Name:   s.Name,
			Type:   s.Type,
			Flags:  s.Flags,
			Addr:   s.Addr,
			Size:   s.Size,
			offset: int64(s.Offset),
			file:   f,
		})
	}
	return c, nil
}

// Path returns the file path the container was opened from.
func (c *Container) Path() string {
	return c.path
}

// Machine returns the target machine type from the ELF header.
func (c *Container) Machine() elf.Machine {
	return c.hdr.Machine
}

// Sections returns the container's sections in section-header order,
// including the leading null section. The slice is owned by the container.
func (c *Container) Sections() []*Section {
	return c.sections
}

// Commit writes every dirty section buffer back to the file at its original
// offset and clears the dirty flags. Sections that were never marked dirty
// are not touched, and no header is ever rewritten.
//
// A failed write can leave the file partially updated; the write is a single
// WriteAt per dirty section, so the window is as small as the dirty region
// itself. Returns a *CommitError on failure.
func (c *Container) Commit() error {
	if !c.writable {
		return &CommitError{Path: c.path, Err: errors.New("container is opened read-only")}
	}
	if c.closed {
		return &CommitError{Path: c.path, Err: errors.New("container is closed")}
	}

	for _, s := range c.sections {
		if !s.dirty || s.data == nil {
			continue
		}
		if _, err := c.file.WriteAt(s.data, s.offset); err != nil {
			return &CommitError{Path: c.path, Err: err}
		}
		s.dirty = false
	}
	return nil
}

// Close releases the underlying file. It is safe to call on every exit
// path; calling it more than once is a no-op.
func (c *Container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.file.Close()
}
