package elfio

import "fmt"

// OpenError indicates that the target file could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ParseError indicates that the file content is not a well-formed ELF
// container.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s is not a valid ELF file: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CommitError indicates that the modified container could not be written
// back to disk.
type CommitError struct {
	Path string
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("unable to write %s back: %v", e.Path, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
