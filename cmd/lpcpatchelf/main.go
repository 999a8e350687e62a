// Command lpcpatchelf updates the LPC ARM processor specific checksum in
// ELF firmware binaries.
//
// The NXP LPC boot ROM only starts an application whose first 8 interrupt
// vectors sum to zero; lpcpatchelf computes the required checksum word and
// patches it into the vector table in place, leaving every other byte of
// the file untouched.
//
// Usage:
//
//	lpcpatchelf -f firmware.elf [-c slot] [-n] [-v]
//
// The checksum slot defaults to 7 (LPC17xx, LPC43xx and most other LPC
// families); the LPC2000 family uses slot 5. The default can also be set
// through the LPCPATCHELF_SLOT environment variable.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/moffa90/go-lpcelf/patcher"
	"github.com/moffa90/go-lpcelf/vector"
	"github.com/xyproto/env/v2"
)

const versionString = "lpcpatchelf 1.0.0"

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: lpcpatchelf -f file.elf [-c ChecksumSlot] [-n] [-v]\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Updates the LPC ARM processor specific checksum in ELF binaries.\n")
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "The -c option tells which interrupt-table slot receives the checksum.\n")
	fmt.Fprintf(out, "Default is %d for LPC17xx, LPC43xx and most other LPC microcontrollers;\n", vector.SlotLPC17xx)
	fmt.Fprintf(out, "the LPC2000 family uses slot %d.\n", vector.SlotLPC2000)
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Environment:\n")
	fmt.Fprintf(out, "  LPCPATCHELF_SLOT     default checksum slot (overridden by -c)\n")
	fmt.Fprintf(out, "  LPCPATCHELF_VERBOSE  enable verbose logging (as if -v was given)\n")
}

// stderrLogger adapts the standard log package to patcher.Logger.
type stderrLogger struct {
	*log.Logger
}

func (l stderrLogger) Debug(msg string, kv ...interface{}) {
	l.Println(append([]interface{}{"debug:", msg}, kv...)...)
}
func (l stderrLogger) Info(msg string, kv ...interface{}) {
	l.Println(append([]interface{}{"info:", msg}, kv...)...)
}
func (l stderrLogger) Error(msg string, kv ...interface{}) {
	l.Println(append([]interface{}{"error:", msg}, kv...)...)
}

func main() {
	var (
		file       = flag.String("f", "", "ELF firmware image to patch")
		slot       = flag.Int("c", env.Int("LPCPATCHELF_SLOT", vector.SlotLPC17xx), "interrupt-table slot holding the checksum")
		verifyOnly = flag.Bool("n", false, "verify the checksum without modifying the file")
		verbose    = flag.Bool("v", env.Bool("LPCPATCHELF_VERBOSE"), "verbose logging to stderr")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println(versionString)
		return
	}
	if *file == "" || flag.NArg() > 0 {
		usage()
		os.Exit(2)
	}
	if err := vector.CheckSlot(*slot); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var opts []patcher.Option
	if *verbose {
		opts = append(opts, patcher.WithLogger(stderrLogger{log.New(os.Stderr, "", 0)}))
	}
	p := patcher.New(opts...)

	if *verifyOnly {
		result, err := p.Verify(*file, *slot)
		if err != nil {
			var mismatch *patcher.ChecksumMismatchError
			if errors.As(err, &mismatch) {
				fmt.Printf("stored checksum:   %08x\n", result.OldChecksum)
				fmt.Printf("required checksum: %08x\n", result.NewChecksum)
			}
			fail(err)
		}
		fmt.Printf("checksum %08x in section %s is valid\n", result.OldChecksum, result.Section)
		return
	}

	result, err := p.Patch(*file, *slot)
	if err != nil {
		fail(err)
	}

	fmt.Printf("old checksum: %08x\n", result.OldChecksum)
	fmt.Printf("new checksum: %08x\n", result.NewChecksum)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)

	// The usual cause is feeding the tool something that is not an LPC
	// firmware image; say so instead of leaving the user guessing.
	var nf *patcher.SectionNotFoundError
	if errors.As(err, &nf) {
		fmt.Fprintln(os.Stderr, "probably this is not an ELF file the tool understands")
	}
	os.Exit(1)
}
