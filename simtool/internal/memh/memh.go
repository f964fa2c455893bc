// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memh encodes a flat binary image as the address-tagged hexadecimal
// memory image loaded by the CPU test bench.
//
// The image starts with the @00000000 address directive followed by one row
// per 32-bit word. Every row contains the four bytes of the word as two-digit
// lowercase hexadecimal numbers in the order they appear in the binary. The
// test bench reads the first column as the least significant byte, so no byte
// swapping is done here. Trailing bytes that do not form a complete word are
// dropped.
package memh

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

const (
	WordSize   = 4 // bytes per row
	BaseAddr   = 0 // load address written in the address directive
	PreviewLen = 5 // lines returned by Preview
)

const hexDigits = "0123456789abcdef"

// AddrDirective returns the address directive line for addr.
func AddrDirective(addr uint32) string {
	return fmt.Sprintf("@%08x", addr)
}

// Encode returns the lines of the memory image of bin.
func Encode(bin []byte) []string {
	n := len(bin) / WordSize
	lines := make([]string, 1, 1+n)
	lines[0] = AddrDirective(BaseAddr)
	row := make([]byte, WordSize*3-1)
	for i := 0; i < n; i++ {
		for k, b := range bin[i*WordSize : (i+1)*WordSize] {
			if k != 0 {
				row[k*3-1] = ' '
			}
			row[k*3] = hexDigits[b>>4]
			row[k*3+1] = hexDigits[b&15]
		}
		lines = append(lines, string(row))
	}
	return lines
}

// Join joins lines using '\n' without terminating the last one.
func Join(lines []string) []byte {
	return []byte(strings.Join(lines, "\n"))
}

// WriteFile writes lines to the named file, creating the missing parent
// directories. An existing file is truncated.
func WriteFile(afs afero.Fs, name string, lines []string) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := afs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(afs, name, Join(lines), 0o644)
}

// ConvertFile encodes the binary image stored in binName and writes the result
// to outName. It returns the written lines. If binName does not exist
// ConvertFile writes nothing and returns nil lines and nil error.
func ConvertFile(afs afero.Fs, binName, outName string) ([]string, error) {
	bin, err := afero.ReadFile(afs, binName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	lines := Encode(bin)
	if err := WriteFile(afs, outName, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Preview returns the address directive and up to four first rows.
func Preview(lines []string) []string {
	return lines[:min(len(lines), PreviewLen)]
}

// Report writes the summary of the generated memory image and its preview
// to w.
func Report(w io.Writer, name string, lines []string) error {
	words := len(lines) - 1
	_, err := fmt.Fprintf(
		w, "Generated memory image: %s (%d words, %s)\nPreview:\n",
		name, words, humanize.Bytes(uint64(words*WordSize)),
	)
	if err != nil {
		return err
	}
	for _, line := range Preview(lines) {
		if _, err = fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
