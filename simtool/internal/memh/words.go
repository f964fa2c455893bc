// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Word is a 32-bit word as seen by the test bench.
type Word struct {
	Addr  uint32
	Value uint32
}

// ReadWords decodes the memory image read from r the way the test bench
// loads it. Every address directive sets the address of the next word. Each
// group of four columns is a little-endian word: the first column is the least
// significant byte. The address is incremented by 4 after every word. Columns
// that do not form a complete group are ignored.
func ReadWords(r io.Reader) ([]Word, error) {
	var (
		words []Word
		addr  uint32
	)
	sc := bufio.NewScanner(r)
	for lineNum := 1; sc.Scan(); lineNum++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '@' {
			a, err := strconv.ParseUint(line[1:], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad address directive: %w", lineNum, err)
			}
			addr = uint32(a)
			continue
		}
		cols := strings.Fields(line)
		for i := 0; i+WordSize <= len(cols); i += WordSize {
			var w uint32
			for k, c := range cols[i : i+WordSize] {
				b, err := strconv.ParseUint(c, 16, 8)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad byte '%s'", lineNum, c)
				}
				w |= uint32(b) << (8 * k)
			}
			words = append(words, Word{addr, w})
			addr += WordSize
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
