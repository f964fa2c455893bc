// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

type Section struct {
	Name  string
	Vaddr uint64 // address in the memory during execution
	Paddr uint64 // load address of the section in the memory image
	Data  []byte // section data
}

type Sections []*Section

// ReadELF reads the loadable sections of the program and returns them as
// a slice. The order of the returned sections is unspecified.
func ReadELF(name string) (Sections, error) {
	f, err := elf.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ss := make(Sections, 0, 8)
	for i, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			if k := i + 1; k < len(f.Sections) && len(ss) != 0 {
				ns := f.Sections[k]
				if ns.Type == elf.SHT_PROGBITS && ns.Flags&elf.SHF_ALLOC != 0 {
					Warn("readelf: skipping section '%s' (%d bytes)", s.Name, s.Size)
				}
			}
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		paddr := s.Addr
		for _, p := range f.Progs {
			if p.Type != elf.PT_LOAD {
				continue
			}
			if p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		ss = append(ss, &Section{s.Name, s.Addr, paddr, data})
	}
	return ss, nil
}

// ReadIncludes reads binary files acording to the BIN1:ADDR1,BIN2:ADDR2
// description and returns them as a slice of sections.
func ReadIncludes(descr string) (Sections, error) {
	bins := strings.Split(descr, ",")
	ss := make(Sections, len(bins))
	for k, ba := range bins {
		i := strings.LastIndexByte(ba, ':')
		if i <= 0 {
			return nil, fmt.Errorf("bad '%s' in the -inc option", ba)
		}
		bin, addr := ba[:i], ba[i+1:]
		s := &Section{Name: bin}
		var err error
		s.Paddr, err = strconv.ParseUint(addr, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("bad address in '%s': %s", addr, err)
		}
		s.Vaddr = s.Paddr
		s.Data, err = os.ReadFile(bin)
		if err != nil {
			return nil, err
		}
		ss[k] = s
	}
	return ss, nil
}

// SortByPaddr sorts sections according to the Paddr field.
func (ss Sections) SortByPaddr() {
	sort.Slice(
		ss,
		func(i, j int) bool {
			return ss[i].Paddr < ss[j].Paddr
		},
	)
}

// Size returns the number of bytes occupied by the flattened image.
func (ss Sections) Size() int {
	if len(ss) == 0 {
		return 0
	}
	lo, hi := ss[0].Paddr, ss[0].Paddr
	for _, s := range ss {
		lo = min(lo, s.Paddr)
		hi = max(hi, s.Paddr+uint64(len(s.Data)))
	}
	return int(hi - lo)
}

// Flatten flattens sections by writting their data to the provided io.Writer
// according to the Paddr field (before writting the sections are sorted using
// SortPaddr method). The gaps between sections are filled using the pad byte.
func (ss Sections) Flatten(w io.Writer, pad byte) (n int, err error) {
	if len(ss) == 0 {
		return
	}
	ss.SortByPaddr()
	pa := ss[0].Paddr
	var padCache []byte
	for _, s := range ss {
		if s.Paddr < pa {
			err = fmt.Errorf("flatten: section '%s' overlaps the previous one", s.Name)
			return
		}
		if gap := int(s.Paddr - pa); gap != 0 {
			var m int
			m, err = w.Write(PadBytes(&padCache, gap, pad))
			n += m
			pa += uint64(m)
			if err != nil {
				return
			}
		}
		var m int
		m, err = w.Write(s.Data)
		n += m
		pa += uint64(m)
		if err != nil {
			return
		}
	}
	return
}

// Image returns the flattened sections as a single contiguous byte slice.
func (ss Sections) Image(pad byte) ([]byte, error) {
	if len(ss) == 0 {
		return nil, errors.New("image: no loadable sections")
	}
	buf := bytes.NewBuffer(make([]byte, 0, ss.Size()))
	if _, err := ss.Flatten(buf, pad); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PadBytes returns the slice containing n byte equal b.
func PadBytes(cache *[]byte, n int, b byte) []byte {
	if len(*cache) < n {
		*cache = make([]byte, n)
		for i := range *cache {
			(*cache)[i] = b
		}
	}
	return (*cache)[:n]
}
