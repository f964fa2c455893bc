// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/simtools/simtool/internal/util"
	"github.com/marcinbor85/gohex"
)

const Descr = "convert an ELF file to the Intel HEX format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [ELF [IHEX]]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	inc := fs.String(
		"inc", "",
		"binary files to be included BIN1:ADDR1[,BIN2:ADDR2[,...]]",
	)
	lineLen := fs.Uint("line", 16, "number of data `bytes` per record")
	fs.Parse(args)
	if fs.NArg() > 2 || *lineLen == 0 || *lineLen > 255 {
		fs.Usage()
		os.Exit(1)
	}
	elf, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), ".ihex")
	sections, err := util.ReadELF(elf)
	util.FatalErr("readelf", err)
	if *inc != "" {
		isec, err := util.ReadIncludes(*inc)
		util.FatalErr("readbins", err)
		sections = append(sections, isec...)
	}
	sections.SortByPaddr()
	mem := gohex.NewMemory()
	for _, s := range sections {
		if uint64(uint32(s.Paddr)) != s.Paddr {
			util.Fatal("hex: section '%s' address %#x doesn't fit in 32 bits", s.Name, s.Paddr)
		}
		util.FatalErr(s.Name, mem.AddBinary(uint32(s.Paddr), s.Data))
	}
	of, err := os.Create(out)
	util.FatalErr("", err)
	err = mem.DumpIntelHex(of, byte(*lineLen))
	util.FatalErr("dumpintelhex", err)
	util.FatalErr("", of.Close())
}
