// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/simtools/simtool/internal/util"
)

const Descr = "convert an ELF file to a raw binary image (objcopy -O binary)"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [ELF [BIN]]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	inc := fs.String(
		"inc", "",
		"binary files to be included BIN1:ADDR1[,BIN2:ADDR2[,...]]",
	)
	pad := fs.Uint(
		"pad", 0,
		"pad `byte` used to fill gaps between sections",
	)
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	elf, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), ".bin")
	sections, err := util.ReadELF(elf)
	util.FatalErr("readelf", err)
	if *inc != "" {
		isec, err := util.ReadIncludes(*inc)
		util.FatalErr("readbins", err)
		sections = append(sections, isec...)
	}
	if len(sections) == 0 {
		util.Fatal("%s: no loadable sections", elf)
	}
	of, err := os.Create(out)
	util.FatalErr("", err)
	_, err = sections.Flatten(of, byte(*pad))
	util.FatalErr("flatten", err)
	util.FatalErr("", of.Close())
}
