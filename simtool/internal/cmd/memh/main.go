// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memh

import (
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/simtools/simtool/internal/memh"
	"github.com/embeddedgo/simtools/simtool/internal/util"
	"github.com/spf13/afero"
)

const Descr = "convert a raw binary (or an ELF file) to the test bench memory image"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [BIN [HEX]]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	fromELF := fs.Bool("elf", false, "read the program from an ELF file")
	pad := fs.Uint(
		"pad", 0,
		"pad `byte` used to fill gaps between ELF sections",
	)
	quiet := fs.Bool("quiet", false, "do not print the preview")
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	afs := afero.NewOsFs()
	if *fromELF {
		elf, out := util.InOutFiles(fs.Arg(0), ".elf", fs.Arg(1), ".hex")
		sections, err := util.ReadELF(elf)
		util.FatalErr("readelf", err)
		bin, err := sections.Image(byte(*pad))
		util.FatalErr(elf, err)
		lines := memh.Encode(bin)
		util.FatalErr("", memh.WriteFile(afs, out, lines))
		if !*quiet {
			util.FatalErr("", memh.Report(os.Stdout, out, lines))
		}
		return
	}
	bin, out := util.InOutFiles(fs.Arg(0), ".bin", fs.Arg(1), ".hex")
	lines, err := memh.ConvertFile(afs, bin, out)
	util.FatalErr("", err)
	if lines == nil {
		util.Warn("%s not found, memory image not generated", bin)
		return
	}
	if !*quiet {
		util.FatalErr("", memh.Report(os.Stdout, out, lines))
	}
}
