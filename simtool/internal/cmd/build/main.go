// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/simtools/simtool/internal/memh"
	"github.com/embeddedgo/simtools/simtool/internal/toolchain"
	"github.com/embeddedgo/simtools/simtool/internal/util"
	"github.com/spf13/afero"
)

const Descr = "compile the program and generate the memory image for the test bench"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [HEX]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	cfgFile := fs.String(
		"config", "",
		"configuration `file` (default: "+toolchain.ConfigName+
			" in the current or a parent directory)",
	)
	dis := fs.String("dis", "", "write the disassembly listing to `file`")
	verbose := fs.Bool("v", false, "print the toolchain commands")
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	wd, err := os.Getwd()
	util.FatalErr("", err)
	cfg, _, err := toolchain.Find(afero.NewOsFs(), *cfgFile, wd, os.Getenv)
	util.FatalErr("config", err)
	if fs.NArg() == 1 {
		cfg.Out.Hex = fs.Arg(0)
	}
	if *dis != "" {
		cfg.Out.Dis = *dis
	}
	d := toolchain.NewDriver(cfg, util.NewLogger(*verbose))
	lines, err := d.Build()
	util.FatalErr("build", err)
	if lines == nil {
		util.Warn("%s not found, memory image not generated", cfg.Out.Bin)
		return
	}
	util.FatalErr("", memh.Report(os.Stdout, cfg.Out.Hex, lines))
}
