// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/simtools/simtool/internal/toolchain"
	"github.com/embeddedgo/simtools/simtool/internal/util"
	"github.com/spf13/afero"
)

const Descr = "print the effective toolchain configuration"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [CONFIG]\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	wd, err := os.Getwd()
	util.FatalErr("", err)
	cfg, name, err := toolchain.Find(afero.NewOsFs(), fs.Arg(0), wd, os.Getenv)
	util.FatalErr("config", err)
	if name == "" {
		name = "defaults"
	}
	data, err := cfg.Marshal()
	util.FatalErr("", err)
	fmt.Printf("# %s\n%s", name, data)
}
