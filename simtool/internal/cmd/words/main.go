// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package words

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/embeddedgo/simtools/simtool/internal/memh"
	"github.com/embeddedgo/simtools/simtool/internal/util"
)

const Descr = "print the words of a memory image as loaded by the test bench"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [HEX]\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	name, _ := util.InOutFiles(fs.Arg(0), ".hex", "", "")
	f, err := os.Open(name)
	util.FatalErr("", err)
	defer f.Close()
	words, err := memh.ReadWords(f)
	util.FatalErr(name, err)
	w := bufio.NewWriter(os.Stdout)
	for _, wd := range words {
		fmt.Fprintf(w, "%08x: %08x\n", wd.Addr, wd.Value)
	}
	util.FatalErr("", w.Flush())
}
