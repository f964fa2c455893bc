// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"path/filepath"
	"strings"

	"github.com/embeddedgo/simtools/simtool/internal/memh"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
)

// Driver runs the pipeline steps one after another.
type Driver struct {
	Config *Config
	Fs     afero.Fs
	Log    log.Logger
	Exec   func(argv []string) ([]byte, error) // Run by default
}

func NewDriver(cfg *Config, logger log.Logger) *Driver {
	return &Driver{
		Config: cfg,
		Fs:     afero.NewOsFs(),
		Log:    logger,
		Exec:   Run,
	}
}

func (d *Driver) run(argv []string) ([]byte, error) {
	level.Debug(d.Log).Log("msg", "exec", "cmd", strings.Join(argv, " "))
	out, err := d.Exec(argv)
	if err != nil {
		level.Error(d.Log).Log("msg", "exec failed", "tool", argv[0], "err", err)
	}
	return out, err
}

func (d *Driver) mkdir(name string) error {
	if dir := filepath.Dir(name); dir != "." {
		return d.Fs.MkdirAll(dir, 0o755)
	}
	return nil
}

// CompileArgs returns the command line of the compile and link step.
func (d *Driver) CompileArgs() []string {
	c := d.Config
	args := []string{c.CC}
	args = append(args, strings.Fields(c.CFlags)...)
	if c.Include != "" {
		args = append(args, "-include", c.Include)
	}
	args = append(args, "-T", c.LDScript, c.Crt0)
	args = append(args, c.Sources...)
	return append(args, "-o", c.Out.ELF)
}

// StripArgs returns the command line that extracts the raw binary.
func (d *Driver) StripArgs() []string {
	c := d.Config
	return []string{c.Objcopy, "-O", "binary", c.Out.ELF, c.Out.Bin}
}

// DisassembleArgs returns the command line that prints the disassembly.
func (d *Driver) DisassembleArgs() []string {
	c := d.Config
	return []string{c.Objdump, "-d", c.Out.ELF}
}

// Compile compiles and links the program into the ELF file.
func (d *Driver) Compile() error {
	if err := d.mkdir(d.Config.Out.ELF); err != nil {
		return err
	}
	_, err := d.run(d.CompileArgs())
	return err
}

// Strip converts the ELF file to the raw binary.
func (d *Driver) Strip() error {
	if err := d.mkdir(d.Config.Out.Bin); err != nil {
		return err
	}
	_, err := d.run(d.StripArgs())
	return err
}

// Disassemble writes the disassembly listing of the ELF file to Out.Dis.
func (d *Driver) Disassemble() error {
	out, err := d.run(d.DisassembleArgs())
	if err != nil {
		return err
	}
	if err = d.mkdir(d.Config.Out.Dis); err != nil {
		return err
	}
	return afero.WriteFile(d.Fs, d.Config.Out.Dis, out, 0o644)
}

// Build runs the whole pipeline and returns the lines of the generated memory
// image. The disassembly listing is produced only if Out.Dis is set. Build
// stops at the first failing step. If the toolchain did not produce the raw
// binary Build returns nil lines and nil error.
func (d *Driver) Build() ([]string, error) {
	if err := d.Compile(); err != nil {
		return nil, err
	}
	if err := d.Strip(); err != nil {
		return nil, err
	}
	if d.Config.Out.Dis != "" {
		if err := d.Disassemble(); err != nil {
			return nil, err
		}
	}
	return memh.ConvertFile(d.Fs, d.Config.Out.Bin, d.Config.Out.Hex)
}
