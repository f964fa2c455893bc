// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/drone/envsubst"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ConfigName is the name of the configuration file searched by FindConfig.
const ConfigName = "simtool.yaml"

// Outputs contains the names of the files produced by the pipeline.
type Outputs struct {
	ELF string `yaml:"elf"`
	Bin string `yaml:"bin"`
	Hex string `yaml:"hex"`
	Dis string `yaml:"dis,omitempty"` // disassembly listing, optional
}

// Config describes the cross-toolchain and the files it works on.
type Config struct {
	CC       string   `yaml:"cc"`
	Objcopy  string   `yaml:"objcopy"`
	Objdump  string   `yaml:"objdump"`
	CFlags   string   `yaml:"cflags"`
	LDScript string   `yaml:"ldscript"`
	Crt0     string   `yaml:"crt0"`
	Include  string   `yaml:"include,omitempty"`
	Sources  []string `yaml:"sources"`
	Out      Outputs  `yaml:"out"`
}

func Default() *Config {
	return &Config{
		CC:       "riscv64-unknown-elf-gcc",
		Objcopy:  "riscv64-unknown-elf-objcopy",
		Objdump:  "riscv64-unknown-elf-objdump",
		CFlags:   "-march=rv32i -mabi=ilp32 -static -nostdlib -O2",
		LDScript: "linker.ld",
		Crt0:     "crt0.s",
		Sources:  []string{"program.c"},
		Out: Outputs{
			ELF: "program.elf",
			Bin: "program.bin",
			Hex: "program.hex",
		},
	}
}

// Parse decodes the YAML configuration. Missing keys keep their default
// values. ${VAR} references are replaced by the values of the environment
// variables returned by getenv.
func Parse(data []byte, getenv func(string) string) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.expand(getenv); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration from the named file. Relative file names in
// the configuration are resolved against the directory of the file.
func Load(afs afero.Fs, name string, getenv func(string) string) (*Config, error) {
	data, err := afero.ReadFile(afs, name)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data, getenv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.resolve(filepath.Dir(name))
	return c, nil
}

// FindConfig looks for the ConfigName file in dir and its parents. The search
// stops at the first directory that contains .git or go.mod. FindConfig
// returns an empty string if there is no configuration file.
func FindConfig(afs afero.Fs, dir string) (string, error) {
	for {
		name := filepath.Join(dir, ConfigName)
		fi, err := afs.Stat(name)
		if err == nil {
			if !fi.Mode().IsRegular() {
				return "", fmt.Errorf("%s is not a regular file", name)
			}
			return name, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		for _, stop := range []string{".git", "go.mod"} {
			_, err = afs.Stat(filepath.Join(dir, stop))
			if err == nil {
				return "", nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Marshal returns the YAML encoding of c.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) strings() []*string {
	ss := []*string{
		&c.CC, &c.Objcopy, &c.Objdump, &c.CFlags, &c.LDScript, &c.Crt0,
		&c.Include, &c.Out.ELF, &c.Out.Bin, &c.Out.Hex, &c.Out.Dis,
	}
	for i := range c.Sources {
		ss = append(ss, &c.Sources[i])
	}
	return ss
}

func (c *Config) expand(getenv func(string) string) error {
	for _, s := range c.strings() {
		v, err := envsubst.Eval(*s, getenv)
		if err != nil {
			return err
		}
		*s = v
	}
	return nil
}

// resolve makes the file names relative to dir. Tool names and flags are left
// as is.
func (c *Config) resolve(dir string) {
	if dir == "." || dir == "" {
		return
	}
	files := []*string{
		&c.LDScript, &c.Crt0, &c.Include,
		&c.Out.ELF, &c.Out.Bin, &c.Out.Hex, &c.Out.Dis,
	}
	for i := range c.Sources {
		files = append(files, &c.Sources[i])
	}
	for _, f := range files {
		if *f != "" && !filepath.IsAbs(*f) {
			*f = filepath.Join(dir, *f)
		}
	}
}

// Find loads the named configuration file. If name is empty Find looks for
// the configuration file starting from dir and returns the default
// configuration if there is none. Find returns the name of the loaded file.
func Find(afs afero.Fs, name, dir string, getenv func(string) string) (*Config, string, error) {
	if name == "" {
		var err error
		if name, err = FindConfig(afs, dir); err != nil {
			return nil, "", err
		}
		if name == "" {
			return Default(), "", nil
		}
	}
	c, err := Load(afs, name, getenv)
	if err != nil {
		return nil, "", err
	}
	return c, name, nil
}
