// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toolchain

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse(t *testing.T) {
	data := []byte(`
cc: ${RISCV}/bin/riscv32-unknown-elf-gcc
cflags: -march=rv32i -mabi=ilp32 -O0
include: header.h
sources: [main.c, lib.c]
out:
  hex: ${OUT:-build}/program.hex
  dis: program.dis
`)
	c, err := Parse(data, env(map[string]string{"RISCV": "/opt/riscv"}))
	require.NoError(t, err)
	assert.Equal(t, "/opt/riscv/bin/riscv32-unknown-elf-gcc", c.CC)
	assert.Equal(t, "riscv64-unknown-elf-objcopy", c.Objcopy)
	assert.Equal(t, "-march=rv32i -mabi=ilp32 -O0", c.CFlags)
	assert.Equal(t, "header.h", c.Include)
	assert.Equal(t, []string{"main.c", "lib.c"}, c.Sources)
	assert.Equal(t, "build/program.hex", c.Out.Hex)
	assert.Equal(t, "program.bin", c.Out.Bin)
	assert.Equal(t, "program.dis", c.Out.Dis)
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("compiler: gcc\n"), env(nil))
	assert.Error(t, err)
}

func TestLoadResolvesFiles(t *testing.T) {
	afs := afero.NewMemMapFs()
	name := filepath.Join("fw", ConfigName)
	require.NoError(t, afero.WriteFile(afs, name, []byte("ldscript: ld/rv32.ld\nout:\n  hex: /tmp/p.hex\n"), 0o644))

	c, err := Load(afs, name, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "riscv64-unknown-elf-gcc", c.CC)
	assert.Equal(t, filepath.Join("fw", "ld", "rv32.ld"), c.LDScript)
	assert.Equal(t, filepath.Join("fw", "program.c"), c.Sources[0])
	assert.Equal(t, "/tmp/p.hex", c.Out.Hex)
	assert.Equal(t, "", c.Include)
}

func TestFindConfig(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/work/proj/.git", 0o755))
	require.NoError(t, afs.MkdirAll("/work/proj/src/main/resources", 0o755))

	name, err := FindConfig(afs, "/work/proj/src/main/resources")
	require.NoError(t, err)
	assert.Equal(t, "", name)

	require.NoError(t, afero.WriteFile(afs, "/work/simtool.yaml", nil, 0o644))
	name, err = FindConfig(afs, "/work/proj/src/main/resources")
	require.NoError(t, err)
	assert.Equal(t, "", name, "search must stop at the repository root")

	require.NoError(t, afero.WriteFile(afs, "/work/proj/src/simtool.yaml", nil, 0o644))
	name, err = FindConfig(afs, "/work/proj/src/main/resources")
	require.NoError(t, err)
	assert.Equal(t, "/work/proj/src/simtool.yaml", name)
}

func TestFindConfigNotRegular(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/a/simtool.yaml", 0o755))
	_, err := FindConfig(afs, "/a")
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	c, err := Parse(data, env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFind(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/p/.git", 0o755))
	c, name, err := Find(afs, "", "/p", env(nil))
	require.NoError(t, err)
	assert.Equal(t, "", name)
	assert.Equal(t, Default(), c)

	require.NoError(t, afero.WriteFile(afs, "/p/simtool.yaml", []byte("objdump: llvm-objdump\n"), 0o644))
	c, name, err = Find(afs, "", "/p", env(nil))
	require.NoError(t, err)
	assert.Equal(t, "/p/simtool.yaml", name)
	assert.Equal(t, "llvm-objdump", c.Objdump)
	assert.Equal(t, "/p/program.hex", c.Out.Hex)

	_, _, err = Find(afs, "/p/other.yaml", "/p", env(nil))
	assert.Error(t, err)
}
