// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenFillsGaps(t *testing.T) {
	ss := Sections{
		{Name: ".data", Paddr: 0x10, Data: []byte{0xaa, 0xbb}},
		{Name: ".text", Paddr: 0x08, Data: []byte{1, 2, 3, 4, 5, 6}},
	}
	var buf bytes.Buffer
	n, err := ss.Flatten(&buf, 0xff)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 0xff, 0xff, 0xaa, 0xbb}, buf.Bytes())
	assert.Equal(t, 10, ss.Size())
}

func TestFlattenOverlap(t *testing.T) {
	ss := Sections{
		{Name: ".text", Paddr: 0, Data: make([]byte, 8)},
		{Name: ".rodata", Paddr: 4, Data: make([]byte, 4)},
	}
	_, err := ss.Flatten(&bytes.Buffer{}, 0)
	require.ErrorContains(t, err, ".rodata")
}

func TestImage(t *testing.T) {
	_, err := Sections{}.Image(0)
	require.Error(t, err)

	img, err := Sections{{Paddr: 0, Data: []byte{0x13, 0, 0, 0}}}.Image(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x13, 0, 0, 0}, img)
}

func TestReadIncludes(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "boot.bin")
	require.NoError(t, os.WriteFile(name, []byte{1, 2}, 0o644))

	ss, err := ReadIncludes(name + ":0x100")
	require.NoError(t, err)
	require.Len(t, ss, 1)
	assert.Equal(t, uint64(0x100), ss[0].Paddr)
	assert.Equal(t, []byte{1, 2}, ss[0].Data)

	_, err = ReadIncludes("boot.bin")
	assert.Error(t, err)
	_, err = ReadIncludes(name + ":zz")
	assert.Error(t, err)
}

func TestPadBytes(t *testing.T) {
	var cache []byte
	assert.Equal(t, []byte{0, 0, 0}, PadBytes(&cache, 3, 0))
	assert.Len(t, PadBytes(&cache, 2, 0), 2)
}

func TestInOutFiles(t *testing.T) {
	in, out := InOutFiles("fw.bin", ".bin", "", ".hex")
	assert.Equal(t, "fw.bin", in)
	assert.Equal(t, "fw.hex", out)

	in, out = InOutFiles("a.bin", ".bin", "b/c.hex", ".hex")
	assert.Equal(t, "a.bin", in)
	assert.Equal(t, "b/c.hex", out)
}
