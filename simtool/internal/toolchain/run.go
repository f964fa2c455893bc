// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package toolchain drives the external cross-toolchain that builds the
// firmware and turns it into the memory image of the test bench.
package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Failure is returned when an external tool exits with a non-zero status.
type Failure struct {
	Tool     string
	ExitCode int
	Stderr   []byte // captured diagnostic output
}

func (f *Failure) Error() string {
	s := fmt.Sprintf("%s: exit status %d", f.Tool, f.ExitCode)
	if msg := strings.TrimSpace(string(f.Stderr)); msg != "" {
		s += "\n" + msg
	}
	return s
}

// Run runs the command described by argv and waits for it to finish. It
// returns the captured standard output. If the command exits with a non-zero
// status the returned error is a *Failure.
func Run(argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("run: empty command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, err
	}
	var stdout, stderr bytes.Buffer
	c := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdout: &stdout,
		Stderr: &stderr,
	}
	err = c.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return stdout.Bytes(), &Failure{argv[0], ee.ExitCode(), stderr.Bytes()}
	}
	return nil, err
}
