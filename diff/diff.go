// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares two file versions using the system 'diff' tool.
package diff

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Diff returns a unified diff of old and new, labeled with oldName and
// newName. It returns nil when the inputs are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	if bytes.Equal(old, new) {
		return nil, nil
	}
	f1, err := writeTemp(old)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)

	f2, err := writeTemp(new)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	// diff exits 1 when the files differ.
	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		return nil, err
	}

	// Replace the temporary file names in the two header lines.
	_, rest, ok := cutLine(data)
	if ok {
		_, rest, ok = cutLine(rest)
	}
	if !ok || !bytes.HasPrefix(rest, []byte("@")) {
		return data, nil
	}
	hdr := fmt.Sprintf("diff %s %s\n--- %s\n+++ %s\n", oldName, newName, oldName, newName)
	return append([]byte(hdr), rest...), nil
}

func cutLine(data []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil, false
	}
	return data[:i+1], data[i+1:], true
}

func writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp("", "collection-prep-diff")
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
