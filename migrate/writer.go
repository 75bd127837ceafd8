// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/ansible-network/collection-prep/pysrc"
)

// License is the header every rewritten file starts with.
// It replaces whatever comment block the file started with.
const License = `#!/usr/bin/python
#
# This file is part of Ansible
#
# Ansible is free software: you can redistribute it and/or modify
# it under the terms of the GNU General Public License as published by
# the Free Software Foundation, either version 3 of the License, or
# (at your option) any later version.
#
# Ansible is distributed in the hope that it will be useful,
# but WITHOUT ANY WARRANTY; without even the implied warranty of
# MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
# GNU General Public License for more details.
#
# You should have received a copy of the GNU General Public License
# along with Ansible.  If not, see <http://www.gnu.org/licenses/>.
#
`

// Render returns the new text of f: License followed by every
// statement after the original header.
func Render(f *pysrc.File) []byte {
	_, body := f.SplitHeader()
	return append([]byte(License), body...)
}

// A Formatter reformats a source file in place.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// A Command is a Formatter that runs an external program
// with Args followed by the file name.
type Command struct {
	Name string
	Args []string
}

// Black runs the black Python formatter quietly.
var Black = &Command{Name: "black", Args: []string{"-q"}}

func (c *Command) Format(ctx context.Context, path string) error {
	args := append(append([]string(nil), c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %v\n%s", c.Name, path, err, bytes.TrimSpace(out.Bytes()))
	}
	return nil
}

func (c *Command) String() string { return c.Name }
