// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"fmt"
	"strings"

	"github.com/ansible-network/collection-prep/pysrc"
)

// RewriteExamples replaces the bare module name with its fully qualified
// name in EXAMPLES: as a task key, and inside comment lines.
// Running it again changes nothing.
func RewriteExamples(f *pysrc.File, id ModuleIdentity) error {
	a, err := pysrc.LocateOne(f, Examples)
	if err != nil {
		return err
	}
	doc, err := decodeAssign(a)
	if err != nil {
		return err
	}
	if doc.Empty() {
		return nil
	}
	if !doc.IsSequence() {
		return fmt.Errorf("line %d: %s is not a list of tasks", a.Line, a.Name)
	}

	full := id.FQCN()
	for _, task := range doc.Items() {
		task.RenameKey(id.Name, full)
	}
	text, err := doc.Encode()
	if err != nil {
		return err
	}

	// Comments are not part of the tree; fix them up textually.
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		if id.Name != "" &&
			strings.HasPrefix(strings.TrimSpace(line), "#") &&
			strings.Contains(line, id.Name) &&
			!strings.Contains(line, full) {
			lines[i] = strings.ReplaceAll(line, id.Name, full)
		}
	}
	a.SetText(strings.Join(lines, "\n") + "\n")
	return nil
}
