// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ansible-network/collection-prep/pysrc"
)

var nestedVersionAdded = regexp.MustCompile(`^\s+version_added:\s.*$`)

// EditDocumentation moves version_added in DOCUMENTATION to just after
// description, set to version, and drops version_added from every
// option below the top level.
func EditDocumentation(f *pysrc.File, version string) error {
	a, err := pysrc.LocateOne(f, Documentation)
	if err != nil {
		return err
	}
	doc, err := decodeAssign(a)
	if err != nil {
		return err
	}
	m := doc.Mapping()
	if m == nil {
		return fmt.Errorf("line %d: %s is not a mapping", a.Line, a.Name)
	}
	m.Delete("version_added")
	if !m.InsertAfter("description", "version_added", version) {
		return fmt.Errorf("line %d: %s has no description: %w", a.Line, a.Name, ErrMissingKey)
	}
	text, err := doc.Encode()
	if err != nil {
		return err
	}
	a.SetText(dropLines(text, nestedVersionAdded))
	return nil
}

// dropLines removes the lines of text matching re.
func dropLines(text string, re *regexp.Regexp) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	keep := lines[:0]
	for _, line := range lines {
		if !re.MatchString(line) {
			keep = append(keep, line)
		}
	}
	return strings.Join(keep, "\n") + "\n"
}
