// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pysrc

import "fmt"

// Locate returns the top-level assignments to name, in file order.
func Locate(f *File, name string) []*Assign {
	var list []*Assign
	for _, s := range f.Stmts {
		if a, ok := s.(*Assign); ok && a.Name == name {
			list = append(list, a)
		}
	}
	return list
}

// LocateOne returns the single top-level assignment to name.
// The error wraps ErrNotFound or ErrAmbiguous.
func LocateOne(f *File, name string) (*Assign, error) {
	list := Locate(f, name)
	switch len(list) {
	case 0:
		return nil, fmt.Errorf("failed to find %s assignment: %w", name, ErrNotFound)
	case 1:
		return list[0], nil
	}
	return nil, fmt.Errorf("found %d %s assignments: %w", len(list), name, ErrAmbiguous)
}
