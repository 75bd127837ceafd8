// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pysrc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound reports that no top-level assignment has the requested name.
	ErrNotFound = errors.New("assignment not found")

	// ErrAmbiguous reports that several top-level assignments have the requested name.
	ErrAmbiguous = errors.New("assignment is ambiguous")
)

// A Position is a line in a named source file.
type Position struct {
	Filename string
	Line     int
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprint(p.Line)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// An Error is an error at a particular source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

// ErrorList is a set of Errors. It is also an error itself. The zero value is
// an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[Error]bool
}

// Add adds an error to l. If the error is an Error it keeps its position;
// an ErrorList is merged. Duplicates (same position and message) are dropped.
func (l *ErrorList) Add(err error) {
	var e *Error
	switch err := err.(type) {
	case nil:
		return
	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return
	case *Error:
		e = err
	default:
		e = &Error{Msg: err.Error()}
	}

	if !l.set[*e] {
		if l.set == nil {
			l.set = make(map[Error]bool)
		}
		l.errs = append(l.errs, e)
		l.set[*e] = true
	}
}

// Len reports the number of distinct errors in l.
func (l *ErrorList) Len() int { return len(l.errs) }

// Error sorts the list by position and returns a "\n" separated list of
// formatted errors, without a trailing newline.
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}
	sort.SliceStable(l.errs, func(i, j int) bool {
		p1, p2 := l.errs[i].Pos, l.errs[j].Pos
		if p1.Filename != p2.Filename {
			return p1.Filename < p2.Filename
		}
		return p1.Line < p2.Line
	})

	buf := new(strings.Builder)
	for _, e := range l.errs {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
