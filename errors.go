// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "fmt"

// errUsage indicates a bad command line. Usage errors are independent
// of the collection being migrated.
type errUsage struct {
	err string
}

func newErrUsage(f string, args ...interface{}) *errUsage {
	return &errUsage{fmt.Sprintf(f, args...)}
}

func (e *errUsage) Error() string {
	return "usage: " + e.err
}

// errPrecondition indicates that the command line was well-formed, but
// the environment cannot run the migration. For example, the formatter
// is not installed.
type errPrecondition struct {
	err string
}

func newErrPrecondition(f string, args ...interface{}) *errPrecondition {
	return &errPrecondition{fmt.Sprintf(f, args...)}
}

func (e *errPrecondition) Error() string {
	return e.err
}
