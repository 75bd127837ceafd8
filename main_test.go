// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ansible-network/collection-prep/migrate"
)

var parseFlagsTests = []struct {
	args []string
	err  string
}{
	{[]string{"-c", "cisco.ios", "-p", "/tmp/x"}, ""},
	{[]string{"--collection=cisco.ios", "--path=/tmp/x", "--diff"}, ""},
	{[]string{"-p", "/tmp/x"}, "usage: -c/--collection is required"},
	{[]string{"-c", "cisco.ios"}, "usage: -p/--path is required"},
	{[]string{"-c", "cisco.ios", "-p", "/tmp/x", "extra"}, "usage: unexpected arguments: extra"},
	{[]string{"-c", "cisco.ios", "-p", "/tmp/x", "--version-added", "1.x"}, `usage: version_added "1.x" is not a semantic version`},
}

func TestParseFlags(t *testing.T) {
	for _, tt := range parseFlagsTests {
		var stderr bytes.Buffer
		_, err := parseFlags(tt.args, &stderr)
		have := ""
		if err != nil {
			have = err.Error()
		}
		if have != tt.err {
			t.Errorf("parseFlags(%q) = %q, want %q", tt.args, have, tt.err)
		}
	}
}

func TestParseFlagsConfig(t *testing.T) {
	var stderr bytes.Buffer
	cfg, err := parseFlags([]string{"-c", "cisco.ios", "-p", "/tmp/x", "--diff", "--formatter", "ruff", "--version-added", "2.0.0"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection != "cisco.ios" || cfg.Path != "/tmp/x" || !cfg.ShowDiff || cfg.VersionAdded != "2.0.0" {
		t.Errorf("config = %+v", cfg)
	}
	if c, ok := cfg.Formatter.(*migrate.Command); !ok || c.Name != "ruff" {
		t.Errorf("formatter = %v", cfg.Formatter)
	}

	cfg, err = parseFlags([]string{"-c", "cisco.ios", "-p", "/tmp/x"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Formatter != migrate.Black || cfg.VersionAdded != migrate.DefaultVersionAdded {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"--help"}, &stderr)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("parseFlags(--help) = %v", err)
	}
	if !strings.Contains(stderr.String(), "--collection") {
		t.Errorf("help output:\n%s", stderr.String())
	}
}

func TestCheckToolchain(t *testing.T) {
	for _, tt := range []struct {
		version string
		ok      bool
	}{
		{"go1.22.3", true},
		{"go1.21", true},
		{"go1.20.14", false},
		{"go1.16", false},
		{"devel go1.23-abcdef", true},
		{"go1.23rc1", true},
	} {
		err := checkToolchain(tt.version)
		if (err == nil) != tt.ok {
			t.Errorf("checkToolchain(%q) = %v", tt.version, err)
		}
		var ep *errPrecondition
		if err != nil && !errors.As(err, &ep) {
			t.Errorf("checkToolchain(%q) error is %T", tt.version, err)
		}
	}
}

func TestCheckFormatter(t *testing.T) {
	err := checkFormatter(&migrate.Command{Name: "no-such-formatter-anywhere"})
	var ep *errPrecondition
	if !errors.As(err, &ep) {
		t.Errorf("checkFormatter(missing) = %v", err)
	}
}
