// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// A recorder is a Formatter that remembers the files it was asked to format.
type recorder struct {
	dir   string
	paths []string
	err   error
}

func (r *recorder) Format(ctx context.Context, path string) error {
	rel, err := filepath.Rel(r.dir, path)
	if err != nil {
		return err
	}
	r.paths = append(r.paths, filepath.ToSlash(rel))
	return r.err
}

// writeTree writes the files of ar below dir, except those whose name
// is in skip or starts with "want/".
func writeTree(t *testing.T, dir string, ar *txtar.Archive, skip ...string) {
	t.Helper()
Files:
	for _, f := range ar.Files {
		for _, s := range skip {
			if f.Name == s {
				continue Files
			}
		}
		if strings.HasPrefix(f.Name, "want/") {
			continue
		}
		targ := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(targ), 0777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(targ, f.Data, 0666); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			writeTree(t, dir, ar, "formatted", "stats")

			want := make(map[string][]byte)
			var wantFormatted, wantStats []byte
			for _, f := range ar.Files {
				switch {
				case f.Name == "formatted":
					wantFormatted = f.Data
				case f.Name == "stats":
					wantStats = f.Data
				case strings.HasPrefix(f.Name, "want/"):
					want[strings.TrimPrefix(f.Name, "want/")] = f.Data
				default:
					if _, ok := want[f.Name]; !ok {
						want[f.Name] = f.Data
					}
				}
			}

			fmtr := &recorder{dir: dir}
			m, err := New(Config{
				Collection: strings.TrimSpace(string(ar.Comment)),
				Path:       dir,
				Formatter:  fmtr,
			})
			if err != nil {
				t.Fatal(err)
			}
			stats, err := m.Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			cmp := func(name string, have, want []byte) {
				t.Helper()
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			for name, data := range want {
				have, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
				if err != nil {
					t.Error(err)
					continue
				}
				cmp(name, have, data)
			}
			var formatted []byte
			for _, p := range fmtr.paths {
				formatted = append(formatted, p+"\n"...)
			}
			cmp("formatted", formatted, wantFormatted)
			s := fmt.Sprintf("files=%d written=%d skipped=%d\n", stats.Files, stats.Written, stats.Skipped)
			cmp("stats", []byte(s), wantStats)
		})
	}
}

const vlansModule = `DOCUMENTATION = """
module: ios_vlans
short_description: Manage VLANs
description: VLANs.
"""
EXAMPLES = """
- ios_vlans:
    state: merged
"""
`

func TestRunShowDiff(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff not installed")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "cisco.ios", "plugins", "modules", "ios_vlans.py")
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(vlansModule), 0666); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	fmtr := &recorder{dir: dir}
	m, err := New(Config{Collection: "cisco.ios", Path: dir, ShowDiff: true, Stdout: &stdout, Formatter: fmtr})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	out := stdout.String()
	for _, s := range []string{
		"--- old/cisco.ios/plugins/modules/ios_vlans.py\n",
		"+++ new/cisco.ios/plugins/modules/ios_vlans.py\n",
		"+version_added: 1.0.0\n",
		"+- cisco.ios.ios_vlans:\n",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("diff output missing %q:\n%s", s, out)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != vlansModule {
		t.Errorf("-diff mode rewrote the file:\n%s", data)
	}
	if len(fmtr.paths) != 0 {
		t.Errorf("-diff mode ran the formatter on %v", fmtr.paths)
	}
}

func TestRunFormatterFails(t *testing.T) {
	dir := t.TempDir()
	modules := filepath.Join(dir, "c.n", "plugins", "modules")
	if err := os.MkdirAll(modules, 0777); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a_vlans.py", "b_vlans.py"} {
		if err := os.WriteFile(filepath.Join(modules, name), []byte(vlansModule), 0666); err != nil {
			t.Fatal(err)
		}
	}

	errFormat := errors.New("formatter exploded")
	fmtr := &recorder{dir: dir, err: errFormat}
	m, err := New(Config{Collection: "c.n", Path: dir, Formatter: fmtr})
	if err != nil {
		t.Fatal(err)
	}
	stats, err := m.Run(context.Background())
	if !errors.Is(err, errFormat) {
		t.Fatalf("Run = %v, want %v", err, errFormat)
	}
	if stats.Files != 1 || len(fmtr.paths) != 1 {
		t.Errorf("batch went on after formatter failure: %+v, formatted %v", stats, fmtr.paths)
	}
}

func TestRunMissingDirs(t *testing.T) {
	m, err := New(Config{Collection: "c.n", Path: t.TempDir(), Formatter: &recorder{}})
	if err != nil {
		t.Fatal(err)
	}
	stats, err := m.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	modules := filepath.Join(dir, "c.n", "plugins", "modules")
	if err := os.MkdirAll(modules, 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(modules, "a_vlans.py"), []byte(vlansModule), 0666); err != nil {
		t.Fatal(err)
	}
	m, err := New(Config{Collection: "c.n", Path: dir, Formatter: &recorder{dir: dir}})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg Config
		err string
	}{
		{Config{Path: "p"}, "no collection name"},
		{Config{Collection: "c.n"}, "no collection path"},
		{Config{Collection: "c.n", Path: "p", VersionAdded: "one"}, `version_added "one" is not a semantic version`},
		{Config{Collection: "c.n", Path: "p", VersionAdded: "2.0.0"}, ""},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		have := ""
		if err != nil {
			have = err.Error()
		}
		if have != tt.err {
			t.Errorf("Validate(%+v) = %q, want %q", tt.cfg, have, tt.err)
		}
	}

	var c Config
	c.Collection, c.Path = "c.n", "p"
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.VersionAdded != DefaultVersionAdded || c.Formatter != Black || c.Logger == nil || c.Stdout == nil {
		t.Errorf("Validate did not fill defaults: %+v", c)
	}
}
