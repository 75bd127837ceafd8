// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ansible-network/collection-prep/diff"
	"github.com/ansible-network/collection-prep/pysrc"
)

// Stats counts what a Run did.
type Stats struct {
	Files   int // .py files seen
	Written int // files written (or diffed)
	Skipped int // files left alone because of an error
}

// A fatalError stops the whole batch.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Run processes every .py file under <Path>/<Collection>/plugins/{modules,action}.
// A file that cannot be parsed or whose documents are malformed is
// logged and skipped; the batch goes on with the next one. Run stops
// early only when a file cannot be written, the formatter fails, a
// directory cannot be read, or ctx is done.
func (m *Migrator) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	for _, sub := range Subdirs {
		dir := filepath.Join(m.cfg.Path, m.cfg.Collection, "plugins", sub)
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			m.log.Warn("no such directory", "dir", dir)
			continue
		}
		if err != nil {
			return stats, err
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".py" {
				continue
			}
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			stats.Files++
			path := filepath.Join(dir, e.Name())
			err := m.ProcessFile(ctx, path)
			var fe *fatalError
			switch {
			case errors.As(err, &fe):
				return stats, fe.err
			case err != nil:
				stats.Skipped++
				m.log.Warn("skipped", "file", path, "error", err)
			default:
				stats.Written++
			}
		}
	}
	m.log.Info("done", "files", stats.Files, "written", stats.Written, "skipped", stats.Skipped)
	return stats, nil
}

// ProcessFile runs every pass over the file at path and writes it back.
// Nothing is written unless all passes succeed.
func (m *Migrator) ProcessFile(ctx context.Context, path string) error {
	m.log.Info("processing", "file", path)
	old, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	f, err := pysrc.Parse(path, old)
	if err != nil {
		return err
	}

	id, err := Identify(f, m.cfg.Collection)
	if err != nil {
		return fmt.Errorf("no module name found: %w", err)
	}

	passes := []struct {
		done string
		run  func() error
	}{
		{"updated metadata", func() error { return NormalizeMetadata(f) }},
		{"updated documentation", func() error { return EditDocumentation(f, m.cfg.VersionAdded) }},
		{"checked short description", func() error { return DeriveShortDescription(m.log, f, id.Name) }},
		{"updated examples", func() error { return RewriteExamples(f, id) }},
	}
	for _, p := range passes {
		if err := p.run(); err != nil {
			if !missing(err) {
				return err
			}
			m.log.Warn(err.Error(), "file", path)
		}
		m.log.Info(p.done, "file", path)
	}

	new := Render(f)
	if m.cfg.ShowDiff {
		rel, err := filepath.Rel(m.cfg.Path, path)
		if err != nil {
			rel = path
		}
		if bytes.Equal(old, new) {
			return nil
		}
		d, err := diff.Diff("old/"+rel, old, "new/"+rel, new)
		if err != nil {
			return &fatalError{err}
		}
		if _, err := m.cfg.Stdout.Write(d); err != nil {
			return &fatalError{err}
		}
		return nil
	}

	if err := os.WriteFile(path, new, info.Mode().Perm()); err != nil {
		return &fatalError{err}
	}
	m.log.Info("wrote", "file", path)

	m.log.Info("running formatter", "formatter", fmt.Sprint(m.cfg.Formatter), "file", path)
	if err := m.cfg.Formatter.Format(ctx, path); err != nil {
		return &fatalError{err}
	}
	return nil
}
