// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package migrate prepares the plugin sources of a collection for its
// first release: it normalizes ANSIBLE_METADATA, resets version_added,
// derives short descriptions and fully qualifies module references in
// EXAMPLES.
package migrate

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/mod/semver"

	"github.com/ansible-network/collection-prep/pysrc"
	"github.com/ansible-network/collection-prep/yamldoc"
)

// Names of the assignments the passes work on.
const (
	Documentation = "DOCUMENTATION"
	Metadata      = "ANSIBLE_METADATA"
	Examples      = "EXAMPLES"
	Return        = "RETURN"
)

// DefaultVersionAdded is the version_added written into DOCUMENTATION.
const DefaultVersionAdded = "1.0.0"

// Subdirs are the directories under <collection>/plugins that are processed, in order.
var Subdirs = []string{"modules", "action"}

// ErrMissingKey reports a document without a key a pass needs.
var ErrMissingKey = errors.New("missing key")

// Config configures a Migrator.
type Config struct {
	Collection   string
	Path         string // directory holding the collection directory
	VersionAdded string // defaults to DefaultVersionAdded

	// ShowDiff prints a diff of each file to Stdout
	// instead of writing it and running the Formatter.
	ShowDiff bool
	Stdout   io.Writer

	Formatter Formatter    // defaults to Black
	Logger    hclog.Logger // defaults to a null logger
}

// Validate checks c and fills in defaults.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return fmt.Errorf("no collection name")
	}
	if c.Path == "" {
		return fmt.Errorf("no collection path")
	}
	if c.VersionAdded == "" {
		c.VersionAdded = DefaultVersionAdded
	}
	if !semver.IsValid("v" + c.VersionAdded) {
		return fmt.Errorf("version_added %q is not a semantic version", c.VersionAdded)
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Formatter == nil {
		c.Formatter = Black
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return nil
}

// A Migrator rewrites the plugin sources of one collection.
type Migrator struct {
	cfg Config
	log hclog.Logger
}

// New returns a Migrator for cfg.
func New(cfg Config) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Migrator{cfg: cfg, log: cfg.Logger}, nil
}

// ModuleIdentity names the module a file implements.
type ModuleIdentity struct {
	Collection string
	Name       string
}

// FQCN returns the fully qualified <collection>.<module> name.
func (id ModuleIdentity) FQCN() string {
	return id.Collection + "." + id.Name
}

// Identify reads the module name from the DOCUMENTATION block of f.
func Identify(f *pysrc.File, collection string) (ModuleIdentity, error) {
	a, err := pysrc.LocateOne(f, Documentation)
	if err != nil {
		return ModuleIdentity{}, err
	}
	doc, err := decodeAssign(a)
	if err != nil {
		return ModuleIdentity{}, err
	}
	m := doc.Mapping()
	if m == nil {
		return ModuleIdentity{}, fmt.Errorf("line %d: %s is not a mapping", a.Line, a.Name)
	}
	name, ok := m.Get("module")
	if !ok || name == "" {
		return ModuleIdentity{}, fmt.Errorf("line %d: %s has no module name: %w", a.Line, a.Name, ErrMissingKey)
	}
	return ModuleIdentity{Collection: collection, Name: name}, nil
}

// decodeAssign decodes the YAML held by the string literal assigned in a.
func decodeAssign(a *pysrc.Assign) (*yamldoc.Document, error) {
	s, ok := a.Value.(*pysrc.String)
	if !ok {
		return nil, fmt.Errorf("line %d: %s is not a string literal", a.Line, a.Name)
	}
	doc, err := yamldoc.Decode(s.Text)
	if err != nil {
		return nil, fmt.Errorf("line %d: %s: %w", a.Line, a.Name, err)
	}
	return doc, nil
}

// missing reports whether err only says that an assignment
// was absent or ambiguous, which skips one pass but not the file.
func missing(err error) bool {
	return errors.Is(err, pysrc.ErrNotFound) || errors.Is(err, pysrc.ErrAmbiguous)
}
