// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
	"golang.org/x/mod/semver"

	"github.com/ansible-network/collection-prep/migrate"
)

// minToolchain is the oldest Go release the tool may be built with.
const minToolchain = "v1.21"

func main() {
	log.SetPrefix("collection-prep: ")
	log.SetFlags(0)

	if err := checkToolchain(runtime.Version()); err != nil {
		log.Fatal(err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "collection-prep",
		Level:  hclog.Info,
		Output: os.Stderr,
	})
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	var eu *errUsage
	switch {
	case errors.Is(err, pflag.ErrHelp):
		os.Exit(2)
	case errors.As(err, &eu):
		log.Print(err)
		fmt.Fprintf(os.Stderr, "run 'collection-prep --help' for usage\n")
		os.Exit(2)
	case err != nil:
		log.Fatal(err)
	}
	cfg.Logger = logger

	if !cfg.ShowDiff {
		if err := checkFormatter(cfg.Formatter); err != nil {
			log.Fatal(err)
		}
	}

	m, err := migrate.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := m.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// parseFlags turns the command line into a migrate.Config.
func parseFlags(args []string, stderr io.Writer) (migrate.Config, error) {
	fs := pflag.NewFlagSet("collection-prep", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: collection-prep -c collection -p path [--diff]\n")
		fs.PrintDefaults()
	}
	var (
		collection   = fs.StringP("collection", "c", "", "the name of the collection")
		path         = fs.StringP("path", "p", "", "the path to the collection")
		showDiff     = fs.Bool("diff", false, "show diff instead of writing files")
		formatter    = fs.String("formatter", migrate.Black.Name, "formatter run on each written file")
		versionAdded = fs.String("version-added", migrate.DefaultVersionAdded, "version_added for every module")
	)
	if err := fs.Parse(args); err != nil {
		return migrate.Config{}, err
	}
	if fs.NArg() != 0 {
		return migrate.Config{}, newErrUsage("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *collection == "" {
		return migrate.Config{}, newErrUsage("-c/--collection is required")
	}
	if *path == "" {
		return migrate.Config{}, newErrUsage("-p/--path is required")
	}

	f := migrate.Black
	if *formatter != f.Name {
		f = &migrate.Command{Name: *formatter}
	}
	cfg := migrate.Config{
		Collection:   *collection,
		Path:         *path,
		VersionAdded: *versionAdded,
		ShowDiff:     *showDiff,
		Formatter:    f,
	}
	if err := cfg.Validate(); err != nil {
		return migrate.Config{}, newErrUsage("%v", err)
	}
	return cfg, nil
}

// checkToolchain rejects binaries built with a Go release older than
// minToolchain. Development builds are accepted.
func checkToolchain(version string) error {
	v, ok := strings.CutPrefix(version, "go")
	if !ok {
		return nil
	}
	sv := semver.MajorMinor("v" + v)
	if sv == "" {
		return nil
	}
	if semver.Compare(sv, minToolchain) < 0 {
		return newErrPrecondition("built with %s, need go%s or later", version, strings.TrimPrefix(minToolchain, "v"))
	}
	return nil
}

// checkFormatter makes sure an external formatter can be found
// before any file is rewritten.
func checkFormatter(f migrate.Formatter) error {
	c, ok := f.(*migrate.Command)
	if !ok {
		return nil
	}
	if _, err := exec.LookPath(c.Name); err != nil {
		return newErrPrecondition("formatter %s not found: %v", c.Name, err)
	}
	return nil
}
