// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ansible-network/collection-prep/pysrc"
	"github.com/ansible-network/collection-prep/yamldoc"
)

// ResourceNames spells resource tokens that are not simply upper-cased.
// It covers every resource module family in the network collections.
var ResourceNames = map[string]string{
	"ospfv2":     "OSPFv2",
	"interfaces": "Interfaces",
	"static":     "Static",
}

// resourceReturns are the RETURN keys every resource module has.
var resourceReturns = []string{"after", "before", "commands"}

const deprecatedPrefix = "(deprecated) "

// DeriveShortDescription rewrites short_description in DOCUMENTATION
// for resource modules ("<Resource> resource module") and marks
// deprecated modules. RETURN is read but never changed.
func DeriveShortDescription(log hclog.Logger, f *pysrc.File, moduleName string) error {
	ret, err := pysrc.LocateOne(f, Return)
	if err != nil {
		return err
	}
	doc, err := pysrc.LocateOne(f, Documentation)
	if err != nil {
		return err
	}
	retDoc, err := decodeAssign(ret)
	if err != nil {
		return err
	}
	docDoc, err := decodeAssign(doc)
	if err != nil {
		return err
	}
	m := docDoc.Mapping()
	if m == nil {
		return fmt.Errorf("line %d: %s is not a mapping", doc.Line, doc.Name)
	}
	orig, ok := m.Get("short_description")
	if !ok {
		return fmt.Errorf("line %d: %s has no short_description: %w", doc.Line, doc.Name, ErrMissingKey)
	}

	short := orig
	if isResourceModule(retDoc.Mapping()) {
		if res, ok := resourceName(moduleName); ok {
			log.Info("found a resource module", "module", moduleName)
			short = res + " resource module"
		}
	}
	if m.Has("deprecated") && !strings.HasPrefix(short, deprecatedPrefix) {
		log.Info("found to be deprecated", "module", moduleName)
		short = deprecatedPrefix + short
	}
	if short == orig {
		return nil
	}

	log.Info("setting short description", "module", moduleName, "short_description", short)
	m.Set("short_description", short)
	text, err := docDoc.Encode()
	if err != nil {
		return err
	}
	doc.SetText(text)
	return nil
}

func isResourceModule(ret *yamldoc.Mapping) bool {
	if ret == nil {
		return false
	}
	for _, k := range resourceReturns {
		if !ret.Has(k) {
			return false
		}
	}
	return true
}

// resourceName derives the display name of the resource managed by
// a module named <platform>_<resource>[_<qualifier>].
func resourceName(moduleName string) (string, bool) {
	parts := strings.Split(moduleName, "_")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	token := strings.ToLower(parts[1])
	res, ok := ResourceNames[token]
	if !ok {
		res = strings.ToUpper(token)
	}
	// VLANS -> VLANs
	if strings.HasSuffix(strings.ToLower(res), "s") {
		res = res[:len(res)-1] + "s"
	}
	if len(parts) > 2 && parts[2] != "global" {
		res += " " + parts[2]
	}
	return res, true
}
