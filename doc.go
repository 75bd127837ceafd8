// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Collection-prep gets the plugins of an Ansible collection ready for
// its 1.0.0 release.
//
// Usage:
//
//	collection-prep -c collection -p path [--diff] [--formatter cmd] [--version-added v]
//
// Collection-prep rewrites every .py file in
//
//	path/collection/plugins/modules
//	path/collection/plugins/action
//
// in place. For example:
//
//	collection-prep -c cisco.ios -p ~/collections/ansible_collections
//
// By default, collection-prep writes changes back to the disk and runs
// black on each rewritten file. The --diff flag causes it to print a diff
// of the intended changes instead, without running the formatter.
//
// # Rewrites
//
// The embedded YAML in the DOCUMENTATION, EXAMPLES and RETURN string
// assignments and the ANSIBLE_METADATA dictionary are rewritten as
// follows.
//
// ANSIBLE_METADATA is replaced by
//
//	{"metadata_version": "1.1", "supported_by": "Ansible"}
//
// In DOCUMENTATION, version_added is set to 1.0.0 (or --version-added)
// and moved right after description. Every version_added nested below
// the top level, as in option descriptions, is removed.
//
// Resource modules, those whose RETURN has before, after and commands,
// get the short_description "<Resource> resource module". The resource
// comes from the module name: ios_l2_interfaces gives
// "L2 interfaces resource module", eos_ospfv2 gives
// "OSPFv2 resource module". Modules with a deprecated section get a
// "(deprecated) " prefix on their short_description.
//
// In EXAMPLES, tasks calling the module by its bare name, and comments
// mentioning it, are changed to use the fully qualified name
// collection.module.
//
// The comment block at the top of the file is replaced by the GPLv3
// license header.
//
// # Errors
//
// A missing or duplicated assignment skips that one rewrite. A file
// that cannot be parsed, has malformed YAML or lacks a key a rewrite
// needs (module, description, short_description) is left untouched,
// and collection-prep goes on with the next file. It stops if a file
// cannot be written or the formatter fails.
package main
