// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package migrate

import "github.com/ansible-network/collection-prep/pysrc"

// MetadataValue is the literal every ANSIBLE_METADATA is replaced with.
const MetadataValue = `{"metadata_version": "1.1", "supported_by": "Ansible"}`

// NormalizeMetadata overwrites the ANSIBLE_METADATA value of f.
// The previous content is discarded, whatever it was.
func NormalizeMetadata(f *pysrc.File) error {
	a, err := pysrc.LocateOne(f, Metadata)
	if err != nil {
		return err
	}
	a.SetValue(&pysrc.Expr{Src: MetadataValue})
	return nil
}
