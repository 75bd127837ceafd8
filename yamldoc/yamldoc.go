// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamldoc edits YAML documents embedded in plugin sources
// without losing their key order or comments.
package yamldoc

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// A DecodeError reports YAML text that could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decoding document: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// A Document is a decoded YAML document.
// The zero Document, and the result of decoding blank text, is empty.
type Document struct {
	root yaml.Node
}

// Decode parses text into a Document.
func Decode(text string) (*Document, error) {
	d := new(Document)
	if strings.TrimSpace(text) == "" {
		return d, nil
	}
	if err := yaml.Unmarshal([]byte(text), &d.root); err != nil {
		return nil, &DecodeError{err}
	}
	return d, nil
}

func (d *Document) body() *yaml.Node {
	if d.root.Kind != yaml.DocumentNode || len(d.root.Content) == 0 {
		return nil
	}
	return d.root.Content[0]
}

// Empty reports whether d holds no content.
func (d *Document) Empty() bool { return d.body() == nil }

// Encode returns the YAML text of d, indented by two spaces.
func (d *Document) Encode() (string, error) {
	if d.Empty() {
		return "", nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&d.root); err != nil {
		return "", fmt.Errorf("encoding document: %v", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding document: %v", err)
	}
	return buf.String(), nil
}

// Mapping returns the top-level mapping of d,
// or nil if d is empty or not a mapping.
func (d *Document) Mapping() *Mapping {
	if n := d.body(); n != nil && n.Kind == yaml.MappingNode {
		return &Mapping{n}
	}
	return nil
}

// IsSequence reports whether d is a sequence at the top level.
func (d *Document) IsSequence() bool {
	n := d.body()
	return n != nil && n.Kind == yaml.SequenceNode
}

// Items returns the mapping entries of a top-level sequence.
// Entries that are not mappings are left out.
func (d *Document) Items() []*Mapping {
	n := d.body()
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	var list []*Mapping
	for _, c := range n.Content {
		if c.Kind == yaml.MappingNode {
			list = append(list, &Mapping{c})
		}
	}
	return list
}

// A Mapping is an ordered YAML mapping inside a Document.
// Edits through a Mapping change the Document it came from.
type Mapping struct {
	n *yaml.Node
}

// Keys returns the keys of m in order.
func (m *Mapping) Keys() []string {
	var keys []string
	for i := 0; i+1 < len(m.n.Content); i += 2 {
		keys = append(keys, m.n.Content[i].Value)
	}
	return keys
}

// Index returns the position of key among the keys of m, or -1.
func (m *Mapping) Index(key string) int {
	for i := 0; i+1 < len(m.n.Content); i += 2 {
		if m.n.Content[i].Value == key {
			return i / 2
		}
	}
	return -1
}

// Has reports whether m has key.
func (m *Mapping) Has(key string) bool { return m.Index(key) >= 0 }

// Get returns the scalar value of key.
// It reports false if key is missing or its value is not a scalar.
func (m *Mapping) Get(key string) (string, bool) {
	i := m.Index(key)
	if i < 0 {
		return "", false
	}
	v := m.n.Content[2*i+1]
	if v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// Set sets key to the string value, appending key if it is missing.
// The quoting style of an existing scalar is kept.
func (m *Mapping) Set(key, value string) {
	i := m.Index(key)
	if i < 0 {
		m.n.Content = append(m.n.Content, scalar(key), scalar(value))
		return
	}
	old := m.n.Content[2*i+1]
	v := scalar(value)
	if old.Kind == yaml.ScalarNode {
		v.Style = old.Style &^ (yaml.LiteralStyle | yaml.FoldedStyle)
		v.LineComment = old.LineComment
	}
	m.n.Content[2*i+1] = v
}

// Delete removes key from m and reports whether it was present.
func (m *Mapping) Delete(key string) bool {
	i := m.Index(key)
	if i < 0 {
		return false
	}
	m.n.Content = append(m.n.Content[:2*i], m.n.Content[2*i+2:]...)
	return true
}

// InsertAfter inserts key with the string value immediately after anchor.
// It does nothing and returns false if anchor is missing.
func (m *Mapping) InsertAfter(anchor, key, value string) bool {
	i := m.Index(anchor)
	if i < 0 {
		return false
	}
	at := 2*i + 2
	content := make([]*yaml.Node, 0, len(m.n.Content)+2)
	content = append(content, m.n.Content[:at]...)
	content = append(content, scalar(key), scalar(value))
	content = append(content, m.n.Content[at:]...)
	m.n.Content = content
	return true
}

// RenameKey renames every key equal to old, keeping its value and
// position, and returns the number of keys renamed.
func (m *Mapping) RenameKey(old, new string) int {
	n := 0
	for i := 0; i+1 < len(m.n.Content); i += 2 {
		if k := m.n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == old {
			k.Value = new
			k.Style &^= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
			n++
		}
	}
	return n
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// A KeyValue is one entry of a mapping in the result of Plain.
type KeyValue struct {
	Key   string
	Value any
}

// Plain converts d to plain Go values for comparisons:
// mappings become []KeyValue, sequences []any, and scalars strings.
// Comments and styles are dropped.
func Plain(d *Document) any {
	return plain(d.body())
}

func plain(n *yaml.Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		kv := []KeyValue{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			kv = append(kv, KeyValue{n.Content[i].Value, plain(n.Content[i+1])})
		}
		return kv
	case yaml.SequenceNode:
		list := []any{}
		for _, c := range n.Content {
			list = append(list, plain(c))
		}
		return list
	case yaml.AliasNode:
		return plain(n.Alias)
	}
	return n.Value
}
