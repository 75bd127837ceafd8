// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pysrc splits Python source files into top-level statements.
//
// It is not a Python parser. It knows enough of the lexical structure
// (string literals, brackets, comments and line continuations) to find
// where each top-level logical line ends, and it recognizes the simple
// assignment form
//
//	NAME = value
//
// at column zero. Everything else is kept as opaque text, so a file that
// is parsed and formatted again without edits comes back byte for byte.
package pysrc

import (
	"errors"
	"strings"
)

// A File is the ordered list of top-level statements of one source file.
type File struct {
	Name  string
	Stmts []Stmt
}

// A Stmt is a top-level statement: an *Assign or an *Other.
type Stmt interface {
	// Text returns the statement's source text, including the
	// trailing newline.
	Text() string
	stmt()
}

// An Other is any top-level logical line that is not a simple assignment,
// including blank lines, comments and indented blocks.
type Other struct {
	Line int
	Raw  string
}

func (o *Other) Text() string { return o.Raw }
func (*Other) stmt()          {}

// An Assign is a top-level NAME = value statement.
type Assign struct {
	Name  string
	Line  int
	Value Value

	lead  string // "NAME = "
	trail string // trailing comment and newline
	raw   string
	dirty bool
}

func (*Assign) stmt() {}

func (a *Assign) Text() string {
	if !a.dirty {
		return a.raw
	}
	return a.lead + a.Value.Source() + a.trail
}

// SetValue replaces the assigned value.
func (a *Assign) SetValue(v Value) {
	a.Value = v
	a.dirty = true
}

// SetText replaces the assigned value with a string literal holding text.
// Leading and trailing newlines follow the literal being replaced, so that
//
//	DOC = """
//	...
//	"""
//
// keeps its shape.
func (a *Assign) SetText(text string) {
	old := "\n"
	if s, ok := a.Value.(*String); ok {
		old = s.Text
	}
	text = strings.Trim(text, "\n")
	if strings.HasPrefix(old, "\n") {
		text = "\n" + text
	}
	if strings.HasSuffix(old, "\n") {
		text += "\n"
	}
	a.SetValue(&String{Text: text})
}

// A Value is the right-hand side of an Assign: a *String or an *Expr.
type Value interface {
	Source() string
}

// A String is a value made only of string literals.
// Adjacent literals, optionally wrapped in parentheses, are concatenated.
type String struct {
	Text string // value after unescaping
	src  string
}

// Source returns the literal as it appeared in the file, or a
// triple-quoted rendering of Text for a String built in memory.
func (s *String) Source() string {
	if s.src != "" {
		return s.src
	}
	return Quote(s.Text)
}

// An Expr is any other value, kept verbatim.
type Expr struct {
	Src string
}

func (e *Expr) Source() string { return e.Src }

// Format returns the source text of the whole file.
func (f *File) Format() []byte {
	var b strings.Builder
	for _, s := range f.Stmts {
		b.WriteString(s.Text())
	}
	return []byte(b.String())
}

// SplitHeader returns the leading run of comment and blank lines
// (shebang, license, encoding markers) and the text that follows it.
func (f *File) SplitHeader() (header, body []byte) {
	var h, b strings.Builder
	inHeader := true
	for _, s := range f.Stmts {
		if inHeader {
			if o, ok := s.(*Other); ok && isCommentOrBlank(o.Raw) {
				h.WriteString(o.Raw)
				continue
			}
			inHeader = false
		}
		b.WriteString(s.Text())
	}
	return []byte(h.String()), []byte(b.String())
}

func isCommentOrBlank(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || strings.HasPrefix(t, "#")
}

var (
	errUnterminated = errors.New("unterminated string literal")
	errEOL          = errors.New("end of line in string literal")
	errEOFBracket   = errors.New("unexpected end of file in bracketed expression")
	errUnmatched    = errors.New("unmatched closing bracket")
)

// Parse splits src into top-level statements.
func Parse(name string, src []byte) (*File, error) {
	text := string(src)
	f := &File{Name: name}
	var errs ErrorList
	line := 1
	for off := 0; off < len(text); {
		end, comment, err := scanLogical(text, off)
		if err != nil {
			errs.Add(&Error{Pos: Position{name, line}, Msg: err.Error()})
			break
		}
		chunk := text[off:end]
		if comment >= 0 {
			comment -= off
		}
		f.Stmts = append(f.Stmts, parseStmt(chunk, comment, line))
		line += strings.Count(chunk, "\n")
		off = end
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// scanLogical returns the end of the logical line starting at s[i:],
// just past its newline, and the offset of a comment outside any
// brackets on that line, or -1.
func scanLogical(s string, i int) (end, comment int, err error) {
	comment = -1
	depth := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '#':
			if depth == 0 {
				comment = i
			}
			j := strings.IndexByte(s[i:], '\n')
			if j < 0 {
				return len(s), comment, nil
			}
			i += j
		case '\'', '"':
			j, err := skipString(s, i)
			if err != nil {
				return 0, -1, err
			}
			i = j
		case '\\':
			i++
			if strings.HasPrefix(s[i:], "\r\n") {
				i += 2
			} else if i < len(s) && s[i] == '\n' {
				i++
			}
		case '(', '[', '{':
			depth++
			i++
		case ')', ']', '}':
			if depth == 0 {
				return 0, -1, errUnmatched
			}
			depth--
			i++
		case '\n':
			i++
			if depth == 0 {
				return i, comment, nil
			}
		default:
			i++
		}
	}
	if depth > 0 {
		return 0, -1, errEOFBracket
	}
	return len(s), comment, nil
}

// skipString returns the offset just past the string literal whose
// opening quote is at s[i].
func skipString(s string, i int) (int, error) {
	q := s[i]
	if delim := strings.Repeat(string(q), 3); strings.HasPrefix(s[i:], delim) {
		for j := i + 3; j < len(s); j++ {
			switch {
			case s[j] == '\\':
				j++
			case strings.HasPrefix(s[j:], delim):
				return j + 3, nil
			}
		}
		return 0, errUnterminated
	}
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1, nil
		case '\n':
			return 0, errEOL
		}
	}
	return 0, errUnterminated
}

func parseStmt(chunk string, comment, line int) Stmt {
	other := &Other{Line: line, Raw: chunk}
	n := identLen(chunk)
	if n == 0 {
		return other
	}
	k := n
	for k < len(chunk) && (chunk[k] == ' ' || chunk[k] == '\t') {
		k++
	}
	if k >= len(chunk) || chunk[k] != '=' || strings.HasPrefix(chunk[k:], "==") {
		return other
	}
	k++
	for k < len(chunk) && (chunk[k] == ' ' || chunk[k] == '\t') {
		k++
	}
	end := len(chunk)
	if comment >= 0 {
		end = comment
	}
	src := strings.TrimRight(chunk[k:end], " \t\r\n")
	if src == "" {
		return other
	}
	return &Assign{
		Name:  chunk[:n],
		Line:  line,
		Value: parseValue(src),
		lead:  chunk[:k],
		trail: chunk[k+len(src):],
		raw:   chunk,
	}
}

func identLen(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || n > 0 && '0' <= c && c <= '9' {
			n++
			continue
		}
		break
	}
	return n
}

func parseValue(src string) Value {
	if text, ok := parseStrings(src); ok {
		return &String{Text: text, src: src}
	}
	return &Expr{Src: src}
}

// parseStrings decodes src if it consists only of string literals.
func parseStrings(src string) (string, bool) {
	s := src
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	n := 0
	for {
		s = skipBlank(s)
		if s == "" {
			break
		}
		p := 0
		for p < len(s) && ('a' <= s[p] && s[p] <= 'z' || 'A' <= s[p] && s[p] <= 'Z') {
			p++
		}
		prefix := strings.ToLower(s[:p])
		if prefix != "" && prefix != "r" && prefix != "u" || p >= len(s) || s[p] != '"' && s[p] != '\'' {
			return "", false
		}
		end, err := skipString(s, p)
		if err != nil {
			return "", false
		}
		q := 1
		if end-p >= 6 && s[p+1] == s[p] && s[p+2] == s[p] {
			q = 3
		}
		body := s[p+q : end-q]
		if prefix == "r" {
			b.WriteString(body)
		} else {
			b.WriteString(unescape(body))
		}
		n++
		s = s[end:]
	}
	return b.String(), n > 0
}

func skipBlank(s string) string {
	for s != "" {
		switch {
		case s[0] == ' ' || s[0] == '\t' || s[0] == '\r' || s[0] == '\n':
			s = s[1:]
		case strings.HasPrefix(s, "\\\n"):
			s = s[2:]
		case s[0] == '#':
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = s[i:]
			} else {
				s = ""
			}
		default:
			return s
		}
	}
	return s
}
