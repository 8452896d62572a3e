// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package dfinit

import (
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"unicode"
)

// A File is a parsed init file: an ordered sequence of entry, comment, and
// blank lines. The zero value is an empty file. A File may be read by
// multiple goroutines concurrently as long as none of them mutates it.
type File struct {
	lines []line
}

type lineKind int

const (
	blankLine lineKind = iota
	commentLine
	entryLine
)

// A line is one classified physical line. raw is set for comments only and
// holds the original text verbatim; key and value are set for entries only.
type line struct {
	kind  lineKind
	raw   string
	key   string
	value string
}

// entryPattern is the entry grammar. The key stops at the first colon; the
// value runs to the closing bracket and may contain further colons.
var entryPattern = regexp.MustCompile(`^\[([0-9A-Za-z]+):([0-9A-Za-z:]+)\]$`)

func classifyLine(raw string) line {
	trimmed := strings.TrimRightFunc(raw, unicode.IsSpace)
	if trimmed == "" {
		return line{kind: blankLine}
	}
	if m := entryPattern.FindStringSubmatch(trimmed); m != nil {
		return line{kind: entryLine, key: m[1], value: m[2]}
	}
	return line{kind: commentLine, raw: raw}
}

// Parse reads all of r and parses it as an init file.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse. Parsing cannot fail: any line that does not match the
// entry grammar is kept as a comment. The returned error is non-nil only if
// reading from r fails.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse init file: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString parses text as an init file. Lines are split on "\n",
// tolerating a preceding "\r". A trailing line separator parses as a final
// blank line, so String gives back the input text byte for byte.
func ParseString(text string) *File {
	f := new(File)
	if text == "" {
		return f
	}
	split := strings.Split(text, "\n")
	f.lines = make([]line, 0, len(split))
	for _, raw := range split {
		raw, _ = strings.CutSuffix(raw, "\r")
		f.lines = append(f.lines, classifyLine(raw))
	}
	return f
}

// Get returns the value of the last entry with the given key, or the empty
// string if the file has no entry for it. Keys are case-sensitive. Valid
// entries never have an empty value, so an empty result always means the key
// is absent.
func (f *File) Get(key string) string {
	v, _ := f.get(key)
	return v
}

func (f *File) get(key string) (_ string, ok bool) {
	if f == nil {
		return "", false
	}
	for i := len(f.lines) - 1; i >= 0; i-- {
		ln := &f.lines[i]
		if ln.kind == entryLine && ln.key == key {
			return ln.value, true
		}
	}
	return "", false
}

// Find returns the values of every entry with the given key, in file order.
func (f *File) Find(key string) []string {
	if f == nil {
		return nil
	}
	var values []string
	for _, ln := range f.lines {
		if ln.kind == entryLine && ln.key == key {
			values = append(values, ln.value)
		}
	}
	return values
}

// Len returns the number of entries in the file. Comment and blank lines are
// not counted.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	n := 0
	for _, ln := range f.lines {
		if ln.kind == entryLine {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the file has no entries. A file of only comment
// and blank lines is empty.
func (f *File) IsEmpty() bool {
	return f.Len() == 0
}

// Keys returns an iterator over the key of every entry in file order.
// Repeated keys are yielded once per occurrence.
func (f *File) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if f == nil {
			return
		}
		for _, ln := range f.lines {
			if ln.kind != entryLine {
				continue
			}
			if !yield(ln.key) {
				return
			}
		}
	}
}

// Entries returns an iterator over the key and value of every entry in file
// order. Repeated keys are yielded once per occurrence.
func (f *File) Entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if f == nil {
			return
		}
		for _, ln := range f.lines {
			if ln.kind != entryLine {
				continue
			}
			if !yield(ln.key, ln.value) {
				return
			}
		}
	}
}

// Map returns the file's entries as a map. When a key is repeated, the last
// occurrence in file order wins, matching Get. Map returns nil for a file
// with no entries.
func (f *File) Map() map[string]string {
	if f == nil {
		return nil
	}
	var m map[string]string
	for _, ln := range f.lines {
		if ln.kind != entryLine {
			continue
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[ln.key] = ln.value
	}
	return m
}

// Set sets the value for a key. If the file already has entries with the
// key, every one of them is updated in place, keeping its position;
// otherwise a single new entry is appended at the end of the file.
//
// Set returns an error wrapping ErrInvalidKey or ErrInvalidValue if
// IsValidKey(key) or IsValidValue(value) report false, leaving the file
// unchanged.
func (f *File) Set(key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("set init value %q: %w", key, ErrInvalidKey)
	}
	if !IsValidValue(value) {
		return fmt.Errorf("set init value %q: %w", key, ErrInvalidValue)
	}
	wrote := false
	for i := range f.lines {
		ln := &f.lines[i]
		if ln.kind == entryLine && ln.key == key {
			ln.value = value
			wrote = true
		}
	}
	if !wrote {
		f.lines = append(f.lines, line{kind: entryLine, key: key, value: value})
	}
	return nil
}

// Add appends a new entry at the end of the file, even if the key already
// has entries. Use Set to change an existing value in place.
//
// Add returns an error wrapping ErrInvalidKey or ErrInvalidValue if
// IsValidKey(key) or IsValidValue(value) report false, leaving the file
// unchanged.
func (f *File) Add(key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("add init value %q: %w", key, ErrInvalidKey)
	}
	if !IsValidValue(value) {
		return fmt.Errorf("add init value %q: %w", key, ErrInvalidValue)
	}
	f.lines = append(f.lines, line{kind: entryLine, key: key, value: value})
	return nil
}

// Delete removes every entry with the given key and returns the number of
// entries removed. The relative order of all remaining lines is preserved.
func (f *File) Delete(key string) int {
	n := 0
	deleted := 0
	for i := range f.lines {
		if f.lines[i].kind == entryLine && f.lines[i].key == key {
			deleted++
			continue
		}
		f.lines[n] = f.lines[i]
		n++
	}
	for i := n; i < len(f.lines); i++ {
		// Zero out truncated elements for garbage collection.
		f.lines[i] = line{}
	}
	f.lines = f.lines[:n]
	return deleted
}

// String renders the file back to text. Lines are joined with "\r\n": blank
// lines render as empty lines, comment lines render verbatim, and entries
// render as "[KEY:VALUE]". No separator follows the final line.
func (f *File) String() string {
	if f == nil {
		return ""
	}
	sb := new(strings.Builder)
	for i, ln := range f.lines {
		if i > 0 {
			sb.WriteString("\r\n")
		}
		switch ln.kind {
		case commentLine:
			sb.WriteString(ln.raw)
		case entryLine:
			sb.WriteByte('[')
			sb.WriteString(ln.key)
			sb.WriteByte(':')
			sb.WriteString(ln.value)
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler. It renders the same text as
// String and never returns an error.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, replacing any lines in
// f with the parsed text. The returned error is always nil: see ParseString.
func (f *File) UnmarshalText(data []byte) error {
	*f = *ParseString(string(data))
	return nil
}

// IsValidKey reports whether a string can be used as an entry key. Keys are
// one or more ASCII letters or digits.
func IsValidKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if !isAlphanumeric(key[i]) {
			return false
		}
	}
	return true
}

// IsValidValue reports whether a string can be used as an entry value.
// Values are one or more ASCII letters, digits, or colons.
func IsValidValue(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if !isAlphanumeric(value[i]) && value[i] != ':' {
			return false
		}
	}
	return true
}

func isAlphanumeric(c byte) bool {
	return '0' <= c && c <= '9' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z'
}
