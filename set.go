// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package dfinit

import (
	"fmt"
	"os"
)

// FileSet is a list of files to obtain configuration from in descending
// order of precedence, like a per-install init.txt layered over the
// distribution's defaults.
type FileSet []*File

// ParseFiles parses the init files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the
// same as the number of arguments. ParseFiles stops on the first error, but
// ignores missing file errors, instead filling the corresponding element of
// the set with a nil *File.
func ParseFiles(paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse init files: %w", err)
		}
		parsed, err := Parse(f)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("parse init files: %s: %w", p, err)
		}
		fset = append(fset, parsed)
	}
	return fset, nil
}

// Get returns the value for the key from the first file in the set that has
// an entry for it, or the empty string if none does. Within each file the
// last entry wins, as in File.Get. Nil files are skipped.
func (fset FileSet) Get(key string) string {
	for _, f := range fset {
		if v, ok := f.get(key); ok {
			return v
		}
	}
	return ""
}

// Find returns all values for the key across the set, lowest precedence
// file first. Within each file, values appear in file order.
func (fset FileSet) Find(key string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		values = append(values, fset[i].Find(key)...)
	}
	return values
}

// Map returns the merged entries of the set, with entries in higher
// precedence files overriding lower ones. Map returns nil for a set with no
// entries.
func (fset FileSet) Map() map[string]string {
	var merged map[string]string
	for i := len(fset) - 1; i >= 0; i-- {
		for k, v := range fset[i].Map() {
			if merged == nil {
				merged = make(map[string]string)
			}
			merged[k] = v
		}
	}
	return merged
}

// Set sets the value for a key on the first file in the set and deletes the
// key from every other file, making the first file authoritative for that
// key. If fset[0] == nil, Set allocates a new File. Set panics if
// len(fset) == 0. Invalid keys or values are reported the same way as by
// File.Set, with no file modified.
func (fset FileSet) Set(key, value string) error {
	if fset[0] == nil {
		fset[0] = new(File)
	}
	if err := fset[0].Set(key, value); err != nil {
		return err
	}
	fset[1:].Delete(key)
	return nil
}

// Add appends an entry to the first file in the set. If fset[0] == nil, Add
// allocates a new File. Add panics if len(fset) == 0.
func (fset FileSet) Add(key, value string) error {
	if fset[0] == nil {
		fset[0] = new(File)
	}
	return fset[0].Add(key, value)
}

// Delete removes every entry with the key from every file in the set and
// returns the total number of entries removed. Nil files are skipped.
func (fset FileSet) Delete(key string) int {
	n := 0
	for _, f := range fset {
		if f != nil {
			n += f.Delete(key)
		}
	}
	return n
}
