// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package dfinit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/yourbase/dfinit/internal/retry"
)

// ReadFile reads the init file at path and parses it.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read init file: %w", err)
	}
	return ParseString(string(data)), nil
}

// WriteFile renders f and writes it to path. The write is atomic: the text
// goes to a temporary file in the same directory which is then renamed over
// path, so a concurrent reader sees either the old contents or the new,
// never a partial write.
func WriteFile(path string, f *File) error {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("write init file %s: %w", path, err)
	}
	tmp := path + ".tmp" + hex.EncodeToString(suffix)
	if err := os.WriteFile(tmp, []byte(f.String()), 0644); err != nil {
		return fmt.Errorf("write init file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // Best-effort cleanup.
		return fmt.Errorf("write init file: %w", err)
	}
	return nil
}

// updateBackoff is the wait between UpdateFile attempts.
const updateBackoff = 100 * time.Millisecond

// UpdateFile reads the init file at path, applies fn to it, and writes the
// result back atomically. A missing file starts as an empty File, so
// UpdateFile can create a file from scratch.
//
// Failures to read or write are retried until ctx is done, since the game or
// an editor may hold the file briefly. Every attempt re-reads the file and
// re-applies fn, so fn may be called more than once and must be safe to
// repeat. An error returned by fn is permanent: UpdateFile returns it
// immediately without writing.
func UpdateFile(ctx context.Context, path string, fn func(*File) error) error {
	var fnErr error
	err := retry.Do(ctx, "updating "+path, retry.Constant(updateBackoff), func() error {
		f, err := ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			f = new(File)
		} else if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			fnErr = err
			return nil
		}
		return WriteFile(path, f)
	})
	if fnErr != nil {
		return fnErr
	}
	return err
}
