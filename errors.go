// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package dfinit

import "errors"

// ErrInvalidKey is returned (wrapped) by Set and Add when the given key is
// empty or contains characters outside the key grammar. Use IsValidKey to
// check a key in advance.
var ErrInvalidKey = errors.New("invalid key")

// ErrInvalidValue is returned (wrapped) by Set and Add when the given value
// is empty or contains characters outside the value grammar. Use
// IsValidValue to check a value in advance.
var ErrInvalidValue = errors.New("invalid value")
