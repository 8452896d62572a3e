// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package dfinit reads and writes Dwarf Fortress-style init.txt configuration
files.

This package is specifically designed for read-modify-write scenarios: it
preserves line order, comments, and blank lines, and edits existing values
in-place, so a file loaded with ParseString or ReadFile can be written back
without disturbing anything the caller did not change.

# Syntax

An init file is plain text. Lines are separated by a carriage return and line
feed ("\r\n"); on input a bare line feed is tolerated. Each line is one of:

  - An entry, a key and a value wrapped in square brackets and separated by a
    colon:

      [SOUND:YES]

    Keys are one or more ASCII letters or digits. Values are one or more
    ASCII letters, digits, or colons. The key ends at the first colon and the
    value extends to the closing bracket, so a value may itself contain
    colons:

      [DIM:257:257]

    parses as key "DIM" with value "257:257".

  - A blank line: empty or whitespace only.

  - A comment: any other line, including near-entries such as "[FPS]" or
    "[TRUE TYPE:YES]" that do not satisfy the entry grammar. Comment text is
    stored verbatim and re-emitted untouched.

There are no escape sequences and no inline comments. Whitespace at the end
of a line is ignored when deciding whether the line is an entry, but comment
lines always keep their original text.

# Repeated keys

A file may contain multiple entries with the same key. When retrieving in a
single-value context (like File.Get or File.Map), the last occurrence in file
order wins. File.Set updates every occurrence in place; File.Add appends
another occurrence.
*/
package dfinit
