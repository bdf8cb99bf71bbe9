// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package fileset expands command-line roots into the sftext files to format.
// Directories are walked; vendored trees, dot directories and binary files
// are skipped using go-enry's heuristics.
package fileset

import (
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// sniffLen is how many leading bytes are inspected for binary content.
const sniffLen = 8000

// Options controls which files are collected.
type Options struct {
	// Extensions lists accepted file extensions (with the leading dot).
	// Files named explicitly on the command line are accepted regardless.
	Extensions []string
	// SkipVendor skips vendored and dot paths while walking directories.
	SkipVendor bool
}

// Collect returns the files under roots, in walk order with duplicates
// removed. Explicit file roots are always included unless binary.
func Collect(roots []string, opts Options) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		out = append(out, clean)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if binary, err := IsBinary(root); err != nil {
				return nil, err
			} else if binary {
				log.Printf("[FILESET] Skipping binary file %s", root)
				continue
			}
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && opts.SkipVendor && skipPath(root, path, d) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !opts.Match(path) {
				return nil
			}
			binary, err := IsBinary(path)
			if err != nil {
				return err
			}
			if binary {
				log.Printf("[FILESET] Skipping binary file %s", path)
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Match reports whether path has one of the configured extensions.
func (o Options) Match(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range o.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func skipPath(root, path string, d fs.DirEntry) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if d.IsDir() {
		rel += "/"
	}
	return enry.IsDotFile(d.Name()) || enry.IsVendor(rel)
}

// IsBinary reports whether the file at path looks like binary data.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return enry.IsBinary(buf[:n]), nil
}
