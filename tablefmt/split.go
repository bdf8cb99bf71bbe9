// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import "strings"

// Delimiter separates fields within a line.
const Delimiter = "|"

// separator joins fields on output.
const separator = " " + Delimiter + " "

// Mode is the document-wide column layout. It is decided once per document
// by DetectMode and then applied to every line.
type Mode int

const (
	// ModeBasic lays lines out as declarator | content | comment.
	ModeBasic Mode = iota
	// ModeAnnotated lays lines out as annotation | declarator | content | comment.
	ModeAnnotated
)

// Columns returns the number of structural (padded) columns, excluding the
// trailing comment.
func (m Mode) Columns() int {
	if m == ModeAnnotated {
		return 3
	}
	return 2
}

// String returns "basic" or "annotated".
func (m Mode) String() string {
	if m == ModeAnnotated {
		return "annotated"
	}
	return "basic"
}

// DetectMode returns ModeAnnotated when any line has enough delimiters to
// fill an annotation column (four or more segments), ModeBasic otherwise.
func DetectMode(lines []string) Mode {
	for _, line := range lines {
		if strings.Count(line, Delimiter) >= ModeAnnotated.Columns() {
			return ModeAnnotated
		}
	}
	return ModeBasic
}

// SplitLine tokenizes line into mode.Columns() trimmed fields and a comment.
// Missing fields are empty. Everything after the last structural delimiter
// is the comment, kept verbatim apart from trimming, so delimiters inside it
// survive.
func SplitLine(line string, mode Mode) (fields []string, comment string) {
	n := mode.Columns()
	segments := strings.SplitN(line, Delimiter, n+1)
	fields = make([]string, n)
	for i := 0; i < n && i < len(segments); i++ {
		fields[i] = strings.TrimSpace(segments[i])
	}
	if len(segments) > n {
		comment = strings.TrimSpace(segments[n])
	}
	return fields, comment
}
