// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"reflect"
	"testing"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Mode
	}{
		{"empty", nil, ModeBasic},
		{"basic", []string{"a | b | c", "d | e"}, ModeBasic},
		{"one annotated line", []string{"a | b", "@ | a | b | c"}, ModeAnnotated},
		{"delimiters in comment", []string{"a | b | c|d"}, ModeAnnotated},
		{"no delimiters", []string{"plain text"}, ModeBasic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMode(tt.lines); got != tt.want {
				t.Errorf("DetectMode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModeColumns(t *testing.T) {
	if ModeBasic.Columns() != 2 {
		t.Errorf("basic columns = %d", ModeBasic.Columns())
	}
	if ModeAnnotated.Columns() != 3 {
		t.Errorf("annotated columns = %d", ModeAnnotated.Columns())
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		mode        Mode
		wantFields  []string
		wantComment string
	}{
		{"basic", " a | bb | note ", ModeBasic, []string{"a", "bb"}, "note"},
		{"basic no comment", "a|b", ModeBasic, []string{"a", "b"}, ""},
		{"missing fields", "only", ModeBasic, []string{"only", ""}, ""},
		{"empty line", "", ModeBasic, []string{"", ""}, ""},
		{"comment keeps delimiters", "a|b|c|d", ModeBasic, []string{"a", "b"}, "c|d"},
		{"annotated", "@ | x | y | c1 | c2 ", ModeAnnotated, []string{"@", "x", "y"}, "c1 | c2"},
		{"annotated short line", "decl | content", ModeAnnotated, []string{"decl", "content", ""}, ""},
		{"full-width spaces trimmed", "　全角　|x", ModeBasic, []string{"全角", "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, comment := SplitLine(tt.line, tt.mode)
			if !reflect.DeepEqual(fields, tt.wantFields) {
				t.Errorf("fields = %q, want %q", fields, tt.wantFields)
			}
			if comment != tt.wantComment {
				t.Errorf("comment = %q, want %q", comment, tt.wantComment)
			}
		})
	}
}
