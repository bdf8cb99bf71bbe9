// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package diffview renders formatting edits as a zero-context unified diff
// and optionally colorizes it for a terminal.
package diffview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"

	"github.com/framegrace/sftext/tablefmt"
)

const defaultStyleName = "catppuccin-mocha"

// Unified renders edits against lines as a unified diff with no context
// lines. Consecutive edited lines share a hunk. Returns "" for no edits.
func Unified(name string, lines []string, edits []tablefmt.Edit) string {
	if len(edits) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)
	for start := 0; start < len(edits); {
		end := start + 1
		for end < len(edits) && edits[end].Line == edits[end-1].Line+1 {
			end++
		}
		hunk := edits[start:end]
		first := hunk[0].Line + 1
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", hunkRange(first, len(hunk)), hunkRange(first, len(hunk)))
		for _, e := range hunk {
			old := ""
			if e.Line < len(lines) {
				old = lines[e.Line]
			}
			b.WriteString("-" + old + "\n")
		}
		for _, e := range hunk {
			b.WriteString("+" + e.Text + "\n")
		}
		start = end
	}
	return b.String()
}

func hunkRange(first, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", first)
	}
	return fmt.Sprintf("%d,%d", first, count)
}

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// Write writes diff to w, colorized with the named Chroma style when color
// is set. Colorizing falls back to plain output if the lexer fails.
func Write(w io.Writer, diff string, color bool, style string) error {
	if !color || diff == "" {
		_, err := io.WriteString(w, diff)
		return err
	}
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, diff)
	if err != nil {
		_, err = io.WriteString(w, diff)
		return err
	}
	return formatters.TTY256.Format(w, chromaStyle(style), iterator)
}

// ShouldColor reports whether output to f should be colorized: f must be a
// terminal and NO_COLOR must be unset.
func ShouldColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
