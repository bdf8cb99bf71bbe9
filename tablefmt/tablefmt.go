// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package tablefmt aligns pipe-delimited sftext lines
// (annotation | declarator | content | comment) under a mixed-width model in
// which half-width characters take half the space of full-width ones.
//
// Formatting runs in fixed stages over the whole document: detect the column
// mode, split and measure every field, take the per-column maximum, plan the
// padding (optionally minimizing it) and reassemble each line. Only lines
// whose text changes produce an Edit.
package tablefmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/framegrace/sftext/width"
)

var (
	// ErrInvalidUnit is returned when HalfUnit or FullUnit is not positive.
	ErrInvalidUnit = errors.New("tablefmt: block unit must be at least 1")
	// ErrInvalidBlockFill is returned for an unknown block fill name.
	ErrInvalidBlockFill = errors.New("tablefmt: invalid block fill")
)

// defaultClassifier backs Options without an explicit Classifier.
var defaultClassifier width.Classifier = mustCharset(width.DefaultCharset)

func mustCharset(list string) width.Classifier {
	c, err := width.NewCharset(list)
	if err != nil {
		panic(err)
	}
	return c
}

// Options configures a formatting run.
type Options struct {
	// HalfUnit is the number of half-width characters in one block.
	HalfUnit int
	// FullUnit is the number of full-width characters in one block.
	FullUnit int
	// Classifier decides the width class of each rune. Nil selects the
	// default charset classifier (printable ASCII and half-width katakana).
	Classifier width.Classifier
	// Minimize strips whitespace common to all rows of a column.
	Minimize bool
	// BlockFill selects the space used for whole-block differences.
	BlockFill BlockFill
	// PreserveBlankLines leaves whitespace-only lines untouched instead of
	// rewriting them as empty rows.
	PreserveBlankLines bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		HalfUnit:           2,
		FullUnit:           1,
		Classifier:         defaultClassifier,
		PreserveBlankLines: true,
	}
}

// Validate reports configuration errors that would corrupt block counts.
func (o Options) Validate() error {
	if o.HalfUnit < 1 {
		return fmt.Errorf("%w: half unit %d", ErrInvalidUnit, o.HalfUnit)
	}
	if o.FullUnit < 1 {
		return fmt.Errorf("%w: full unit %d", ErrInvalidUnit, o.FullUnit)
	}
	if o.BlockFill != FillHalf && o.BlockFill != FillFull {
		return fmt.Errorf("%w: %d", ErrInvalidBlockFill, o.BlockFill)
	}
	return nil
}

// Metrics returns the measurement model described by o.
func (o Options) Metrics() Metrics {
	c := o.Classifier
	if c == nil {
		c = defaultClassifier
	}
	return Metrics{HalfUnit: o.HalfUnit, FullUnit: o.FullUnit, Classifier: c}
}

// Edit replaces the text of line Line (0-based) with Text.
type Edit struct {
	Line int
	Text string
}

// Format aligns lines and returns one Edit per line whose text changed, in
// line order. It does not modify lines.
func Format(lines []string, opts Options) ([]Edit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := opts.Metrics()
	mode := DetectMode(lines)

	rows := make([]*Row, len(lines))
	for i, line := range lines {
		if opts.PreserveBlankLines && strings.TrimSpace(line) == "" {
			continue
		}
		row := m.ParseRow(line, mode)
		rows[i] = &row
	}

	maxima := columnMaxima(rows, mode.Columns())
	plans := planPadding(rows, maxima, m, opts.BlockFill)
	if opts.Minimize {
		minimize(plans, m)
	}

	var edits []Edit
	for i, row := range rows {
		if row == nil {
			continue
		}
		text := assemble(row, plans[i])
		if text != lines[i] {
			edits = append(edits, Edit{Line: i, Text: text})
		}
	}
	return edits, nil
}

// assemble joins padded fields and the comment with the separator. The
// separator before the comment is written even when the comment is empty.
func assemble(row *Row, plan []padding) string {
	var b strings.Builder
	for i, f := range row.Fields {
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(f.Text)
		b.WriteString(plan[i].String())
	}
	b.WriteString(separator)
	b.WriteString(row.Comment)
	return b.String()
}

// Apply returns a copy of lines with edits applied. Edits outside the range
// of lines are ignored.
func Apply(lines []string, edits []Edit) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	for _, e := range edits {
		if e.Line >= 0 && e.Line < len(out) {
			out[e.Line] = e.Text
		}
	}
	return out
}

// SplitText splits a document into lines. It reports the newline style
// ("\r\n" if present anywhere, else "\n") and whether the text ends with one.
func SplitText(text string) (lines []string, nl string, final bool) {
	nl = "\n"
	if strings.Contains(text, "\r\n") {
		nl = "\r\n"
	}
	if text == "" {
		return nil, nl, false
	}
	body, final := strings.CutSuffix(text, nl)
	return strings.Split(body, nl), nl, final
}

// FormatText formats a whole document. The newline style and the presence
// of a final newline are preserved. The second result reports whether any
// line changed.
func FormatText(text string, opts Options) (string, bool, error) {
	if text == "" {
		return text, false, opts.Validate()
	}
	lines, nl, final := SplitText(text)
	edits, err := Format(lines, opts)
	if err != nil {
		return "", false, err
	}
	if len(edits) == 0 {
		return text, false, nil
	}
	out := strings.Join(Apply(lines, edits), nl)
	if final {
		out += nl
	}
	return out, true, nil
}
