// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import "github.com/framegrace/sftext/width"

// Length is the measured length of a field. Half-width and full-width runes
// are counted separately; each class collapses into whole blocks of its own
// unit and keeps the leftover as a remainder.
//
// Invariant: 0 <= HalfRem < HalfUnit and 0 <= FullRem < FullUnit.
type Length struct {
	Blocks  int
	HalfRem int
	FullRem int
}

// IsZero reports whether l measures an empty field.
func (l Length) IsZero() bool {
	return l == Length{}
}

// Sub returns l - o component-wise. Negative components are clamped to zero.
func (l Length) Sub(o Length) Length {
	return Length{
		Blocks:  max(l.Blocks-o.Blocks, 0),
		HalfRem: max(l.HalfRem-o.HalfRem, 0),
		FullRem: max(l.FullRem-o.FullRem, 0),
	}
}

// MaxOf returns the component-wise maximum of lengths. Block counts and the
// two remainders are independent budgets, so the result may be wider than
// any single input. No inputs yield the zero Length.
func MaxOf(lengths ...Length) Length {
	var m Length
	for _, l := range lengths {
		m.Blocks = max(m.Blocks, l.Blocks)
		m.HalfRem = max(m.HalfRem, l.HalfRem)
		m.FullRem = max(m.FullRem, l.FullRem)
	}
	return m
}

// Metrics measures text under the mixed-width model: HalfUnit half-width
// runes or FullUnit full-width runes make one block.
type Metrics struct {
	HalfUnit   int
	FullUnit   int
	Classifier width.Classifier
}

// Measure returns the Length of text. Runes are classified per code point.
// Units must be positive; Options.Validate guards this before Format runs.
func (m Metrics) Measure(text string) Length {
	half, full := width.Count(m.Classifier, text)
	return Length{
		Blocks:  half/m.HalfUnit + full/m.FullUnit,
		HalfRem: half % m.HalfUnit,
		FullRem: full % m.FullUnit,
	}
}

// Field is one trimmed structural segment of a row.
type Field struct {
	Text   string
	Length Length
}

// Row is a parsed line: its structural fields and the free-text comment.
type Row struct {
	Fields  []Field
	Comment string
}

// ParseRow splits line according to mode and measures every field.
func (m Metrics) ParseRow(line string, mode Mode) Row {
	texts, comment := SplitLine(line, mode)
	fields := make([]Field, len(texts))
	for i, t := range texts {
		fields[i] = Field{Text: t, Length: m.Measure(t)}
	}
	return Row{Fields: fields, Comment: comment}
}

// columnMaxima returns the maximum Length per column over all non-nil rows.
func columnMaxima(rows []*Row, columns int) []Length {
	maxima := make([]Length, columns)
	for _, row := range rows {
		if row == nil {
			continue
		}
		for ci := range maxima {
			maxima[ci] = MaxOf(maxima[ci], row.Fields[ci].Length)
		}
	}
	return maxima
}
