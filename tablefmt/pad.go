// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"fmt"
	"strings"
)

const (
	halfSpace = " "
	fullSpace = "　" // IDEOGRAPHIC SPACE
)

// BlockFill selects which space character fills whole-block differences.
type BlockFill int

const (
	// FillHalf pads block differences with HalfUnit half-width spaces per block.
	FillHalf BlockFill = iota
	// FillFull pads block differences with FullUnit full-width spaces per block.
	FillFull
)

// String returns the config name of the fill.
func (f BlockFill) String() string {
	if f == FillFull {
		return "full"
	}
	return "half"
}

// ParseBlockFill parses "half" or "full". The empty string means "half".
func ParseBlockFill(s string) (BlockFill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "half":
		return FillHalf, nil
	case "full":
		return FillFull, nil
	}
	return FillHalf, fmt.Errorf("%w: %q", ErrInvalidBlockFill, s)
}

// padding is the planned whitespace after one field, counted per class.
type padding struct {
	half int
	full int
}

// String renders the padding: half-width spaces first, then full-width.
func (p padding) String() string {
	if p.half <= 0 && p.full <= 0 {
		return ""
	}
	return strings.Repeat(halfSpace, max(p.half, 0)) + strings.Repeat(fullSpace, max(p.full, 0))
}

// removable reports how many whole blocks could be stripped from p.
func (p padding) removable(m Metrics) int {
	return p.full/m.FullUnit + p.half/m.HalfUnit
}

// strip removes up to units whole blocks, full-width spaces first.
func (p padding) strip(units int, m Metrics) padding {
	for units > 0 && p.full >= m.FullUnit {
		p.full -= m.FullUnit
		units--
	}
	for units > 0 && p.half >= m.HalfUnit {
		p.half -= m.HalfUnit
		units--
	}
	return p
}

// plan computes the padding that widens a field of length field to columnMax.
// A columnMax smaller than field in any component contributes nothing for
// that component.
func (m Metrics) plan(field, columnMax Length, fill BlockFill) padding {
	diff := columnMax.Sub(field)
	p := padding{half: diff.HalfRem, full: diff.FullRem}
	if fill == FillFull {
		p.full += m.FullUnit * diff.Blocks
	} else {
		p.half += m.HalfUnit * diff.Blocks
	}
	return p
}

// Pad returns the whitespace that right-pads a field of length field to
// columnMax with the default FillHalf. Use PadFill to match Options with
// FillFull.
func (m Metrics) Pad(field, columnMax Length) string {
	return m.PadFill(field, columnMax, FillHalf)
}

// PadFill is Pad with an explicit block fill, as Format applies it.
func (m Metrics) PadFill(field, columnMax Length, fill BlockFill) string {
	return m.plan(field, columnMax, fill).String()
}

// planPadding plans the padding of every structural field. Rows that are nil
// (preserved lines) get a nil plan.
func planPadding(rows []*Row, maxima []Length, m Metrics, fill BlockFill) [][]padding {
	plans := make([][]padding, len(rows))
	for ri, row := range rows {
		if row == nil {
			continue
		}
		plans[ri] = make([]padding, len(maxima))
		for ci, colMax := range maxima {
			plans[ri][ci] = m.plan(row.Fields[ci].Length, colMax, fill)
		}
	}
	return plans
}
