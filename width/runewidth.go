// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package width

import "github.com/mattn/go-runewidth"

func init() {
	Register("runewidth", func(cfg Config) (Classifier, error) {
		return NewRuneWidth(boolOption(cfg, "ambiguous_full")), nil
	})
}

// RuneWidth classifies by terminal display width: anything drawn in more
// than one cell is Full. Zero-width runes count as Half.
type RuneWidth struct {
	cond *runewidth.Condition
}

// NewRuneWidth returns a RuneWidth classifier. With ambiguousFull set,
// East Asian ambiguous characters are measured as two cells.
func NewRuneWidth(ambiguousFull bool) *RuneWidth {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = ambiguousFull
	return &RuneWidth{cond: cond}
}

// Classify implements Classifier.
func (c *RuneWidth) Classify(r rune) Class {
	if c.cond.RuneWidth(r) > 1 {
		return Full
	}
	return Half
}
