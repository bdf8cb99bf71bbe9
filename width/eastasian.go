// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package width

import eaw "golang.org/x/text/width"

func init() {
	Register("eastasian", func(cfg Config) (Classifier, error) {
		return EastAsian{AmbiguousFull: boolOption(cfg, "ambiguous_full")}, nil
	})
}

// EastAsian classifies by the Unicode East_Asian_Width property (UAX #11).
// Wide and Fullwidth runes are Full; Narrow, Halfwidth and Neutral are Half.
type EastAsian struct {
	AmbiguousFull bool
}

// Classify implements Classifier.
func (c EastAsian) Classify(r rune) Class {
	switch eaw.LookupRune(r).Kind() {
	case eaw.EastAsianWide, eaw.EastAsianFullwidth:
		return Full
	case eaw.EastAsianAmbiguous:
		if c.AmbiguousFull {
			return Full
		}
	}
	return Half
}
