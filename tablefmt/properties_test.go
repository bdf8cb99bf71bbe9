// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/framegrace/sftext/width"
)

// randomDocument builds lines from a mix of half-width, full-width and
// delimiter characters.
func randomDocument(rng *rand.Rand) []string {
	alphabet := []rune{'a', 'Z', '1', ' ', ' ', 'ｱ', 'あ', '漢', '　', '|', '|', '-'}
	lines := make([]string, 1+rng.Intn(8))
	for i := range lines {
		n := rng.Intn(24)
		rs := make([]rune, n)
		for j := range rs {
			rs[j] = alphabet[rng.Intn(len(alphabet))]
		}
		lines[i] = string(rs)
	}
	return lines
}

// delimiterWidths returns, for each structural delimiter of line, the model
// width of the text before it, scaled by halfUnit*fullUnit so it stays
// integral.
func delimiterWidths(line string, columns int, m Metrics) []int {
	var widths []int
	offset := 0
	for range columns {
		idx := strings.Index(line[offset:], Delimiter)
		if idx < 0 {
			break
		}
		offset += idx
		half, full := width.Count(m.Classifier, line[:offset])
		widths = append(widths, half*m.FullUnit+full*m.HalfUnit)
		offset += len(Delimiter)
	}
	return widths
}

func checkAligned(t *testing.T, lines []string, opts Options) {
	t.Helper()
	m := opts.Metrics()
	mode := DetectMode(lines)
	var ref []int
	for i, line := range lines {
		if opts.PreserveBlankLines && strings.TrimSpace(line) == "" {
			continue
		}
		w := delimiterWidths(line, mode.Columns(), m)
		if len(w) != mode.Columns() {
			t.Fatalf("line %d %q: expected %d delimiters", i, line, mode.Columns())
		}
		if ref == nil {
			ref = w
			continue
		}
		for ci := range w {
			if w[ci] != ref[ci] {
				t.Fatalf("column %d misaligned: line %d %q width %d, want %d\n%q", ci, i, line, w[ci], ref[ci], lines)
			}
		}
	}
}

func paddingVolume(lines []string, mode Mode) int {
	total := 0
	for _, line := range lines {
		segments := strings.SplitN(line, Delimiter, mode.Columns()+1)
		for i := 0; i < mode.Columns() && i < len(segments); i++ {
			s := segments[i]
			total += len([]rune(s)) - len([]rune(strings.TrimRight(s, " 　")))
		}
	}
	return total
}

var propertyConfigs = []Options{
	{HalfUnit: 2, FullUnit: 1},
	{HalfUnit: 1, FullUnit: 1},
	{HalfUnit: 3, FullUnit: 2},
	{HalfUnit: 4, FullUnit: 2, BlockFill: FillFull},
	{HalfUnit: 2, FullUnit: 1, PreserveBlankLines: true},
}

func TestPropertyAlignmentAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 300; iter++ {
		lines := randomDocument(rng)
		for _, opts := range propertyConfigs {
			for _, minimizeOn := range []bool{false, true} {
				opts.Minimize = minimizeOn
				edits, err := Format(lines, opts)
				if err != nil {
					t.Fatalf("Format: %v", err)
				}
				out := Apply(lines, edits)
				checkAligned(t, out, opts)

				again, err := Format(out, opts)
				if err != nil {
					t.Fatalf("Format (second run): %v", err)
				}
				if len(again) != 0 {
					t.Fatalf("not idempotent for %+v: %q -> %q -> %q", opts, lines, out, again)
				}
			}
		}
	}
}

func TestPropertyMinimizerNeverAddsPadding(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for iter := 0; iter < 300; iter++ {
		lines := randomDocument(rng)
		mode := DetectMode(lines)
		for _, opts := range propertyConfigs {
			plainEdits, err := Format(lines, opts)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			opts.Minimize = true
			minEdits, err := Format(lines, opts)
			if err != nil {
				t.Fatalf("Format (minimize): %v", err)
			}
			plain := paddingVolume(Apply(lines, plainEdits), mode)
			minimized := paddingVolume(Apply(lines, minEdits), mode)
			if minimized > plain {
				t.Fatalf("minimizer added padding: %d > %d for %q", minimized, plain, lines)
			}
		}
	}
}

func TestPropertyNonNegativePadding(t *testing.T) {
	m := testMetrics(3, 2)
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 1000; iter++ {
		a := Length{Blocks: rng.Intn(5), HalfRem: rng.Intn(3), FullRem: rng.Intn(2)}
		b := Length{Blocks: rng.Intn(5), HalfRem: rng.Intn(3), FullRem: rng.Intn(2)}
		for _, fill := range []BlockFill{FillHalf, FillFull} {
			p := m.plan(a, b, fill)
			if p.half < 0 || p.full < 0 {
				t.Fatalf("negative padding %+v for field %+v max %+v", p, a, b)
			}
		}
	}
}
