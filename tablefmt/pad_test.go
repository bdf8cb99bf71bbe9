// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

import (
	"errors"
	"reflect"
	"testing"
)

func TestPad(t *testing.T) {
	m := testMetrics(2, 1)
	tests := []struct {
		name       string
		field, max Length
		want       string
	}{
		{"exact fit", Length{Blocks: 1, HalfRem: 1}, Length{Blocks: 1, HalfRem: 1}, ""},
		{"one block", Length{HalfRem: 1}, Length{Blocks: 1, HalfRem: 1}, "  "},
		{"remainder only", Length{Blocks: 1}, Length{Blocks: 1, HalfRem: 1}, " "},
		{"full remainder", Length{}, Length{Blocks: 1, HalfRem: 1, FullRem: 1}, "   　"},
		{"clamped", Length{Blocks: 2}, Length{Blocks: 1, HalfRem: 1}, " "},
		{"all clamped", Length{Blocks: 5, HalfRem: 1}, Length{Blocks: 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Pad(tt.field, tt.max); got != tt.want {
				t.Errorf("Pad = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlanBlockFill(t *testing.T) {
	m := testMetrics(2, 1)
	field, colMax := Length{}, Length{Blocks: 2, HalfRem: 1}
	if got := m.plan(field, colMax, FillHalf); got != (padding{half: 5}) {
		t.Errorf("half fill plan = %+v", got)
	}
	if got := m.plan(field, colMax, FillFull); got != (padding{half: 1, full: 2}) {
		t.Errorf("full fill plan = %+v", got)
	}
	if got := (padding{half: 1, full: 2}).String(); got != " 　　" {
		t.Errorf("padding string = %q", got)
	}
}

func TestParseBlockFill(t *testing.T) {
	for in, want := range map[string]BlockFill{"": FillHalf, "half": FillHalf, " FULL ": FillFull} {
		got, err := ParseBlockFill(in)
		if err != nil || got != want {
			t.Errorf("ParseBlockFill(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseBlockFill("wide"); !errors.Is(err, ErrInvalidBlockFill) {
		t.Errorf("expected ErrInvalidBlockFill, got %v", err)
	}
}

func TestMinimizeStripsCommonBlocks(t *testing.T) {
	m := testMetrics(2, 1)
	plans := [][]padding{
		{{half: 5}, {half: 1}},
		{{half: 2, full: 2}, {half: 4}},
		nil, // preserved line
	}
	minimize(plans, m)

	want := [][]padding{
		{{half: 1}, {half: 1}},
		{{half: 2}, {half: 4}},
		nil,
	}
	if !reflect.DeepEqual(plans, want) {
		t.Fatalf("minimize = %+v, want %+v", plans, want)
	}
}

func TestMinimizeFullBeforeHalf(t *testing.T) {
	m := testMetrics(2, 2)
	plans := [][]padding{
		{{half: 2, full: 2}},
		{{half: 4, full: 4}},
	}
	minimize(plans, m)
	// Two blocks are removable from the first row. The second row gives up
	// both from its full-width spaces.
	want := [][]padding{
		{{half: 0, full: 0}},
		{{half: 4, full: 0}},
	}
	if !reflect.DeepEqual(plans, want) {
		t.Fatalf("minimize = %+v, want %+v", plans, want)
	}
}

func TestMinimizeNoCommonExcess(t *testing.T) {
	m := testMetrics(2, 1)
	plans := [][]padding{{{half: 1}}, {{half: 6}}}
	minimize(plans, m)
	if plans[0][0] != (padding{half: 1}) || plans[1][0] != (padding{half: 6}) {
		t.Fatalf("plans changed without removable units: %+v", plans)
	}
}

func TestPadFillMatchesFormat(t *testing.T) {
	opts := asciiOptions()
	opts.BlockFill = FillFull
	m := opts.Metrics()
	colMax := m.Measure("あ")

	if got := m.PadFill(Length{}, colMax, FillFull); got != "　" {
		t.Errorf("PadFill(full) = %q, want one ideographic space", got)
	}
	if got := m.Pad(Length{}, colMax); got != "  " {
		t.Errorf("Pad = %q, want two half-width spaces", got)
	}

	edits, err := Format([]string{"あ | x", " | y"}, opts)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := m.PadFill(Length{}, colMax, opts.BlockFill) + " | y | "
	if len(edits) != 2 || edits[1].Text != want {
		t.Fatalf("edits = %q, want second line %q", edits, want)
	}
}
