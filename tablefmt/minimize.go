// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tablefmt

// minimize removes whitespace common to every row of a column. For each
// column it finds the smallest number of whole blocks any row could give up
// and strips exactly that many from every row, so all rows still end at the
// same position. Plans are modified in place.
func minimize(plans [][]padding, m Metrics) {
	columns := 0
	for _, p := range plans {
		columns = max(columns, len(p))
	}
	for ci := 0; ci < columns; ci++ {
		units := -1
		for _, p := range plans {
			if p == nil {
				continue
			}
			r := p[ci].removable(m)
			if units < 0 || r < units {
				units = r
			}
		}
		if units <= 0 {
			continue
		}
		for _, p := range plans {
			if p == nil {
				continue
			}
			p[ci] = p[ci].strip(units, m)
		}
	}
}
