// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"math"
	"slices"

	"github.com/danielhkuo/quickly-poll/models"
)

// Row is one option's share of the vote
type Row struct {
	Option  string `json:"option"`
	Votes   int    `json:"votes"`
	Percent int    `json:"percent"`
}

type Tally struct {
	Total int   `json:"total"`
	Rows  []Row `json:"rows"`
}

// Tabulate counts p's votes per option. Declared options come first in
// declaration order, zero-vote ones included; votes for anything else follow
// sorted by value.
func Tabulate(p *models.Poll) Tally {
	counts := make(map[string]int)
	for _, option := range p.Votes {
		counts[option]++
	}
	total := len(p.Votes)

	t := Tally{Total: total, Rows: make([]Row, 0, len(p.Options))}
	seen := make(map[string]bool, len(p.Options))

	for _, option := range p.Options {
		if seen[option] {
			continue
		}
		seen[option] = true
		t.Rows = append(t.Rows, Row{Option: option, Votes: counts[option], Percent: Percent(counts[option], total)})
	}

	var extra []string
	for option := range counts {
		if !seen[option] {
			extra = append(extra, option)
		}
	}
	slices.Sort(extra)
	for _, option := range extra {
		t.Rows = append(t.Rows, Row{Option: option, Votes: counts[option], Percent: Percent(counts[option], total)})
	}

	return t
}

// Percent is count/total as a whole percentage, halves rounded up. Zero
// when there are no votes.
func Percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(count)/float64(total)*100 + 0.5))
}
