// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package results tabulates the votes of a poll.

	tally := results.Tabulate(p)
	for _, row := range tally.Rows {
		fmt.Printf("%d%% %s\n", row.Percent, row.Option)
	}

Every declared option gets a row, in declaration order, even with zero
votes. The server accepts any string as a vote, so values that are not
declared options get rows of their own after the declared ones, sorted by
value.

Percentages are whole numbers rounded half up and are zero for every row
when nobody voted. Rounding means they need not sum to 100.
*/
package results
