// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/poll"
	"github.com/danielhkuo/quickly-poll/results"
)

func relTime(p *models.Poll, now time.Time) string {
	return humanize.RelTime(time.UnixMilli(p.EndTime), now, "ago", "from now")
}

// renderList prints polls in two sections, keeping the server's order
func renderList(w io.Writer, polls []*models.Poll, now time.Time) {
	var ongoing, completed []*models.Poll
	for _, p := range polls {
		switch poll.Status(p, now) {
		case models.StatusOngoing:
			ongoing = append(ongoing, p)
		case models.StatusCompleted:
			completed = append(completed, p)
		}
	}

	fmt.Fprintln(w, "Ongoing Polls")
	if len(ongoing) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, p := range ongoing {
		fmt.Fprintf(w, "  %s – closes %s\n", p.Name, relTime(p, now))
	}

	fmt.Fprintln(w, "Completed Polls")
	if len(completed) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, p := range completed {
		fmt.Fprintf(w, "  %s – closed %s\n", p.Name, relTime(p, now))
	}
}

// renderPoll prints the options of an ongoing poll or the results of a
// completed one
func renderPoll(w io.Writer, p *models.Poll, now time.Time) {
	fmt.Fprintln(w, p.Name)

	if poll.IsOngoing(p, now) {
		fmt.Fprintf(w, "Closes %s\n", relTime(p, now))
		fmt.Fprintln(w, "Options:")
		for _, option := range p.Options {
			fmt.Fprintf(w, "  - %s\n", option)
		}
		fmt.Fprintf(w, "%s so far\n", english.Plural(len(p.Votes), "vote", ""))
		return
	}

	tally := results.Tabulate(p)
	fmt.Fprintf(w, "Closed %s\n", relTime(p, now))
	fmt.Fprintf(w, "Results (%s):\n", english.Plural(tally.Total, "vote", ""))
	for _, row := range tally.Rows {
		fmt.Fprintf(w, "  %3d%% %s\n", row.Percent, row.Option)
	}
}
