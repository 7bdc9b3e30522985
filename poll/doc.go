// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package poll holds the lifecycle rules for a poll.

A poll is ongoing while now < endTime and completed once now >= endTime.
The status is computed from (poll, now) on every call and never stored.
The current time comes from a Clock so callers can control it:

	status := poll.Status(p, clock.Now())

# Listing Order

	rank(p, now) = endTime             if now <= endTime
	rank(p, now) = RankCeiling - endTime otherwise

SortForListing sorts ascending by rank with a stable sort, which puts
ongoing polls first (soonest to close first) and completed polls after
them (most recently closed first).
*/
package poll
