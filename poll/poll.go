// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"cmp"
	"slices"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
)

const (
	// RankCeiling is larger than any end time a poll can have. Completed
	// polls rank as RankCeiling - endTime.
	RankCeiling int64 = 1_000_000_000_000_000

	// MaxMinutes keeps now + minutes well below RankCeiling.
	MaxMinutes = 1_000_000_000

	msPerMinute int64 = 60 * 1000
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock
var SystemClock Clock = systemClock{}

// EndTime returns the end time, in ms since epoch, of a poll created at
// created that runs for the given number of minutes.
func EndTime(created time.Time, minutes int) int64 {
	return created.UnixMilli() + int64(minutes)*msPerMinute
}

// IsOngoing reports whether voting on p is still open at now
func IsOngoing(p *models.Poll, now time.Time) bool {
	return now.UnixMilli() < p.EndTime
}

func IsCompleted(p *models.Poll, now time.Time) bool {
	return !IsOngoing(p, now)
}

// Status returns models.StatusOngoing or models.StatusCompleted
func Status(p *models.Poll, now time.Time) string {
	if IsOngoing(p, now) {
		return models.StatusOngoing
	}
	return models.StatusCompleted
}

// Rank is the listing sort key. A poll ending exactly at now still ranks
// by its end time.
func Rank(p *models.Poll, now time.Time) int64 {
	ms := now.UnixMilli()
	if ms <= p.EndTime {
		return p.EndTime
	}
	return RankCeiling - p.EndTime
}

// SortForListing orders polls in place: ongoing polls first, soonest to
// close first, then completed polls, most recently closed first. Polls
// with equal rank keep their relative order.
func SortForListing(polls []*models.Poll, now time.Time) {
	slices.SortStableFunc(polls, func(a, b *models.Poll) int {
		return cmp.Compare(Rank(a, now), Rank(b, now))
	})
}
