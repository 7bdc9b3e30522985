// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/poll"
)

// Form errors, worded for the person filling the form in
var (
	ErrMissingField  = errors.New("a required field is missing.")
	ErrBadMinutes    = errors.New("minutes is not a positive integer")
	ErrTooFewOptions = errors.New("poll must contain at least two options")
	ErrNotAnOption   = errors.New("vote is not a valid option")
)

// NewPoll is a validated new-poll form
type NewPoll struct {
	Name    string
	Minutes int
	Options []string
}

// ValidateNewPoll checks a new-poll form. optionsText holds one option
// per line.
func ValidateNewPoll(name, minutes, optionsText string) (NewPoll, error) {
	if strings.TrimSpace(name) == "" || optionsText == "" {
		return NewPoll{}, ErrMissingField
	}

	m, err := strconv.ParseFloat(strings.TrimSpace(minutes), 64)
	if err != nil || math.IsNaN(m) || m < 1 || math.Floor(m) != m || m > poll.MaxMinutes {
		return NewPoll{}, ErrBadMinutes
	}

	options := strings.Split(optionsText, "\n")
	for i, o := range options {
		options[i] = strings.TrimSuffix(o, "\r")
	}
	if len(options) < 2 {
		return NewPoll{}, ErrTooFewOptions
	}

	return NewPoll{Name: name, Minutes: int(m), Options: options}, nil
}

// ValidateVote checks a vote form against the poll being voted on
func ValidateVote(p *models.Poll, voter, vote string) error {
	if strings.TrimSpace(voter) == "" || strings.TrimSpace(vote) == "" {
		return ErrMissingField
	}
	if !p.HasOption(vote) {
		return ErrNotAnOption
	}
	return nil
}
