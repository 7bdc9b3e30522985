// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/poll"
)

// Backend holds poll records. The Store applies all poll rules; a backend
// only persists and retrieves.
type Backend interface {
	// Insert stores a new poll created at the given time. Returns
	// ErrDuplicateName if the name is taken.
	Insert(ctx context.Context, p *models.Poll, at time.Time) error
	// Lookup returns a copy of the named poll or ErrNotFound.
	Lookup(ctx context.Context, name string) (*models.Poll, error)
	// SetVote records voter's choice cast at the given time, replacing any
	// earlier one.
	SetVote(ctx context.Context, name, voter, option string, at time.Time) error
	// All returns copies of every poll in creation order.
	All(ctx context.Context) ([]*models.Poll, error)
	// Clear removes every poll.
	Clear(ctx context.Context) error
	Close() error
}

// Store owns all poll records and is safe for concurrent use.
// Operations are serialized so each one sees a consistent snapshot.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	clock   poll.Clock
	strict  bool
}

type Option func(*Store)

// WithClock replaces the wall clock
func WithClock(c poll.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithStrictVotes rejects votes for options the poll does not declare
func WithStrictVotes(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, clock: poll.SystemClock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a poll that closes minutes from now
func (s *Store) Create(ctx context.Context, name string, minutes int, options []string) (*models.Poll, error) {
	if name == "" {
		return nil, newError(ErrInvalidInput, "missing 'name' parameter")
	}
	if minutes < 1 {
		return nil, newError(ErrInvalidInput, "'minutes' is not a positive integer: %d", minutes)
	}
	if minutes > poll.MaxMinutes {
		return nil, newError(ErrInvalidInput, "'minutes' is too large: %d", minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A taken name wins over a short option list.
	if _, err := s.backend.Lookup(ctx, name); err == nil {
		return nil, duplicateName(name)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if len(options) < 2 {
		return nil, newError(ErrInvalidInput, "'options' must have at least 2 entries")
	}

	now := s.clock.Now()
	p := &models.Poll{
		Name:    name,
		EndTime: poll.EndTime(now, minutes),
		Options: append([]string(nil), options...),
		Votes:   map[string]string{},
	}
	if err := s.backend.Insert(ctx, p, now); err != nil {
		return nil, err
	}

	slog.Info("poll created", "name", name, "minutes", minutes, "options", len(options))
	return p.Clone(), nil
}

// Get returns the named poll with its latest votes
func (s *Store) Get(ctx context.Context, name string) (*models.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.backend.Lookup(ctx, name)
}

// Vote records voter's choice in the named poll. The end time is checked
// at the moment of the call with no grace period.
func (s *Store) Vote(ctx context.Context, name, voter, option string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.backend.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if poll.IsCompleted(p, now) {
		return nil, newError(ErrPollClosed, "poll for \"%s\" has already ended", name)
	}

	if voter == "" {
		return nil, newError(ErrInvalidInput, "missing or invalid 'voter' parameter")
	}
	if option == "" {
		return nil, newError(ErrInvalidInput, "'vote' must not be empty")
	}
	if s.strict && !p.HasOption(option) {
		return nil, newError(ErrInvalidInput, "'%s' is not an option of poll '%s'", option, name)
	}

	if err := s.backend.SetVote(ctx, name, voter, option, now); err != nil {
		return nil, err
	}
	p.Votes[voter] = option

	slog.Debug("vote recorded", "name", name, "voter", voter)
	return p, nil
}

// List returns every poll in listing order
func (s *Store) List(ctx context.Context) ([]*models.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	polls, err := s.backend.All(ctx)
	if err != nil {
		return nil, err
	}

	poll.SortForListing(polls, s.clock.Now())
	return polls, nil
}

// Reset removes every poll. Intended for tests.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backend.Clear(ctx)
}

func (s *Store) Close() error {
	return s.backend.Close()
}
