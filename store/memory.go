// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
)

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend keeps polls in a map. Nothing survives a restart.
type MemoryBackend struct {
	mu    sync.Mutex
	polls map[string]*models.Poll
	order []string // names in creation order
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{polls: make(map[string]*models.Poll)}
}

func (m *MemoryBackend) Insert(_ context.Context, p *models.Poll, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.polls[p.Name]; exists {
		return duplicateName(p.Name)
	}

	m.polls[p.Name] = p.Clone()
	m.order = append(m.order, p.Name)
	return nil
}

func (m *MemoryBackend) Lookup(_ context.Context, name string) (*models.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.polls[name]
	if !exists {
		return nil, notFound(name)
	}
	return p.Clone(), nil
}

func (m *MemoryBackend) SetVote(_ context.Context, name, voter, option string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.polls[name]
	if !exists {
		return notFound(name)
	}
	p.Votes[voter] = option
	return nil
}

func (m *MemoryBackend) All(_ context.Context) ([]*models.Poll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	polls := make([]*models.Poll, 0, len(m.order))
	for _, name := range m.order {
		polls = append(polls, m.polls[name].Clone())
	}
	return polls, nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.polls = make(map[string]*models.Poll)
	m.order = nil
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
