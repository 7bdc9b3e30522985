// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/testutil"
)

// every test runs against each backend
var backends = []struct {
	name string
	open func(t *testing.T) store.Backend
}{
	{"memory", func(t *testing.T) store.Backend { return store.NewMemoryBackend() }},
	{"sqlite", func(t *testing.T) store.Backend { return testutil.NewSQLiteBackend(t) }},
	{"postgres", func(t *testing.T) store.Backend { return testutil.NewPostgresBackend(t) }},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s *store.Store, clock *testutil.FakeClock)) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			clock := testutil.NewFakeClock()
			s := store.New(b.open(t), store.WithClock(clock))
			fn(t, s, clock)
		})
	}
}

func pollNames(polls []*models.Poll) []string {
	out := make([]string, len(polls))
	for i, p := range polls {
		out[i] = p.Name
	}
	return out
}

func TestCreate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, clock *testutil.FakeClock) {
		ctx := context.Background()

		p, err := s.Create(ctx, "couch", 4, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if p.Name != "couch" {
			t.Errorf("Expected name 'couch', got %q", p.Name)
		}
		if want := clock.Now().UnixMilli() + 4*60*1000; p.EndTime != want {
			t.Errorf("Expected endTime %d, got %d", want, p.EndTime)
		}
		if len(p.Options) != 2 || p.Options[0] != "a" || p.Options[1] != "b" {
			t.Errorf("Expected options [a b], got %v", p.Options)
		}
		if p.Votes == nil || len(p.Votes) != 0 {
			t.Errorf("Expected empty votes, got %v", p.Votes)
		}
	})
}

func TestCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		poll    string
		minutes int
		options []string
		wantMsg string
	}{
		{"empty name", "", 3, []string{"a", "b"}, "missing 'name' parameter"},
		{"zero minutes", "couch", 0, []string{"a", "b"}, "'minutes' is not a positive integer: 0"},
		{"negative minutes", "couch", -2, []string{"a", "b"}, "'minutes' is not a positive integer: -2"},
		{"too many minutes", "couch", 2_000_000_000, []string{"a", "b"}, "'minutes' is too large: 2000000000"},
		{"one option", "couch", 3, []string{"a"}, "'options' must have at least 2 entries"},
		{"no options", "couch", 3, nil, "'options' must have at least 2 entries"},
	}

	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := s.Create(context.Background(), tt.poll, tt.minutes, tt.options)
				if !errors.Is(err, store.ErrInvalidInput) {
					t.Fatalf("Expected ErrInvalidInput, got %v", err)
				}
				if err.Error() != tt.wantMsg {
					t.Errorf("Expected message %q, got %q", tt.wantMsg, err.Error())
				}
			})
		}
	})
}

func TestCreate_DuplicateName(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5)

		// Other fields do not matter
		tests := []struct {
			minutes int
			options []string
		}{
			{5, []string{"x", "y", "z"}},
			{1, []string{"x", "y"}},
			{60, []string{"x"}},
			{5, nil},
		}
		for _, tt := range tests {
			_, err := s.Create(ctx, "couch", tt.minutes, tt.options)
			if !errors.Is(err, store.ErrDuplicateName) {
				t.Fatalf("Expected ErrDuplicateName, got %v", err)
			}
			if err.Error() != "poll for 'couch' already exists" {
				t.Errorf("Unexpected message %q", err.Error())
			}
		}

		polls, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(polls) != 1 {
			t.Errorf("Expected 1 poll, got %d", len(polls))
		}
	})
}

func TestGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")
		testutil.CreateTestPoll(t, s, "chair", 10, "c", "d")

		p, err := s.Get(ctx, "chair")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if p.Name != "chair" || p.Options[0] != "c" || p.Options[1] != "d" {
			t.Errorf("Unexpected poll %+v", p)
		}

		_, err = s.Get(ctx, "stool")
		if !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
		if err.Error() != "no poll with name 'stool'" {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})
}

func TestRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()

		created, err := s.Create(ctx, "couch", 5, []string{"a", "b", "c"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		got, err := s.Get(ctx, "couch")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		polls, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(polls) != 1 {
			t.Fatalf("Expected 1 poll, got %d", len(polls))
		}

		for _, p := range []*models.Poll{got, polls[0]} {
			if fmt.Sprint(p) != fmt.Sprint(created) {
				t.Errorf("Stored poll %+v differs from created %+v", p, created)
			}
		}
	})
}

func TestVote(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")

		p, err := s.Vote(ctx, "couch", "Barney", "a")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if len(p.Votes) != 1 || p.Votes["Barney"] != "a" {
			t.Errorf("Expected {Barney:a}, got %v", p.Votes)
		}

		p, err = s.Vote(ctx, "couch", "Fred", "b")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if len(p.Votes) != 2 || p.Votes["Fred"] != "b" {
			t.Errorf("Expected {Barney:a Fred:b}, got %v", p.Votes)
		}

		// Re-voting overwrites
		p, err = s.Vote(ctx, "couch", "Fred", "a")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if len(p.Votes) != 2 || p.Votes["Fred"] != "a" {
			t.Errorf("Expected {Barney:a Fred:a}, got %v", p.Votes)
		}

		// Visible through Get and List
		got, err := s.Get(ctx, "couch")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Votes["Fred"] != "a" || got.Votes["Barney"] != "a" {
			t.Errorf("Get() votes = %v", got.Votes)
		}
		polls, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(polls[0].Votes) != 2 {
			t.Errorf("List() votes = %v", polls[0].Votes)
		}
	})
}

func TestVote_Errors(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")

		tests := []struct {
			name    string
			poll    string
			voter   string
			option  string
			wantErr error
			wantMsg string
		}{
			{"unknown poll", "stool", "Barney", "a", store.ErrNotFound, "no poll with name 'stool'"},
			{"empty voter", "couch", "", "a", store.ErrInvalidInput, "missing or invalid 'voter' parameter"},
			{"empty option", "couch", "Barney", "", store.ErrInvalidInput, "'vote' must not be empty"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := s.Vote(ctx, tt.poll, tt.voter, tt.option)
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if err.Error() != tt.wantMsg {
					t.Errorf("Expected message %q, got %q", tt.wantMsg, err.Error())
				}
			})
		}
	})
}

func TestVote_UndeclaredOptionAccepted(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")

		p, err := s.Vote(context.Background(), "couch", "Barney", "z")
		if err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
		if p.Votes["Barney"] != "z" {
			t.Errorf("Expected vote 'z', got %v", p.Votes)
		}
	})
}

func TestVote_StrictRejectsUndeclaredOption(t *testing.T) {
	clock := testutil.NewFakeClock()
	s := testutil.NewTestStore(t, clock, store.WithStrictVotes(true))
	testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")

	_, err := s.Vote(context.Background(), "couch", "Barney", "z")
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
	if err.Error() != "'z' is not an option of poll 'couch'" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	if _, err := s.Vote(context.Background(), "couch", "Barney", "b"); err != nil {
		t.Errorf("Declared option rejected: %v", err)
	}
}

func TestVote_Closed(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, clock *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")

		// One millisecond before the end still counts
		clock.Advance(5*time.Minute - time.Millisecond)
		if _, err := s.Vote(ctx, "couch", "Barney", "a"); err != nil {
			t.Fatalf("Vote() before end error = %v", err)
		}

		// Exactly at the end is too late
		clock.Advance(time.Millisecond)
		_, err := s.Vote(ctx, "couch", "Fred", "b")
		if !errors.Is(err, store.ErrPollClosed) {
			t.Fatalf("Expected ErrPollClosed, got %v", err)
		}
		if err.Error() != `poll for "couch" has already ended` {
			t.Errorf("Unexpected message %q", err.Error())
		}

		clock.Advance(50 * time.Millisecond)
		if _, err := s.Vote(ctx, "couch", "Barney", "b"); !errors.Is(err, store.ErrPollClosed) {
			t.Fatalf("Expected ErrPollClosed, got %v", err)
		}

		p, err := s.Get(ctx, "couch")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(p.Votes) != 1 || p.Votes["Barney"] != "a" {
			t.Errorf("Closed poll votes changed: %v", p.Votes)
		}
	})
}

func TestList_Order(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, clock *testutil.FakeClock) {
		ctx := context.Background()

		polls, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if polls == nil || len(polls) != 0 {
			t.Fatalf("Expected empty non-nil list, got %v", polls)
		}

		testutil.CreateTestPoll(t, s, "couch", 10)
		testutil.CreateTestPoll(t, s, "chair", 5)
		testutil.CreateTestPoll(t, s, "stool", 15)

		steps := []struct {
			advance time.Duration
			want    []string
		}{
			{0, []string{"chair", "couch", "stool"}},
			{5*time.Minute + 50*time.Millisecond, []string{"couch", "stool", "chair"}},
			{5 * time.Minute, []string{"stool", "couch", "chair"}},
			{20 * time.Minute, []string{"stool", "couch", "chair"}},
		}

		for i, step := range steps {
			clock.Advance(step.advance)
			polls, err := s.List(ctx)
			if err != nil {
				t.Fatalf("step %d: List() error = %v", i, err)
			}
			got := pollNames(polls)
			if fmt.Sprint(got) != fmt.Sprint(step.want) {
				t.Errorf("step %d: List() = %v, want %v", i, got, step.want)
			}
		}
	})
}

func TestList_TiesKeepCreationOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		for _, name := range []string{"b-poll", "a-poll", "c-poll"} {
			testutil.CreateTestPoll(t, s, name, 5)
		}

		polls, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if got := fmt.Sprint(pollNames(polls)); got != "[b-poll a-poll c-poll]" {
			t.Errorf("List() = %s, want creation order", got)
		}
	})
}

func TestReset(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5)
		if _, err := s.Vote(ctx, "couch", "Barney", "a"); err != nil {
			t.Fatalf("Vote() error = %v", err)
		}

		if err := s.Reset(ctx); err != nil {
			t.Fatalf("Reset() error = %v", err)
		}

		polls, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(polls) != 0 {
			t.Errorf("Expected no polls after Reset, got %d", len(polls))
		}

		// The name is free again
		p, err := s.Create(ctx, "couch", 5, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Create() after Reset error = %v", err)
		}
		if len(p.Votes) != 0 {
			t.Errorf("Old votes survived Reset: %v", p.Votes)
		}
	})
}

func TestReturnedPollsAreCopies(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()

		p, err := s.Create(ctx, "couch", 5, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		p.Votes["Mallory"] = "a"
		p.Options[0] = "hacked"

		got, err := s.Get(ctx, "couch")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.Votes) != 0 || got.Options[0] != "a" {
			t.Errorf("Stored poll was mutated through a returned copy: %+v", got)
		}
	})
}

// TestConcurrentVotes verifies that simultaneous voters on the same poll
// don't lose updates
func TestConcurrentVotes(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store, _ *testutil.FakeClock) {
		ctx := context.Background()
		testutil.CreateTestPoll(t, s, "couch", 5, "a", "b")

		numVoters := 20
		var wg sync.WaitGroup
		errs := make(chan error, numVoters)

		for i := 0; i < numVoters; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				option := "a"
				if i%2 == 1 {
					option = "b"
				}
				if _, err := s.Vote(ctx, "couch", fmt.Sprintf("voter-%d", i), option); err != nil {
					errs <- err
				}
			}(i)
		}

		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("Vote() error = %v", err)
		}

		p, err := s.Get(ctx, "couch")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(p.Votes) != numVoters {
			t.Errorf("Expected %d votes, got %d", numVoters, len(p.Votes))
		}
	})
}
