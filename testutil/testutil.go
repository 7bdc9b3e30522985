// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/store"
)

// TestDBURLEnv names the variable holding a PostgreSQL URL for tests.
// PostgreSQL tests are skipped when it is unset.
const TestDBURLEnv = "TEST_DATABASE_URL"

// Epoch is the start time of every FakeClock
var Epoch = time.UnixMilli(1_700_000_000_000)

// FakeClock is a poll.Clock that only moves when told to
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: Epoch}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTestStore returns a fresh in-memory store driven by clock
func NewTestStore(t *testing.T, clock *FakeClock, opts ...store.Option) *store.Store {
	t.Helper()

	opts = append([]store.Option{store.WithClock(clock)}, opts...)
	s := store.New(store.NewMemoryBackend(), opts...)
	t.Cleanup(func() { s.Close() })
	return s
}

// NewSQLiteBackend returns a SQL backend on a private in-memory SQLite database
func NewSQLiteBackend(t *testing.T) *store.SQLBackend {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	b := store.NewSQLBackend(conn, db.DialectSQLite)
	t.Cleanup(func() { b.Close() })
	return b
}

// NewPostgresBackend returns a SQL backend on the database named by
// TEST_DATABASE_URL, emptied first. Skips the test when it is unset.
func NewPostgresBackend(t *testing.T) *store.SQLBackend {
	t.Helper()

	url := os.Getenv(TestDBURLEnv)
	if url == "" {
		t.Skipf("%s not set", TestDBURLEnv)
	}

	conn, err := db.Open(db.DialectPostgres, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	_, err = conn.Exec(`
		DROP TABLE IF EXISTS vote CASCADE;
		DROP TABLE IF EXISTS poll_option CASCADE;
		DROP TABLE IF EXISTS poll CASCADE;
	`)
	if err != nil {
		conn.Close()
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	b := store.NewSQLBackend(conn, db.DialectPostgres)
	t.Cleanup(func() { b.Close() })
	return b
}

// CreateTestPoll adds a poll through the store and fails the test on error
func CreateTestPoll(t *testing.T, s *store.Store, name string, minutes int, options ...string) {
	t.Helper()

	if len(options) == 0 {
		options = []string{"a", "b"}
	}
	if _, err := s.Create(context.Background(), name, minutes, options); err != nil {
		t.Fatalf("Failed to create test poll %q: %v", name, err)
	}
}

// MakeRequest creates an HTTP test request. A string body is sent as-is,
// anything else is JSON encoded.
func MakeRequest(method, path string, body interface{}) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(b)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertText checks a plain-text response body
func AssertText(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	if got := w.Body.String(); got != expected {
		t.Errorf("Expected body %q, got %q", expected, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
