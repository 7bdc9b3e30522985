// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-poll/router"
	"github.com/danielhkuo/quickly-poll/testutil"
)

// newTestServer runs the real router over an in-memory store
func newTestServer(t *testing.T) (*Client, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock()
	s := testutil.NewTestStore(t, clock)
	srv := httptest.NewServer(router.NewRouter(s, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client()), clock
}

// stubServer answers every request with the given status and body
func stubServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func TestClient_RoundTrip(t *testing.T) {
	c, clock := newTestServer(t)
	ctx := context.Background()

	polls, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(polls) != 0 {
		t.Fatalf("Expected no polls, got %d", len(polls))
	}

	p, err := c.Add(ctx, "lunch", 30, []string{"tacos", "pho"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if want := clock.Now().UnixMilli() + 30*60*1000; p.EndTime != want {
		t.Errorf("Expected endTime %d, got %d", want, p.EndTime)
	}

	p, err = c.Vote(ctx, "lunch", "Ann", "pho")
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if p.Votes["Ann"] != "pho" {
		t.Errorf("Expected Ann's vote, got %v", p.Votes)
	}

	p, err = c.Get(ctx, "lunch")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Name != "lunch" || len(p.Options) != 2 || p.Votes["Ann"] != "pho" {
		t.Errorf("Unexpected poll %+v", p)
	}

	polls, err = c.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(polls) != 1 || polls[0].Name != "lunch" {
		t.Errorf("Unexpected list %v", polls)
	}
}

func TestClient_ServerRejection(t *testing.T) {
	c, clock := newTestServer(t)
	ctx := context.Background()

	if _, err := c.Add(ctx, "lunch", 5, []string{"tacos", "pho"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	tests := []struct {
		name    string
		call    func() error
		wantMsg string
	}{
		{"duplicate", func() error {
			_, err := c.Add(ctx, "lunch", 5, []string{"a", "b"})
			return err
		}, "poll for 'lunch' already exists"},
		{"unknown poll", func() error {
			_, err := c.Get(ctx, "dinner")
			return err
		}, "no poll with name 'dinner'"},
		{"one option", func() error {
			_, err := c.Add(ctx, "dinner", 5, []string{"a"})
			return err
		}, "'options' must have at least 2 entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %v", err)
			}
			if apiErr.Status != http.StatusBadRequest || apiErr.Message != tt.wantMsg {
				t.Errorf("Expected 400 %q, got %d %q", tt.wantMsg, apiErr.Status, apiErr.Message)
			}
		})
	}

	clock.Advance(6 * time.Minute)
	_, err := c.Vote(ctx, "lunch", "Ann", "pho")
	if err == nil || err.Error() != `poll for "lunch" has already ended` {
		t.Errorf("Expected ended error, got %v", err)
	}
}

func TestClient_ResponseHandling(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"not JSON", http.StatusOK, "<html>", http.StatusOK, "200 response is not JSON"},
		{"server error", http.StatusInternalServerError, "internal error", http.StatusInternalServerError, "bad status code from /api/get: 500"},
		{"not found", http.StatusNotFound, "404 page not found", http.StatusNotFound, "bad status code from /api/get: 404"},
		{"bad request", http.StatusBadRequest, "missing or invalid 'name' parameter", http.StatusBadRequest, "missing or invalid 'name' parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stubServer(t, tt.status, tt.body)

			_, err := c.Get(context.Background(), "couch")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %v", err)
			}
			if apiErr.Status != tt.wantStatus || apiErr.Message != tt.wantMsg {
				t.Errorf("Expected %d %q, got %d %q", tt.wantStatus, tt.wantMsg, apiErr.Status, apiErr.Message)
			}
		})
	}
}

func TestClient_InvalidPollShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing poll", `{}`},
		{"null poll", `{"poll": null}`},
		{"missing name", `{"poll": {"endTime": 1, "options": ["a", "b"], "votes": {}}}`},
		{"negative endTime", `{"poll": {"name": "x", "endTime": -1, "options": ["a", "b"], "votes": {}}}`},
		{"one option", `{"poll": {"name": "x", "endTime": 1, "options": ["a"], "votes": {}}}`},
		{"votes not strings", `{"poll": {"name": "x", "endTime": 1, "options": ["a", "b"], "votes": {"Ann": 1}}}`},
		{"votes null", `{"poll": {"name": "x", "endTime": 1, "options": ["a", "b"], "votes": null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stubServer(t, http.StatusOK, tt.body)

			if _, err := c.Get(context.Background(), "x"); !errors.Is(err, ErrInvalidPoll) {
				t.Errorf("Expected ErrInvalidPoll, got %v", err)
			}
		})
	}
}

func TestClient_ListNotArray(t *testing.T) {
	c := stubServer(t, http.StatusOK, `{"polls": null}`)

	if _, err := c.List(context.Background()); !errors.Is(err, ErrInvalidPoll) {
		t.Errorf("Expected ErrInvalidPoll, got %v", err)
	}
}

func TestClient_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.List(context.Background())
	if !errors.Is(err, ErrConnect) {
		t.Errorf("Expected ErrConnect, got %v", err)
	}
}
