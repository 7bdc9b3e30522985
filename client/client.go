// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
)

var (
	// ErrConnect wraps transport failures
	ErrConnect = errors.New("failed to connect to server")
	// ErrInvalidPoll is returned when the server sends something that is not a poll
	ErrInvalidPoll = errors.New("invalid poll")
)

// APIError is a non-200 response, or a 200 that could not be read.
// Message is the server's text for 400s.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL. A nil hc gets a client
// with a 10 second timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// List returns every poll in the server's listing order
func (c *Client) List(ctx context.Context) ([]*models.Poll, error) {
	var resp struct {
		Polls []json.RawMessage `json:"polls"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Polls == nil {
		return nil, fmt.Errorf("%w: polls is not an array", ErrInvalidPoll)
	}

	polls := make([]*models.Poll, 0, len(resp.Polls))
	for _, raw := range resp.Polls {
		p, err := parsePoll(raw)
		if err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, nil
}

func (c *Client) Add(ctx context.Context, name string, minutes int, options []string) (*models.Poll, error) {
	body := map[string]interface{}{"name": name, "minutes": minutes, "options": options}
	return c.pollCall(ctx, "/api/add", body)
}

func (c *Client) Vote(ctx context.Context, name, voter, vote string) (*models.Poll, error) {
	body := map[string]string{"name": name, "voter": voter, "vote": vote}
	return c.pollCall(ctx, "/api/vote", body)
}

func (c *Client) Get(ctx context.Context, name string) (*models.Poll, error) {
	return c.pollCall(ctx, "/api/get", map[string]string{"name": name})
}

func (c *Client) pollCall(ctx context.Context, path string, body interface{}) (*models.Poll, error) {
	var resp struct {
		Poll json.RawMessage `json:"poll"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return parsePoll(resp.Poll)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return &APIError{Status: res.StatusCode, Message: "200 response is not JSON"}
		}
		return nil
	case http.StatusBadRequest:
		text, err := io.ReadAll(res.Body)
		if err != nil {
			return &APIError{Status: res.StatusCode, Message: "400 response is not text"}
		}
		return &APIError{Status: res.StatusCode, Message: string(text)}
	default:
		return &APIError{
			Status:  res.StatusCode,
			Message: fmt.Sprintf("bad status code from %s: %d", path, res.StatusCode),
		}
	}
}

// parsePoll checks the shape of a poll sent by the server
func parsePoll(raw json.RawMessage) (*models.Poll, error) {
	var v struct {
		Name    *string           `json:"name"`
		EndTime *float64          `json:"endTime"`
		Options []string          `json:"options"`
		Votes   map[string]string `json:"votes"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return nil, fmt.Errorf("%w: not a poll", ErrInvalidPoll)
	}

	switch {
	case v.Name == nil:
		return nil, fmt.Errorf("%w: missing 'name'", ErrInvalidPoll)
	case v.EndTime == nil || *v.EndTime < 0:
		return nil, fmt.Errorf("%w: missing or invalid 'endTime'", ErrInvalidPoll)
	case len(v.Options) < 2:
		return nil, fmt.Errorf("%w: missing or invalid 'options'", ErrInvalidPoll)
	case v.Votes == nil:
		return nil, fmt.Errorf("%w: missing or invalid 'votes'", ErrInvalidPoll)
	}

	return &models.Poll{
		Name:    *v.Name,
		EndTime: int64(*v.EndTime),
		Options: v.Options,
		Votes:   v.Votes,
	}, nil
}
