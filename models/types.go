package models

import "encoding/json"

// Poll status values, derived from the end time on every read
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// Request types
//
// Fields are kept raw so handlers can tell a missing field from one of the
// wrong type and report it the way clients expect.

type AddPollRequest struct {
	Name    json.RawMessage `json:"name"`
	Minutes json.RawMessage `json:"minutes"`
	Options json.RawMessage `json:"options"`
}

type VoteRequest struct {
	Name  json.RawMessage `json:"name"`
	Voter json.RawMessage `json:"voter"`
	Vote  json.RawMessage `json:"vote"`
}

type GetPollRequest struct {
	Name json.RawMessage `json:"name"`
}

// Response types

type PollResponse struct {
	Poll *Poll `json:"poll"`
}

type ListPollsResponse struct {
	Polls []*Poll `json:"polls"`
}

// Domain types

type Poll struct {
	Name    string            `json:"name"`
	EndTime int64             `json:"endTime"` // ms since epoch
	Options []string          `json:"options"`
	Votes   map[string]string `json:"votes"` // voter -> option
}

// Clone returns a deep copy of the poll. Votes is never nil in the copy.
func (p *Poll) Clone() *Poll {
	c := &Poll{
		Name:    p.Name,
		EndTime: p.EndTime,
		Options: append([]string(nil), p.Options...),
		Votes:   make(map[string]string, len(p.Votes)),
	}
	for voter, option := range p.Votes {
		c.Votes[voter] = option
	}
	return c
}

// HasOption reports whether option is one of the poll's declared options
func (p *Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}
