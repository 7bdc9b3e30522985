// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Every field is a json.RawMessage so the
handlers can distinguish "missing" from "wrong type":

  - AddPollRequest: name, minutes, options
  - VoteRequest: name, voter, vote
  - GetPollRequest: name

# Response Types

  - PollResponse: {"poll": Poll}
  - ListPollsResponse: {"polls": [Poll]}

Error responses are plain text, not JSON.

# Domain Types

  - Poll: name, endTime (ms since epoch), options, votes (voter -> option)

A poll never stores whether it is ongoing or completed; see package poll.

# Constants

Status values:

	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
*/
package models
