// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Poll API.

# Handler Types

PollHandler serves all four endpoints. It depends only on the PollStore
interface, which *store.Store satisfies:

	pollHandler := handlers.NewPollHandler(s)

# Endpoints

	GET  /api/list → ListPolls  {polls: Poll[]} in listing order
	POST /api/add  → AddPoll    {name, minutes, options} → {poll}
	POST /api/vote → VoteInPoll {name, voter, vote}      → {poll}
	POST /api/get  → GetPoll    {name}                   → {poll}

# Validation

Request fields are decoded as raw JSON so that a missing field and a field
of the wrong type produce different messages. Failures are 400 responses
with a plain-text body, for example:

	missing 'name' parameter
	'minutes' is not a positive integer: 3.5
	'options' is not an array: hello
	no poll with name 'stool'
	poll for "couch" has already ended
	'vote' is not a string: undefined

A vote is checked in a fixed order: voter, name, poll existence, end time,
then the vote value. Rule violations reported by the store use the store's
message verbatim. Any other store failure is logged and answered with a 500
"internal error".
*/
package handlers
