// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client talks to a Quickly Poll server.

# Calls

	c := client.New("http://localhost:8088", nil)
	polls, err := c.List(ctx)
	p, err := c.Add(ctx, "lunch", 30, []string{"tacos", "pho"})
	p, err = c.Vote(ctx, "lunch", "Ann", "pho")
	p, err = c.Get(ctx, "lunch")

Every poll received is shape-checked before it is returned: it must have a
name, a non-negative endTime, at least two options and a votes object.
Anything else is ErrInvalidPoll.

# Errors

  - ErrConnect: the request never got a response
  - *APIError with Status 400: Message is the server's explanation
  - *APIError with another status: "bad status code from <path>: <code>"
  - *APIError with Status 200: "200 response is not JSON"

# Forms

ValidateNewPoll and ValidateVote check user input before it is sent, with
the messages a person sees:

	form, err := client.ValidateNewPoll(name, minutes, "tacos\npho")
	if err != nil {
		fmt.Println("Error:", err)
	}
*/
package client
