// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Poll API.

# Route Registration

NewRouter returns a chi router with every endpoint and the middleware
stack attached:

	h := router.NewRouter(pollStore, log)

Middleware runs in this order: chi RequestID, RequestLogger, chi
Recoverer, CORS.

# Endpoints

Health:

	GET /health - "OK"
	GET /       - "quickly-poll API v1"

Polls:

	GET  /api/list - All polls, ongoing first
	POST /api/add  - Create poll
	POST /api/vote - Record or change a vote
	POST /api/get  - Poll with its current votes

Unknown paths are 404 and known paths with the wrong method are 405.
*/
package router
