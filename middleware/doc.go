// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

RequestLogger is chi-style middleware that logs one line per request after
the handler returns:

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))

Each line carries method, path, remote, request_id (from chi's RequestID
middleware), status, bytes and duration_ms.

# CORS Middleware

Enable cross-origin requests for a browser client:

	r.Use(middleware.CORS)

Allows methods GET, POST, OPTIONS with the Content-Type header. Preflight
requests are answered without reaching the handler.

# Response Helpers

Successful API responses are JSON, errors are plain text with no trailing
newline:

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Poll: p})
	middleware.TextError(w, http.StatusBadRequest, "missing 'name' parameter")

# Request Bodies

ParseJSONBody decodes a request body. An empty body decodes as an empty
object so that handlers report the first missing field instead of a parse
error:

	var req models.GetPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.TextError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
*/
package middleware
