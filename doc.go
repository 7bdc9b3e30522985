// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Poll API server.

Quickly Poll runs short named polls: anyone can start a poll with a set of
options and a duration in minutes, anyone can vote (one vote per voter name,
re-voting replaces it) until the poll's end time, and afterwards everyone
sees the results.

# Starting the Server

With no configuration the server keeps polls in memory:

	go run main.go

Or persist them:

	go run main.go -t sqlite -d polls.db
	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

A .env file in the working directory is loaded first if present.

# Configuration

  - PORT (-p): Server port (default: 8088)
  - DATABASE_TYPE (-t): memory, sqlite or postgres (default: memory)
  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string, required
    unless the type is memory
  - APP_ENV (-env): local, dev or prod; selects the log format (default: local)
  - STRICT_VOTES (-strict): reject votes for options the poll does not
    declare (default: false)

# Architecture

  - handlers: HTTP request handlers (list, add, vote, get)
  - router: Route definitions using chi
  - middleware: CORS, request logging, JSON helpers
  - store: Poll operations over a memory or SQL backend
  - poll: Lifecycle rules and list ordering
  - results: Vote tabulation
  - models: Poll type shared by server and client
  - db: Connections and schema creation
  - cliparse: Configuration parsing
  - logging: slog setup per environment
  - client: Typed client for the API, plus form validation

The pollctl command in cmd/pollctl is a terminal client built on package
client.

See package documentation for each component.
*/
package main
