// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the schema for the SQL-backed
poll store.

# Connections

Two databases are supported, selected by DATABASE_TYPE:

  - sqlite (modernc.org/sqlite, pure Go)
  - postgres (github.com/lib/pq)

	d, _ := db.ParseDialect("sqlite")
	conn, err := db.Open(d, "file:polls.db")

SQLite connections are capped at one so ":memory:" works as a test database.

# Schema Creation

	if err := db.CreateSchema(conn, d); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: name (unique), end_time in ms, seq for creation order
  - poll_option: declared options with their position
  - vote: one row per (poll_name, voter), upserted on re-vote

	poll 1──* poll_option
	poll 1──* vote

# Placeholders

Queries are written with ? placeholders and passed through Rebind, which
produces $1, $2, ... for PostgreSQL.
*/
package db
