// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, d Dialect) error {
	var pollTable string
	switch d {
	case DialectSQLite:
		pollTable = sqlitePollTable
	case DialectPostgres:
		pollTable = postgresPollTable
	default:
		return fmt.Errorf("failed to create schema: unsupported dialect %q", d)
	}

	// lib/pq and modernc sqlite both accept multiple statements per Exec
	if _, err := db.Exec(pollTable + schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// seq preserves creation order, which breaks ties when listing.
const sqlitePollTable = `
CREATE TABLE IF NOT EXISTS poll (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    end_time BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);
`

const postgresPollTable = `
CREATE TABLE IF NOT EXISTS poll (
    seq BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    end_time BIGINT NOT NULL,
    created_at BIGINT NOT NULL
);
`

const schema = `
-- Options, in declaration order
CREATE TABLE IF NOT EXISTS poll_option (
    poll_name TEXT NOT NULL REFERENCES poll(name) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (poll_name, position)
);

-- Votes, one per voter per poll
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_name TEXT NOT NULL REFERENCES poll(name) ON DELETE CASCADE,
    voter TEXT NOT NULL,
    choice TEXT NOT NULL,
    cast_at BIGINT NOT NULL,
    UNIQUE (poll_name, voter)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_name ON vote(poll_name);
`
