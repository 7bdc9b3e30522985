// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/models"
)

var _ Backend = (*SQLBackend)(nil)

// SQLBackend keeps polls in SQLite or PostgreSQL. The schema must already
// exist (see db.CreateSchema).
type SQLBackend struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLBackend(conn *sql.DB, d db.Dialect) *SQLBackend {
	return &SQLBackend{db: conn, dialect: d}
}

func (b *SQLBackend) q(query string) string {
	return b.dialect.Rebind(query)
}

func (b *SQLBackend) Insert(ctx context.Context, p *models.Poll, at time.Time) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	exists, err := b.exists(ctx, tx, p.Name)
	if err != nil {
		return err
	}
	if exists {
		return duplicateName(p.Name)
	}

	_, err = tx.ExecContext(ctx, b.q(`
		INSERT INTO poll (name, end_time, created_at)
		VALUES (?, ?, ?)
	`), p.Name, p.EndTime, at.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return duplicateName(p.Name)
		}
		return fmt.Errorf("insert poll: %w", err)
	}

	for i, label := range p.Options {
		_, err = tx.ExecContext(ctx, b.q(`
			INSERT INTO poll_option (poll_name, position, label)
			VALUES (?, ?, ?)
		`), p.Name, i, label)
		if err != nil {
			return fmt.Errorf("insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

func (b *SQLBackend) Lookup(ctx context.Context, name string) (*models.Poll, error) {
	p := &models.Poll{Name: name, Options: []string{}, Votes: map[string]string{}}

	err := b.db.QueryRowContext(ctx, b.q(`SELECT end_time FROM poll WHERE name = ?`), name).Scan(&p.EndTime)
	if err == sql.ErrNoRows {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("query poll: %w", err)
	}

	err = b.each(ctx, b.q(`
		SELECT label FROM poll_option
		WHERE poll_name = ?
		ORDER BY position
	`), []any{name}, func(rows *sql.Rows) error {
		var label string
		if err := rows.Scan(&label); err != nil {
			return err
		}
		p.Options = append(p.Options, label)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}

	err = b.each(ctx, b.q(`SELECT voter, choice FROM vote WHERE poll_name = ?`), []any{name}, func(rows *sql.Rows) error {
		var voter, choice string
		if err := rows.Scan(&voter, &choice); err != nil {
			return err
		}
		p.Votes[voter] = choice
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}

	return p, nil
}

func (b *SQLBackend) SetVote(ctx context.Context, name, voter, option string, at time.Time) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin vote: %w", err)
	}
	defer tx.Rollback()

	exists, err := b.exists(ctx, tx, name)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(name)
	}

	_, err = tx.ExecContext(ctx, b.q(`
		INSERT INTO vote (id, poll_name, voter, choice, cast_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (poll_name, voter)
		DO UPDATE SET choice = excluded.choice, cast_at = excluded.cast_at
	`), uuid.NewString(), name, voter, option, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vote: %w", err)
	}
	return nil
}

func (b *SQLBackend) All(ctx context.Context) ([]*models.Poll, error) {
	polls := []*models.Poll{}
	byName := make(map[string]*models.Poll)

	err := b.each(ctx, `SELECT name, end_time FROM poll ORDER BY seq`, nil, func(rows *sql.Rows) error {
		p := &models.Poll{Options: []string{}, Votes: map[string]string{}}
		if err := rows.Scan(&p.Name, &p.EndTime); err != nil {
			return err
		}
		polls = append(polls, p)
		byName[p.Name] = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}

	err = b.each(ctx, `
		SELECT poll_name, label FROM poll_option
		ORDER BY poll_name, position
	`, nil, func(rows *sql.Rows) error {
		var name, label string
		if err := rows.Scan(&name, &label); err != nil {
			return err
		}
		if p, ok := byName[name]; ok {
			p.Options = append(p.Options, label)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}

	err = b.each(ctx, `SELECT poll_name, voter, choice FROM vote`, nil, func(rows *sql.Rows) error {
		var name, voter, choice string
		if err := rows.Scan(&name, &voter, &choice); err != nil {
			return err
		}
		if p, ok := byName[name]; ok {
			p.Votes[voter] = choice
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}

	return polls, nil
}

func (b *SQLBackend) Clear(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"vote", "poll_option", "poll"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}

func (b *SQLBackend) exists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, b.q(`SELECT 1 FROM poll WHERE name = ?`), name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query poll: %w", err)
	}
	return true, nil
}

// each runs query and calls scan for every row. The rows are closed before
// it returns, which matters with SQLite's single connection.
func (b *SQLBackend) each(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
