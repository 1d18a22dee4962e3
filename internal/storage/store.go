// Package storage persists ratings in a local SQLite database, one row
// per calendar day keyed by the ISO date string.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"daycheck/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and brings the
// schema up to date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save upserts the rating for its date, fully replacing any existing
// row. A rating without a severity value is never persisted; the call
// is a silent no-op so that only answered days reach durable storage.
func (s *Store) Save(ctx context.Context, r core.Rating) error {
	if r.Value == nil {
		return nil
	}

	notes := sql.NullString{String: r.Notes, Valid: r.Notes != ""}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ratings (date, rating, notes) VALUES (?, ?, ?)`,
		r.Date.String(), r.Value.Label(), notes)
	if err != nil {
		return fmt.Errorf("save rating: %w", err)
	}

	slog.DebugContext(ctx, "Rating saved",
		"date", r.Date.String(),
		"rating", r.Value.Label())
	return nil
}

// All returns every stored rating. Row order is unspecified.
func (s *Store) All(ctx context.Context) ([]core.Rating, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, rating, notes FROM ratings`)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []core.Rating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	return ratings, nil
}

// ByDate returns the rating stored for the given day, comparing at day
// granularity. The second return is false when no row exists.
func (s *Store) ByDate(ctx context.Context, date core.Date) (core.Rating, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT date, rating, notes FROM ratings WHERE date = ?`, date.String())

	r, err := scanRating(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Rating{}, false, nil
	}
	if err != nil {
		return core.Rating{}, false, err
	}
	return r, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRating(s scanner) (core.Rating, error) {
	var dateStr, label string
	var notes sql.NullString

	if err := s.Scan(&dateStr, &label, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Rating{}, err
		}
		return core.Rating{}, fmt.Errorf("scan rating: %w", err)
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Rating{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}

	r := core.Rating{Date: date, Notes: notes.String}
	if v, ok := core.ValueFromLabel(label); ok {
		r.Value = v.Ptr()
	} else {
		// Rows written by older builds may carry labels we no longer
		// recognize; keep the day visible rather than dropping it.
		slog.Warn("Unknown rating label in store", "date", dateStr, "label", label)
	}
	return r, nil
}
