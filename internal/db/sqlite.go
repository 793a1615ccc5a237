// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timeblock/internal/item"
)

// SQLite implements item.Store using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ item.Store = (*SQLite)(nil)

// New opens the database at path and creates the schema if needed.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Save inserts the item or replaces the stored item with the same id.
func (s *SQLite) Save(ctx context.Context, it item.Item) error {
	query := `
		INSERT INTO items (id, content, start_at, end_at, editable)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content  = excluded.content,
			start_at = excluded.start_at,
			end_at   = excluded.end_at,
			editable = excluded.editable
	`

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			it.ID,
			it.Content,
			formatTime(it.Start),
			formatTime(it.End),
			it.Editable,
		)
		return err
	})
	if err != nil {
		return &item.StoreError{Op: "save", ID: it.ID, Err: err}
	}
	return nil
}

// Delete removes the item with id.
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return &item.StoreError{Op: "delete", ID: id, Err: err}
	}
	return nil
}

// LoadAll returns every stored item ordered by start time.
func (s *SQLite) LoadAll(ctx context.Context) ([]item.Item, error) {
	items, err := s.loadAll(ctx)
	if err != nil {
		return nil, &item.StoreError{Op: "load", Err: err}
	}
	return items, nil
}

func (s *SQLite) loadAll(ctx context.Context) ([]item.Item, error) {
	query := `
		SELECT id, content, start_at, end_at, editable
		FROM items
		ORDER BY start_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []item.Item
	for rows.Next() {
		var (
			it         item.Item
			start, end string
		)

		if err := rows.Scan(&it.ID, &it.Content, &start, &end, &it.Editable); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		it.Start, err = parseTime(start)
		if err != nil {
			return nil, fmt.Errorf("parsing start of item %d: %w", it.ID, err)
		}
		it.End, err = parseTime(end)
		if err != nil {
			return nil, fmt.Errorf("parsing end of item %d: %w", it.ID, err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// inTx runs fn in a read/write transaction and commits it.
func (s *SQLite) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Times are stored as RFC 3339 text with the zone offset of the item.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}
