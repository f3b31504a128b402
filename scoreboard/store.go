// Package scoreboard persists finished games in SQLite.
package scoreboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// ErrInvalidGame rejects records that cannot describe a finished game
var ErrInvalidGame = errors.New("scoreboard: invalid game")

// Game is one finished game
type Game struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Score     int
	Level     int
	Ticks     int64
}

// Duration is the wall time the game lasted
func (g Game) Duration() time.Duration { return g.EndedAt.Sub(g.StartedAt) }

// Store is the SQLite-backed scoreboard
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and runs migrations
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("scoreboard: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite is not concurrent for writes

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("scoreboard: enable WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the schema if missing
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended ON games(ended_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("scoreboard: migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error { return s.db.Close() }

// Record stores g, assigning an id when g.ID is empty, and returns the id
func (s *Store) Record(ctx context.Context, g Game) (string, error) {
	if g.Score < 0 || g.Level < 1 || g.Ticks < 0 || g.EndedAt.Before(g.StartedAt) {
		return "", fmt.Errorf("%w: %+v", ErrInvalidGame, g)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, started_at, ended_at, score, level, ticks) VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.StartedAt.UnixMilli(), g.EndedAt.UnixMilli(), g.Score, g.Level, g.Ticks)
	if err != nil {
		return "", fmt.Errorf("scoreboard: insert game: %w", err)
	}
	return g.ID, nil
}

// Best is the highest recorded score, 0 for an empty board
func (s *Store) Best(ctx context.Context) (int, error) {
	var best int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(score), 0) FROM games`).Scan(&best); err != nil {
		return 0, fmt.Errorf("scoreboard: best: %w", err)
	}
	return best, nil
}

// Count is the number of recorded games
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("scoreboard: count: %w", err)
	}
	return n, nil
}

// Recent returns up to n games, newest first
func (s *Store) Recent(ctx context.Context, n int) ([]Game, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, score, level, ticks FROM games ORDER BY ended_at DESC, rowid DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("scoreboard: recent: %w", err)
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		var g Game
		var started, ended int64
		if err := rows.Scan(&g.ID, &started, &ended, &g.Score, &g.Level, &g.Ticks); err != nil {
			return nil, fmt.Errorf("scoreboard: scan game: %w", err)
		}
		g.StartedAt = time.UnixMilli(started)
		g.EndedAt = time.UnixMilli(ended)
		out = append(out, g)
	}
	return out, rows.Err()
}
