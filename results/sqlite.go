package results

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	deck TEXT NOT NULL,
	deck_hash INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	solveable INTEGER NOT NULL,
	timed_out INTEGER NOT NULL,
	score INTEGER NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	solution TEXT NOT NULL,
	finished TEXT NOT NULL
)`

const insertGame = `
INSERT INTO games
	(deck, deck_hash, seed, solveable, timed_out, score, elapsed_ns, nodes, solution, finished)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteSink keeps results in the games table of a sqlite file.
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer; sqlite serializes them anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, createGamesTable); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("opened-results-db")
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Record(ctx context.Context, r *Result) error {
	_, err := s.db.ExecContext(ctx, insertGame,
		r.DealID, int64(r.DealHash), int64(r.Seed), r.Solvable, r.TimedOut,
		r.Score, r.Elapsed.Nanoseconds(), int64(r.Nodes),
		strings.Join(r.Solution, ";"), r.Finished.UTC().Format(timeLayout))
	return err
}

// Count returns how many results are stored, and how many of them were
// solvable.
func (s *SQLiteSink) Count(ctx context.Context) (total, solvable int, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(solveable), 0) FROM games`)
	err = row.Scan(&total, &solvable)
	return
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
