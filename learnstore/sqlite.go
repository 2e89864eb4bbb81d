// Package learnstore persists per-position learning data in SQLite:
// evaluation biases accumulated from game outcomes and moves that
// proved themselves often enough to be trusted without a search. It
// implements engine.LearningStore.
package learnstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS position_bias (
	position_key TEXT PRIMARY KEY,
	bias_cp      INTEGER NOT NULL DEFAULT 0,
	samples      INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS learned_moves (
	position_key TEXT NOT NULL,
	move         TEXT NOT NULL,
	confidence   REAL NOT NULL,
	plays        INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (position_key, move)
);
`

// Store is a SQLite-backed learning store. Safe for use from one
// engine instance at a time; SQLite serializes writers itself.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. Use ":memory:"
// for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("learnstore: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("learnstore: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// PositionBias returns the learned centipawn adjustment for a
// position, zero when the position is unknown.
func (s *Store) PositionBias(key string) (int, error) {
	var bias int
	err := s.db.QueryRow(
		`SELECT bias_cp FROM position_bias WHERE position_key = ?`, key,
	).Scan(&bias)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("learnstore: bias lookup: %w", err)
	}
	return bias, nil
}

// LearnedMove returns the highest-confidence stored move for the
// position at or above minConfidence.
func (s *Store) LearnedMove(key string, minConfidence float64) (string, bool, error) {
	var move string
	err := s.db.QueryRow(
		`SELECT move FROM learned_moves
		 WHERE position_key = ? AND confidence >= ?
		 ORDER BY confidence DESC, plays DESC LIMIT 1`, key, minConfidence,
	).Scan(&move)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("learnstore: move lookup: %w", err)
	}
	return move, true, nil
}

// RecordBias folds a new observation into the stored bias using a
// running average, so a single lopsided game cannot swing a position
// far.
func (s *Store) RecordBias(key string, observedCp int) error {
	_, err := s.db.Exec(
		`INSERT INTO position_bias (position_key, bias_cp, samples) VALUES (?, ?, 1)
		 ON CONFLICT(position_key) DO UPDATE SET
			bias_cp = (bias_cp * samples + excluded.bias_cp) / (samples + 1),
			samples = samples + 1`, key, observedCp)
	if err != nil {
		return fmt.Errorf("learnstore: record bias: %w", err)
	}
	return nil
}

// RecordMove stores or reinforces a learned move for a position.
func (s *Store) RecordMove(key, move string, confidence float64) error {
	_, err := s.db.Exec(
		`INSERT INTO learned_moves (position_key, move, confidence, plays) VALUES (?, ?, ?, 1)
		 ON CONFLICT(position_key, move) DO UPDATE SET
			confidence = MAX(confidence, excluded.confidence),
			plays = plays + 1`, key, move, confidence)
	if err != nil {
		return fmt.Errorf("learnstore: record move: %w", err)
	}
	return nil
}
