package main

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type resultStore struct {
	db *sql.DB
}

type episodeResult struct {
	Backend    string
	Episode    int
	BoardSize  int
	Difficulty string
	Winner     string
	BlackDiscs int
	WhiteDiscs int
	Moves      int
	DurationMs int64
	FinishedAt time.Time
}

type outcomeSummary struct {
	Games     int
	BlackWins int
	WhiteWins int
	Draws     int
	AvgMoves  float64
	AvgMs     float64
}

func openResultStore(path string) (*resultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	store := &resultStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *resultStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS episodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		backend TEXT NOT NULL,
		episode INTEGER NOT NULL,
		board_size INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		winner TEXT NOT NULL,
		black_discs INTEGER NOT NULL,
		white_discs INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		finished_at TIMESTAMP NOT NULL
	)`)
	return err
}

func (s *resultStore) insert(ctx context.Context, r episodeResult) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO episodes
		(backend, episode, board_size, difficulty, winner, black_discs, white_discs, moves, duration_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Backend, r.Episode, r.BoardSize, r.Difficulty, r.Winner,
		r.BlackDiscs, r.WhiteDiscs, r.Moves, r.DurationMs, r.FinishedAt.UTC())
	return err
}

func (s *resultStore) summary(ctx context.Context) (outcomeSummary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN winner = 'black' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = 'white' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN winner = 'draw' THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(moves), 0),
		COALESCE(AVG(duration_ms), 0)
		FROM episodes`)
	var out outcomeSummary
	if err := row.Scan(&out.Games, &out.BlackWins, &out.WhiteWins, &out.Draws, &out.AvgMoves, &out.AvgMs); err != nil {
		return outcomeSummary{}, err
	}
	return out, nil
}

func (s *resultStore) Close() error {
	return s.db.Close()
}
