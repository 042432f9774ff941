package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// GameRow is one finished game in the history table. Live room state
// never touches the database; only the final ranking is kept.
type GameRow struct {
	ID         int64
	RoomCode   string
	Ranking    string // JSON array of placements
	FinishedAt time.Time
}

// Store handles SQLite persistence for the game history.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			room_code   TEXT NOT NULL,
			ranking     TEXT NOT NULL,
			finished_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// RecordGame appends a finished game with its ranking JSON.
func (s *Store) RecordGame(roomCode, rankingJSON string) error {
	_, err := s.db.Exec(
		"INSERT INTO games (room_code, ranking) VALUES (?, ?)",
		roomCode, rankingJSON,
	)
	return err
}

// ListRecent returns the most recently finished games, newest first.
func (s *Store) ListRecent(limit int) ([]GameRow, error) {
	rows, err := s.db.Query(
		"SELECT id, room_code, ranking, finished_at FROM games ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []GameRow
	for rows.Next() {
		var gr GameRow
		if err := rows.Scan(&gr.ID, &gr.RoomCode, &gr.Ranking, &gr.FinishedAt); err != nil {
			return nil, err
		}
		result = append(result, gr)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
