// Package history provides SQLite-backed persistence for chat transcripts.
// It is a local convenience cache so past conversations survive restarts and
// can be browsed offline; backend records remain the source of truth.
package history

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/atim-dev/atim/internal/api"
)

// Store provides SQLite-backed persistence for chat messages.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they
// don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		sender TEXT NOT NULL,
		content TEXT NOT NULL,
		reference_id TEXT NOT NULL DEFAULT '',
		reference_type TEXT NOT NULL DEFAULT '',
		reasoning_type TEXT NOT NULL DEFAULT '',
		confidence REAL NOT NULL DEFAULT 0,
		timestamp TEXT NOT NULL,
		stored_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_messages_reference
		ON messages (reference_id, reference_type);
	`
	_, err := db.Exec(schema)
	return err
}

// Append stores one chat message. Messages synthesized locally may arrive
// without an id; one is assigned so replays stay stable.
func (s *Store) Append(msg api.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	var reasoning string
	var confidence float64
	if msg.Metadata != nil {
		reasoning = msg.Metadata.ReasoningType
		confidence = msg.Metadata.Confidence
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO messages
		 (id, sender, content, reference_id, reference_type, reasoning_type, confidence, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Sender, msg.Content, msg.ReferenceID, msg.ReferenceType,
		reasoning, confidence, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// Messages retrieves cached messages, optionally filtered to one reference.
// Both referenceID and referenceType must be set for the filter to apply,
// mirroring the backend's query contract.
func (s *Store) Messages(referenceID, referenceType string) ([]api.ChatMessage, error) {
	query := `SELECT id, sender, content, reference_id, reference_type, reasoning_type, confidence, timestamp
	          FROM messages`
	var args []any
	if referenceID != "" && referenceType != "" {
		query += ` WHERE reference_id = ? AND reference_type = ?`
		args = append(args, referenceID, referenceType)
	}
	query += ` ORDER BY stored_at ASC, id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []api.ChatMessage
	for rows.Next() {
		var msg api.ChatMessage
		var reasoning string
		var confidence float64
		if err := rows.Scan(&msg.ID, &msg.Sender, &msg.Content, &msg.ReferenceID,
			&msg.ReferenceType, &reasoning, &confidence, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if reasoning != "" || confidence != 0 {
			msg.Metadata = &api.MessageMetadata{
				ReasoningType: reasoning,
				Confidence:    confidence,
			}
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return messages, nil
}

// Clear removes all cached messages.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM messages`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}
