// Package history persists conversations to a local SQLite database so
// past sessions survive restarts. Failures here are reported but never
// interrupt a chat.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"mylittlepric-cli/internal/chat"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	sender     TEXT NOT NULL,
	kind       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
`

type Store struct {
	db *sql.DB
}

// Open creates the database (and its directory) if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one conversation message under its session.
func (s *Store) Append(sessionID string, m chat.Message) error {
	_, err := s.db.Exec(
		`INSERT INTO messages (session_id, sender, kind, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, string(m.Sender), string(m.Kind), m.Content, m.Time.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording message: %w", err)
	}
	return nil
}

// SessionSummary describes one stored conversation.
type SessionSummary struct {
	SessionID  string
	FirstQuery string
	Messages   int
	LastActive time.Time
}

// Sessions lists stored conversations, most recent first.
func (s *Store) Sessions(limit int) ([]SessionSummary, error) {
	rows, err := s.db.Query(`
		SELECT session_id,
		       COALESCE((SELECT content FROM messages u
		                 WHERE u.session_id = m.session_id AND u.sender = 'user'
		                 ORDER BY u.id LIMIT 1), ''),
		       COUNT(*),
		       MAX(created_at)
		FROM messages m
		GROUP BY session_id
		ORDER BY MAX(created_at) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		var lastActive any
		if err := rows.Scan(&sum.SessionID, &sum.FirstQuery, &sum.Messages, &lastActive); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sum.LastActive = storedTime(lastActive)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// storedTime converts a scanned created_at value to time.Time. Plain column
// reads arrive already typed, but an aggregate like MAX(created_at) loses the
// column's declared type, so the driver hands the stored text back verbatim.
func storedTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		return parseStoredTime(t)
	case []byte:
		return parseStoredTime(string(t))
	}
	return time.Time{}
}

func parseStoredTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999-07:00",
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Messages returns a stored conversation in insertion order.
func (s *Store) Messages(sessionID string) ([]chat.Message, error) {
	rows, err := s.db.Query(
		`SELECT id, sender, kind, content, created_at FROM messages WHERE session_id = ? ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []chat.Message
	for rows.Next() {
		var m chat.Message
		var sender, kind string
		if err := rows.Scan(&m.ID, &sender, &kind, &m.Content, &m.Time); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		m.Sender = chat.Sender(sender)
		m.Kind = chat.MessageKind(kind)
		out = append(out, m)
	}
	return out, rows.Err()
}
