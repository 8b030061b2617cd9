package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Preferences is the key/value preference storage of one visitor. It
// satisfies theme.Storage.
type Preferences struct {
	db        *sql.DB
	visitorID string
}

func (s *Store) Preferences(visitorID string) *Preferences {
	return &Preferences{db: s.db, visitorID: visitorID}
}

func (p *Preferences) Get(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(
		`SELECT value FROM preferences WHERE visitor_id = ? AND key = ?`,
		p.visitorID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %q: %w", key, err)
	}
	return value, true, nil
}

func (p *Preferences) Set(key, value string) error {
	_, err := p.db.Exec(`
		INSERT INTO preferences (visitor_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (visitor_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, p.visitorID, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write preference %q: %w", key, err)
	}
	return nil
}
