package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SessionStore persists the active household identity per device, the
// server-side rendition of the browser's single localStorage key. It is an
// attribution tag, not a credential.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Get returns the member name selected on the given device, or "" if none.
func (s *SessionStore) Get(deviceID string) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT member_name FROM device_sessions WHERE device_id = ?`, deviceID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return name, nil
}

func (s *SessionStore) Set(deviceID, memberName string) error {
	_, err := s.db.Exec(
		`INSERT INTO device_sessions (device_id, member_name, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(device_id) DO UPDATE SET member_name = excluded.member_name, updated_at = excluded.updated_at`,
		deviceID, memberName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(deviceID string) error {
	_, err := s.db.Exec(`DELETE FROM device_sessions WHERE device_id = ?`, deviceID)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
