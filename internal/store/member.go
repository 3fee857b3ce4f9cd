package store

import (
	"database/sql"
	"fmt"

	"github.com/rvanes/boodschappen/internal/model"
)

// MemberStore reads the fixed household member set seeded by migration.
type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func (s *MemberStore) List() ([]model.HouseholdMember, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM household_members ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.HouseholdMember
	for rows.Next() {
		var m model.HouseholdMember
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Exists reports whether name is a known household member.
func (s *MemberStore) Exists(name string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM household_members WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("member exists: %w", err)
	}
	return count > 0, nil
}
