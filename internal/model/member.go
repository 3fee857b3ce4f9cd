package model

import "time"

// HouseholdMember is a display name used to attribute list actions. The set
// is small and fixed, seeded by migration; it is not an account.
type HouseholdMember struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
