package model

import "time"

// ShoppingItem is a single grocery-list record. The store assigns ID on
// insert; Product and AddedBy are immutable afterward. Only Purchased is
// ever updated.
type ShoppingItem struct {
	ID        int64     `json:"id"`
	Product   string    `json:"product"`
	Quantity  *int64    `json:"quantity"`
	Purchased bool      `json:"purchased"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}
