package store

import (
	"database/sql"
	"fmt"

	"github.com/rvanes/boodschappen/internal/model"
)

// ItemStore is the authoritative shopping-item table. Every client holds a
// cache of it, never a second source of truth.
type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// NewItem carries the caller-supplied fields of an item to insert.
type NewItem struct {
	Product  string
	Quantity *int64
	AddedBy  string
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var quantity sql.NullInt64
	var purchased int

	err := scanner.Scan(&item.ID, &item.Product, &quantity, &purchased, &item.AddedBy, &item.CreatedAt)
	if err != nil {
		return nil, err
	}

	item.Purchased = purchased != 0
	if quantity.Valid {
		item.Quantity = &quantity.Int64
	}
	return &item, nil
}

const itemCols = `id, product, quantity, purchased, added_by, created_at`

// ListItems returns all items ordered by id descending, newest first.
func (s *ItemStore) ListItems() ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemCols + ` FROM shopping_items ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) GetItemByID(id int64) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) CreateItem(product string, quantity *int64, addedBy string) (*model.ShoppingItem, error) {
	var qty sql.NullInt64
	if quantity != nil {
		qty = sql.NullInt64{Int64: *quantity, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO shopping_items (product, quantity, added_by) VALUES (?, ?, ?)`,
		product, qty, addedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetItemByID(id)
}

// CreateItems inserts a batch of items in a single transaction. Either all
// rows land or none do.
func (s *ItemStore) CreateItems(items []NewItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO shopping_items (product, quantity, added_by) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		var qty sql.NullInt64
		if it.Quantity != nil {
			qty = sql.NullInt64{Int64: *it.Quantity, Valid: true}
		}
		if _, err := stmt.Exec(it.Product, qty, it.AddedBy); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Product, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}
	return nil
}

// TogglePurchased flips the purchased flag for the given id. Returns nil,
// nil if the item does not exist.
func (s *ItemStore) TogglePurchased(id int64) (*model.ShoppingItem, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	_, err = s.db.Exec(`UPDATE shopping_items SET purchased = NOT purchased WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle purchased: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *ItemStore) DeleteItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ClearPurchased deletes every purchased item and reports how many rows went.
func (s *ItemStore) ClearPurchased() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM shopping_items WHERE purchased = 1`)
	if err != nil {
		return 0, fmt.Errorf("clear purchased: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *ItemStore) CountPurchased() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM shopping_items WHERE purchased = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchased: %w", err)
	}
	return count, nil
}
