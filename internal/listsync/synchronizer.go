// Package listsync keeps a client-side snapshot of the shopping list
// consistent with the authoritative store. The snapshot is always
// store-derived: every mutation is followed by a full refetch rather than an
// optimistic local patch, and every change notification triggers the same
// refetch. A local mutation therefore usually refreshes twice in quick
// succession (once directly, once from the echoed notification); the echo is
// not suppressed because a refresh is idempotent and suppressing it could
// swallow a genuinely concurrent change arriving in the same window.
package listsync

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rvanes/boodschappen/internal/model"
)

var (
	// ErrEmptyProduct rejects an add whose product is empty after trimming.
	ErrEmptyProduct = errors.New("product name is empty")
	// ErrNoMember rejects a mutation with no selected household identity.
	ErrNoMember = errors.New("no household member selected")
	// ErrBusy rejects a mutation while the same action is still in flight.
	ErrBusy = errors.New("action already in flight")
	// ErrNotFound reports a mutation against an id the store does not hold.
	ErrNotFound = errors.New("item not found")
)

// Event is a change notification from the store. It carries no payload the
// synchronizer relies on; any event means "refetch everything".
type Event struct {
	Entity string
	Action string
	ID     int64
}

// NewItem is one entry of a batch add.
type NewItem struct {
	Product  string
	Quantity *int64
}

// ListStore is the remote list store contract the synchronizer runs against.
type ListStore interface {
	ListItems() ([]model.ShoppingItem, error)
	CreateItem(product string, quantity *int64, addedBy string) error
	CreateItems(items []NewItem, addedBy string) error
	TogglePurchased(id int64) error
	DeleteItem(id int64) error
	ClearPurchased() (int64, error)
}

// Subscription is a live change-notification channel. Close must cause
// Events to be closed and may be called at most once by the synchronizer.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

const (
	actionAdd    = "add"
	actionToggle = "toggle"
	actionRemove = "remove"
	actionClear  = "clear"
)

// Synchronizer owns the in-memory snapshot for one client session and the
// change-notification subscription. Construct it once at session start and
// Close it on teardown so the subscription is released.
type Synchronizer struct {
	store  ListStore
	sub    Subscription
	logger *slog.Logger

	mu       sync.Mutex
	snapshot []model.ShoppingItem
	busy     map[string]bool

	closeOnce sync.Once
	watchDone chan struct{}
}

// New creates a Synchronizer, performs the initial refresh, and starts
// watching the subscription. A nil subscription is allowed; the synchronizer
// then only refreshes on its own mutations.
func New(store ListStore, sub Subscription, logger *slog.Logger) *Synchronizer {
	s := &Synchronizer{
		store:     store,
		sub:       sub,
		logger:    logger,
		busy:      make(map[string]bool),
		watchDone: make(chan struct{}),
	}

	if err := s.Refresh(); err != nil {
		s.logger.Warn("initial refresh", "error", err)
	}

	if sub != nil {
		go s.watch()
	} else {
		close(s.watchDone)
	}
	return s
}

// watch refreshes the snapshot on every change notification until the
// subscription closes.
func (s *Synchronizer) watch() {
	defer close(s.watchDone)
	for range s.sub.Events() {
		if err := s.Refresh(); err != nil {
			s.logger.Warn("refresh after change notification", "error", err)
		}
	}
}

// Refresh refetches the full item set and replaces the snapshot wholesale.
// On failure the previous snapshot is retained.
func (s *Synchronizer) Refresh() error {
	items, err := s.store.ListItems()
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	s.mu.Lock()
	s.snapshot = items
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current snapshot, newest item first.
func (s *Synchronizer) Snapshot() []model.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ShoppingItem, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// HasPurchased reports whether the snapshot holds at least one purchased item.
func (s *Synchronizer) HasPurchased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.snapshot {
		if it.Purchased {
			return true
		}
	}
	return false
}

func (s *Synchronizer) begin(action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[action] {
		return ErrBusy
	}
	s.busy[action] = true
	return nil
}

func (s *Synchronizer) end(action string) {
	s.mu.Lock()
	delete(s.busy, action)
	s.mu.Unlock()
}

// AddItem validates and inserts one item, then refreshes. Validation
// failures never reach the store.
func (s *Synchronizer) AddItem(product string, quantity *int64, addedBy string) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return ErrEmptyProduct
	}
	if addedBy == "" {
		return ErrNoMember
	}

	if err := s.begin(actionAdd); err != nil {
		return err
	}
	defer s.end(actionAdd)

	if err := s.store.CreateItem(product, quantity, addedBy); err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	return s.Refresh()
}

// AddItems inserts a batch attributed to one member and refreshes once for
// the whole batch. Entries whose product is empty after trimming are
// skipped; an all-empty batch is a no-op.
func (s *Synchronizer) AddItems(items []NewItem, addedBy string) error {
	if addedBy == "" {
		return ErrNoMember
	}

	batch := make([]NewItem, 0, len(items))
	for _, it := range items {
		it.Product = strings.TrimSpace(it.Product)
		if it.Product == "" {
			continue
		}
		batch = append(batch, it)
	}
	if len(batch) == 0 {
		return nil
	}

	if err := s.begin(actionAdd); err != nil {
		return err
	}
	defer s.end(actionAdd)

	if err := s.store.CreateItems(batch, addedBy); err != nil {
		return fmt.Errorf("add items: %w", err)
	}
	return s.Refresh()
}

// Toggle flips the purchased flag on the given item, then refreshes. Any
// household member may toggle any item.
func (s *Synchronizer) Toggle(id int64) error {
	if err := s.begin(actionToggle); err != nil {
		return err
	}
	defer s.end(actionToggle)

	if err := s.store.TogglePurchased(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("toggle item: %w", err)
	}
	return s.Refresh()
}

// Remove deletes the given item, then refreshes.
func (s *Synchronizer) Remove(id int64) error {
	if err := s.begin(actionRemove); err != nil {
		return err
	}
	defer s.end(actionRemove)

	if err := s.store.DeleteItem(id); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return s.Refresh()
}

// ClearPurchased bulk-deletes all purchased items and refreshes. When the
// snapshot holds no purchased item it is a no-op and the store is not
// called.
func (s *Synchronizer) ClearPurchased() (int64, error) {
	if !s.HasPurchased() {
		return 0, nil
	}

	if err := s.begin(actionClear); err != nil {
		return 0, err
	}
	defer s.end(actionClear)

	count, err := s.store.ClearPurchased()
	if err != nil {
		return 0, fmt.Errorf("clear purchased: %w", err)
	}
	return count, s.Refresh()
}

// Close releases the subscription exactly once and waits for the watch loop
// to exit. Safe to call multiple times.
func (s *Synchronizer) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.sub != nil {
			err = s.sub.Close()
		}
		<-s.watchDone
	})
	return err
}
