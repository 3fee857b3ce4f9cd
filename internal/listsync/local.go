package listsync

import (
	"github.com/rvanes/boodschappen/internal/model"
	"github.com/rvanes/boodschappen/internal/store"
	ws "github.com/rvanes/boodschappen/internal/websocket"
)

// LocalStore adapts the SQLite item store to the ListStore contract and
// broadcasts a change notification after every successful mutation, so
// connected clients (including the owning synchronizer itself, via the echo)
// converge on the new state.
type LocalStore struct {
	items *store.ItemStore
	hub   *ws.Hub
}

func NewLocalStore(items *store.ItemStore, hub *ws.Hub) *LocalStore {
	return &LocalStore{items: items, hub: hub}
}

func (l *LocalStore) ListItems() ([]model.ShoppingItem, error) {
	return l.items.ListItems()
}

func (l *LocalStore) CreateItem(product string, quantity *int64, addedBy string) error {
	item, err := l.items.CreateItem(product, quantity, addedBy)
	if err != nil {
		return err
	}
	l.hub.Broadcast(ws.NewMessage("item", "created", item.ID))
	return nil
}

func (l *LocalStore) CreateItems(items []NewItem, addedBy string) error {
	batch := make([]store.NewItem, len(items))
	for i, it := range items {
		batch[i] = store.NewItem{Product: it.Product, Quantity: it.Quantity, AddedBy: addedBy}
	}
	if err := l.items.CreateItems(batch); err != nil {
		return err
	}
	// One notification for the whole batch, not one per row.
	l.hub.Broadcast(ws.NewMessage("item", "batch_created", 0))
	return nil
}

func (l *LocalStore) TogglePurchased(id int64) error {
	item, err := l.items.TogglePurchased(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	l.hub.Broadcast(ws.NewMessage("item", "updated", id))
	return nil
}

func (l *LocalStore) DeleteItem(id int64) error {
	if err := l.items.DeleteItem(id); err != nil {
		return err
	}
	l.hub.Broadcast(ws.NewMessage("item", "deleted", id))
	return nil
}

func (l *LocalStore) ClearPurchased() (int64, error) {
	count, err := l.items.ClearPurchased()
	if err != nil {
		return 0, err
	}
	l.hub.Broadcast(ws.NewMessage("item", "cleared", 0))
	return count, nil
}

// LocalSubscription turns a hub subscriber into the synchronizer's
// Subscription. Close unsubscribes from the hub, which closes the underlying
// channel and, in turn, the Events channel.
type LocalSubscription struct {
	hub    *ws.Hub
	sub    *ws.Subscriber
	events chan Event
}

func NewLocalSubscription(hub *ws.Hub) *LocalSubscription {
	l := &LocalSubscription{
		hub:    hub,
		sub:    hub.Subscribe(),
		events: make(chan Event, 16),
	}
	go func() {
		defer close(l.events)
		for msg := range l.sub.Messages() {
			l.events <- Event{Entity: msg.Entity, Action: msg.Action, ID: msg.ID}
		}
	}()
	return l
}

func (l *LocalSubscription) Events() <-chan Event {
	return l.events
}

func (l *LocalSubscription) Close() error {
	l.hub.Unsubscribe(l.sub)
	return nil
}
