package listsync

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/rvanes/boodschappen/internal/database"
	"github.com/rvanes/boodschappen/internal/store"
	ws "github.com/rvanes/boodschappen/internal/websocket"
)

func setupLocal(t *testing.T) (*Synchronizer, *ws.Hub) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hub := ws.NewHub(slog.Default())
	ls := NewLocalStore(store.NewItemStore(db), hub)
	s := New(ls, NewLocalSubscription(hub), slog.Default())
	t.Cleanup(func() { s.Close() })
	return s, hub
}

func TestLocalMutationBroadcasts(t *testing.T) {
	s, hub := setupLocal(t)

	// A second client watching the hub, like another household device.
	other := hub.Subscribe()
	defer hub.Unsubscribe(other)

	if err := s.AddItem("melk", nil, "Rene"); err != nil {
		t.Fatalf("add item: %v", err)
	}

	select {
	case msg := <-other.Messages():
		if msg.Type != "item_created" {
			t.Errorf("broadcast type = %q, want %q", msg.Type, "item_created")
		}
	default:
		t.Fatal("no broadcast reached the other subscriber")
	}

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].Product != "melk" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestLocalEchoConverges(t *testing.T) {
	s, _ := setupLocal(t)

	// The echoed notification triggers a second refresh; the snapshot must
	// end up identical either way.
	if err := s.AddItem("kaas", nil, "Marjolein"); err != nil {
		t.Fatalf("add item: %v", err)
	}

	waitFor(t, func() bool {
		snap := s.Snapshot()
		return len(snap) == 1 && snap[0].Product == "kaas"
	})
}

func TestLocalBatchBroadcastsOnce(t *testing.T) {
	s, hub := setupLocal(t)

	other := hub.Subscribe()
	defer hub.Unsubscribe(other)

	batch := []NewItem{{Product: "kip"}, {Product: "rijst"}, {Product: "paprika"}}
	if err := s.AddItems(batch, "Rosanne"); err != nil {
		t.Fatalf("add items: %v", err)
	}

	count := 0
	for {
		select {
		case <-other.Messages():
			count++
			continue
		default:
		}
		break
	}
	if count != 1 {
		t.Errorf("batch produced %d broadcasts, want 1", count)
	}
}

func TestLocalToggleNotFound(t *testing.T) {
	s, _ := setupLocal(t)

	if err := s.Toggle(12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLocalSubscriptionClose(t *testing.T) {
	s, _ := setupLocal(t)

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Mutations still work without a live subscription; only the automatic
	// remote-refresh path is gone.
	if err := s.AddItem("brood", nil, "Rene"); err != nil {
		t.Fatalf("add after close: %v", err)
	}
}
